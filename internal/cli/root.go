package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/academic-credentials-network/certreg/internal/logger"
	"github.com/academic-credentials-network/certreg/internal/version"
)

var (
	appLogger *slog.Logger
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:               "certreg",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Certificate registry CLI",
	Long:              `Client CLI for issuing and verifying academic certificates against a certreg server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLogger = logger.InitLogger(logger.ParseLogLevel(os.Getenv("LOG_LEVEL")), "dev")
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the certreg server")

	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(verifyCmd)
}

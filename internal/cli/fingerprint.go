package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/academic-credentials-network/certreg/internal/fingerprint"
)

// fingerprintCmd computes the digest locally, without contacting a server.
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>",
	Short: "Compute the SHA-256 fingerprint of a file",
	Long: `Compute the SHA-256 content fingerprint of a local file.

The printed digest is the value the registry stores and matches against,
so it can be compared directly with the content_fingerprint field in API
responses.

Example:
  certreg fingerprint ./certificate.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := fingerprint.ComputeFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to fingerprint %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}

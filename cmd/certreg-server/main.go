package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/academic-credentials-network/certreg/internal/config"
	"github.com/academic-credentials-network/certreg/internal/database"
	"github.com/academic-credentials-network/certreg/internal/issuance"
	"github.com/academic-credentials-network/certreg/internal/logger"
	"github.com/academic-credentials-network/certreg/internal/pinning"
	"github.com/academic-credentials-network/certreg/internal/registry"
	"github.com/academic-credentials-network/certreg/internal/server"
	"github.com/academic-credentials-network/certreg/internal/verification"
	"github.com/academic-credentials-network/certreg/internal/version"
)

//	@title			certreg-server
//	@description	certreg-server is a registry for academic certificates: issued certificate
//	@description	files are fingerprinted (SHA-256), pinned to a content-addressed store and
//	@description	recorded against the student, and anyone holding a copy of a file can check
//	@description	whether it is the exact one originally issued.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Individual endpoints document their specific business logic errors.
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 10MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured upload limit.
//	@description
//	@description	## Authentication & Authorization
//	@description
//	@description	The registry API does not require credentials to be sent with the request.
//	@description	Issuance would normally sit behind an authenticating proxy or gateway operated
//	@description	by the institution; verification is deliberately open so that any holder of a
//	@description	certificate file can check it.
//
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@tag.name			Certificates
//	@tag.description	Issue certificates and fetch issued records

//	@tag.name			Verifications
//	@tag.description	Check presented files against the registry

//	@tag.name			Students
//	@tag.description	Per-student certificate listings

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "certreg-server",
		Short: "Academic certificate registry server",
		Long:  `certreg-server issues and verifies academic certificates backed by PostgreSQL and a content-addressed pinning service`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("PIN_SERVICE", cfg.PinService),
		slog.Int64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes),
	)

	dbCtx, dbCancel := context.WithTimeout(context.Background(), cfg.DatabasePingTimeout)
	defer dbCancel()

	pool, err := database.NewPool(dbCtx, cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("connected to PostgreSQL")

	if cfg.DatabaseAutoMigrate {
		if err := database.Migrate(dbCtx, pool); err != nil {
			appLogger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		appLogger.Info("database migrations applied")
	}

	pinner, err := pinning.NewService(cfg)
	if err != nil {
		appLogger.Error("Failed to configure pinning service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := registry.New(pool)
	issuer := issuance.NewService(pinner, store, appLogger)
	verifier := verification.NewService(store)

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(pool, cfg, appLogger, store, issuer, verifier)

	defer srv.DatabaseShutdown()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}

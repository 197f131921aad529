package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academic-credentials-network/certreg/internal/config"
	"github.com/academic-credentials-network/certreg/internal/issuance"
	"github.com/academic-credentials-network/certreg/internal/logger"
	"github.com/academic-credentials-network/certreg/internal/registry"
	"github.com/academic-credentials-network/certreg/internal/server/handlers"
	"github.com/academic-credentials-network/certreg/internal/server/middleware"
	"github.com/academic-credentials-network/certreg/internal/verification"
)

type Server struct {
	pool     *pgxpool.Pool
	config   *config.ServerEnvironment
	logger   *slog.Logger
	router   *chi.Mux
	store    *registry.Store
	issuer   *issuance.Service
	verifier *verification.Service
}

func NewServer(
	pool *pgxpool.Pool,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
	store *registry.Store,
	issuer *issuance.Service,
	verifier *verification.Service,
) *Server {
	server := &Server{
		pool:     pool,
		config:   cfg,
		logger:   logger,
		router:   chi.NewRouter(),
		store:    store,
		issuer:   issuer,
		verifier: verifier,
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxUploadBytes))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", handlers.HandleHealth)
	s.router.Get("/ready", handlers.HandleReadiness(s.pool))
	s.router.Get("/version", handlers.HandleVersion())

	issueHandler := handlers.NewIssueHandler(s.issuer)
	verifyHandler := handlers.NewVerifyHandler(s.verifier)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/certificates", issueHandler.HandleIssue)
		r.Get("/certificates/{certificateId}", handlers.HandleGetCertificate(s.store))
		r.Post("/verifications", verifyHandler.HandleVerify)
		r.Get("/students/{studentIdentifier}/certificates", handlers.HandleListStudentCertificates(s.store))
	})
}

// Router exposes the configured route tree, used by in-process tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) DatabaseShutdown() {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("database connection closed")
	}
}

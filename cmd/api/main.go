// Command api serves the VetCare session and access-control API.
//
// @title                       VetCare Central API
// @version                     1.0
// @description                 Session and access-control service for the VetCare clinic dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcare/central/internal/api"
	"github.com/vetcare/central/internal/core/access"
	"github.com/vetcare/central/internal/core/service"
	"github.com/vetcare/central/internal/infrastructure/queue"
	"github.com/vetcare/central/internal/pkg/config"
	"github.com/vetcare/central/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "vetcare-central",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET not set, using a development secret")
	}

	policy, err := access.LoadPolicyFile(cfg.Policy.File)
	if err != nil {
		return err
	}

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(log)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(b.audit, log), log)
	dispatcher.Start(context.Background())
	// Runs after the HTTP server has shut down, so no request can still record.
	defer dispatcher.Close()

	sessions := service.NewSessionRegistry(service.SessionDeps{
		Directory: b.directory,
		Persisted: b.identities,
		Auditor:   dispatcher,
		Log:       log,
	})

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Tokens:   service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Resolver: access.NewResolver(policy),
		Pingers:  b.pingers,
		Log:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("directory", cfg.Backends.Directory).
			Str("session", cfg.Backends.Session).
			Str("audit", cfg.Backends.Audit).
			Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// cmd/web/main.go
//
// Process entry point for the portfolio API.
//
/*
Context
--------
Boot sequence:

  1. Resolve configuration (dotenv → YAML → env overrides → Vault refs).
  2. Install the daily JSON logger, teed to stdout when run interactively.
  3. Connect to MySQL with exponential-backoff retries; exit non-zero when
     the budget is exhausted.
  4. Run idempotent migrations and seed the bootstrap admin account.
  5. Open the optional GeoLite2 database (warn-only on failure).
  6. Select the email transport and start the dispatch worker.
  7. Serve HTTP until SIGINT/SIGTERM, then drain: stop the listener first,
     then let the mail queue finish.

Workflow
--------
	go run ./cmd/web        # from anywhere inside the repo
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/admin"
	"github.com/abasuthakur/portfolio-api/internal/auth"
	"github.com/abasuthakur/portfolio-api/internal/config"
	"github.com/abasuthakur/portfolio-api/internal/contact"
	"github.com/abasuthakur/portfolio-api/internal/database"
	"github.com/abasuthakur/portfolio-api/internal/httpapi"
	"github.com/abasuthakur/portfolio-api/internal/logger"
	"github.com/abasuthakur/portfolio-api/internal/mail"
	"github.com/abasuthakur/portfolio-api/internal/requestinfo"
	"github.com/abasuthakur/portfolio-api/internal/server"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		// The logger may not be installed yet, so mirror to stderr.
		zap.S().Errorw("fatal", "err", err)
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// MySQL, with retry budget from config.
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.Admin); err != nil {
		return err
	}

	// Geo annotation is optional; the API runs fine without it.
	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		log.Warnw("geo database unavailable", "path", cfg.Geo.DBPath, "err", err)
	}

	sender, mode, err := mail.Select(ctx, cfg.Mail)
	if err != nil {
		return err
	}
	log.Infow("mail transport selected", "mode", mode)

	dispatcher := mail.NewDispatcher(sender, cfg.Mail.QueueSize)

	messages := contact.NewRepository(db)
	admins := admin.NewRepository(db)
	signer := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handler := httpapi.NewRouter(cfg,
		httpapi.NewContactHandler(messages, dispatcher),
		httpapi.NewAdminHandler(messages, admins, signer),
		signer,
	)

	srv := server.New(cfg.HTTP.ListenAddr, handler)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http listening", "addr", cfg.HTTP.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		// Listener died on its own (port in use, etc.).
		dispatcher.Close()
		return err
	case <-ctx.Done():
	}

	log.Infow("shutdown signal received")

	// Stop accepting requests first, then drain the mail queue so emails
	// enqueued by the last requests still go out.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warnw("http shutdown", "err", err)
	}
	dispatcher.Close()

	log.Infow("shutdown complete")
	return nil
}

// runningInTTY reports whether stdout is an interactive terminal, which
// switches on the colored console log tee.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

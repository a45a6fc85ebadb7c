package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kaitori/internal/adapters/email"
	web "kaitori/internal/adapters/http"
	"kaitori/internal/adapters/http/middleware"
	"kaitori/internal/adapters/http/perf"
	"kaitori/internal/adapters/storage"
	adminStore "kaitori/internal/adapters/storage/admin"
	blackoutStore "kaitori/internal/adapters/storage/blackout"
	reservationStore "kaitori/internal/adapters/storage/reservation"
	"kaitori/internal/application/orchestrators"
	"kaitori/internal/config"
	"kaitori/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stdout, logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}))

	if err := run(cfg); err != nil {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeneratedCSRFKey {
		slog.Warn("csrf_key_generated", "hint", "set CSRF_KEY to keep tokens valid across restarts")
	}
	if cfg.IsProduction() && cfg.UsesDefaultAdminPassword() {
		slog.Warn("default_admin_password", "username", cfg.AdminUsername)
	}

	db, err := storage.Open(ctx, cfg.DB.Dialect, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)
	defer timedDB.Close()

	gate := storage.NewInitializer(timedDB, cfg.DB.Dialect, storage.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})
	if err := gate.Ensure(ctx); err != nil {
		return err
	}

	// SQLite serialises through _txlock=immediate; Postgres relies on the active-slot index.
	var txOpts *sql.TxOptions
	if cfg.DB.Dialect == storage.Postgres {
		txOpts = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}

	notify := orchestrators.ConfirmationNotifier(orchestrators.SendConfirmationDeps{
		EmailSender: email.NewNoopSender(),
		FromAddress: cfg.NotifyFrom,
	})

	handler := web.NewRouter(ctx, web.Deps{
		DB:           timedDB,
		Tx:           storage.NewTransactor(timedDB, txOpts),
		Reservations: reservationStore.NewSQLStore(timedDB, cfg.DB.Dialect),
		Blackouts:    blackoutStore.NewSQLStore(timedDB, cfg.DB.Dialect),
		Admins:       adminStore.NewSQLStore(timedDB, cfg.DB.Dialect),
		Notify:       notify,
		Collector:    collector,
		EnsureSchema: gate.Ensure,
		Location:     cfg.Location,
		Config: web.Config{
			RequestTimeout:     cfg.RequestTimeout,
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			SlowRequestMs:      cfg.SlowRequestMs,
			CSRF: middleware.CSRFConfig{
				AuthKey: cfg.CSRFKey,
				Secure:  cfg.IsProduction(),
			},
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.HTTPAddr, "env", cfg.Env, "driver", cfg.DB.Dialect.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

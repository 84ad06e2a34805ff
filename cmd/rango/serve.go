package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rango/internal/cache"
	"rango/internal/config"
	"rango/internal/database"
	"rango/internal/handlers"
	"rango/internal/populate"
	"rango/internal/render"
	"rango/internal/router"
	"rango/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM.

Pending migrations are applied on start. In development an empty database
is loaded with the sample catalog.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "driver", cfg.DBDriver)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		return err
	}

	categories := store.NewCategoryStore(db)
	pages := store.NewPageStore(db)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed development data (no-op if categories already exist).
	if cfg.IsDev() {
		n, err := categories.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			if err := populate.New(categories, pages, nil, io.Discard).Run(ctx); err != nil {
				return err
			}
		}
	}

	pageCache, err := cache.Open(ctx, cfg)
	switch {
	case errors.Is(err, cache.ErrDisabled):
		slog.Warn("valkey not configured, page cache disabled")
	case err != nil:
		return err
	}
	defer pageCache.Close()

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	site := handlers.NewSite(categories, pages, renderer, pageCache)
	r := router.New(site, router.Options{SecureCookies: !cfg.IsDev()})
	defer r.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

// Package app assembles the catalog, HTTP API and MCP server into a running
// service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docnav/internal/api"
	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/mcpserver"
)

// OpenCatalog builds an empty catalog and preloads the configured manifest,
// if any.
func OpenCatalog(ctx context.Context, cfg config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	cat := catalog.New(cfg.ParseConfig(), catalog.NewLoadStats(cfg.StatsWindow))
	if cfg.ManifestPath == "" {
		return cat, nil
	}

	start := time.Now()
	if err := cat.LoadManifest(ctx, cfg.ManifestPath, cfg.LoadConcurrency, log); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	log.Info("manifest loaded",
		"path", cfg.ManifestPath,
		"documents", len(cat.List()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return cat, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Config, log *slog.Logger, version string) error {
	cat, err := OpenCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	mcpSrv := mcpserver.New(cat, log, version)
	srv := api.NewServer(cat, mcpSrv.Handler(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docnav", "port", cfg.Port, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ServeMCP runs the MCP tools over stdio until ctx is cancelled or the client
// goes away.
func ServeMCP(ctx context.Context, cfg config.Config, log *slog.Logger, version string) error {
	cat, err := OpenCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("starting MCP server", "version", version, "documents", len(cat.List()))
	return mcpserver.New(cat, log, version).RunStdio(ctx)
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docnav/internal/app"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile  string
		port     string
		manifest string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server, preloading the documents listed in the
manifest. Configuration is read from the environment and an optional .env file;
flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, envFile)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if manifest != "" {
				cfg.ManifestPath = manifest
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Serve(ctx, cfg, cfg.Logger(os.Stdout), version)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "path to .env file")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&manifest, "manifest", "", "document manifest (overrides DOCNAV_MANIFEST)")

	return cmd
}

func mcpCmd() *cobra.Command {
	var (
		envFile  string
		manifest string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP tools on stdio",
		Long: `Serve the list_documents, flatten_forest, find_by_target and
render_forest tools over stdio. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, envFile)
			if err != nil {
				return err
			}
			if manifest != "" {
				cfg.ManifestPath = manifest
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.ServeMCP(ctx, cfg, cfg.Logger(os.Stderr), version)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "path to .env file")
	cmd.Flags().StringVar(&manifest, "manifest", "", "document manifest (overrides DOCNAV_MANIFEST)")

	return cmd
}

// loadConfig reads the .env file (if present) and the environment. The
// --max-depth flag wins when set explicitly.
func loadConfig(cmd *cobra.Command, envFile string) (config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = parseConfig(cmd).MaxDepth
	}
	return cfg, nil
}

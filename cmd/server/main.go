package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docnav/internal/app"
	"github.com/dgallion1/docnav/internal/config"
)

var version = "dev"

func main() {
	bootLog := config.NewLogger(os.Stdout, config.LogFormatJSON, "info")
	if err := config.LoadDotEnv(""); err != nil {
		bootLog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		bootLog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := cfg.Logger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, log, version); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"conduit/internal/config"
	"conduit/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Conduit blogging API",
	SilenceUsage: true,
}

// loadConfig reads configuration and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, log, nil
}

// Package main is the entry point for the Color Shredder viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/app"
	"github.com/hluengas/color-shredder/internal/config"
	"github.com/hluengas/color-shredder/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Color Shredder ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run()
}

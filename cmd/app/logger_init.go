package main

import (
	"os"

	"github.com/osse101/GatherBonus_Go/internal/bootstrap"
	"github.com/osse101/GatherBonus_Go/internal/config"
)

// initLogger initializes the logger using centralized app configuration.
// Logs go to stderr; stdout carries chat lines for the host.
func initLogger(cfg *config.Config) {
	bootstrap.SetupLogger(cfg, os.Stderr)
}

// Package main is the entry point for the scenario planner CLI.
//
// The planner answers two questions offline:
//   - what happens to profit if revenue, orders, AOV, marketing spend,
//     shipping or COGS change per channel (scenario, compare, presets)
//   - which target ROAS the business can afford given its health
//     (recommend, curve, matrix, alerts)
//
// Baselines and business metrics come from YAML/JSON/msgpack files or the
// Metric,Value CSV exchange format; results are printed as text tables or
// encoded as JSON, YAML or msgpack.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/aristath/scenario-planner/internal/config"
	"github.com/aristath/scenario-planner/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	if err := run(os.Args[1:], os.Stdout, cfg, log); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

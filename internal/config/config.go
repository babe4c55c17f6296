// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Output formats understood by the CLI
var outputFormats = []string{"text", "json", "yaml", "msgpack"}

// Config holds application configuration
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"` // human-readable console output instead of JSON lines

	OutputFormat string `env:"PLANNER_OUTPUT" envDefault:"text"`
	Locale       string `env:"PLANNER_LOCALE" envDefault:"en-US"`   // BCP 47 tag used for number formatting
	Currency     string `env:"PLANNER_CURRENCY" envDefault:"EUR"` // ISO 4217 code

	// Optional record files used when a command is not given one explicitly
	BaselineFile string `env:"PLANNER_BASELINE"`
	MetricsFile  string `env:"PLANNER_METRICS"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every setting has a usable value
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel))); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	if !isOutputFormat(c.OutputFormat) {
		return fmt.Errorf("invalid PLANNER_OUTPUT %q (must be one of %s)", c.OutputFormat, strings.Join(outputFormats, ", "))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid PLANNER_LOCALE %q: %w", c.Locale, err)
	}

	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("invalid PLANNER_CURRENCY %q: %w", c.Currency, err)
	}

	return nil
}

// Tag returns the configured locale as a language tag
func (c *Config) Tag() language.Tag {
	return language.Make(c.Locale)
}

func isOutputFormat(name string) bool {
	for _, f := range outputFormats {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

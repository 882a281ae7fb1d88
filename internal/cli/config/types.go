// Package config loads leapexpr CLI configuration from defaults, the
// leapexpr.yaml file, LEAPEXPR_ environment variables and command flags.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/leapexpr/pkg/parser"
	"github.com/leapstack-labs/leapexpr/pkg/scan"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	LogLevel     slog.Level     `koanf:"log_level"`
	Workers      int            `koanf:"workers"`
	HistoryFile  string         `koanf:"history_file"`
	Parser       parser.Options `koanf:"parser"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultWorkers     = scan.DefaultWorkers
	DefaultHistoryFile = ".leapexpr_history"
)

// ValidOutputs lists the accepted values of the output option.
var ValidOutputs = []string{"auto", "text", "markdown", "json", "yaml"}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     slog.LevelWarn,
		Workers:      DefaultWorkers,
		HistoryFile:  DefaultHistoryFile,
	}
}

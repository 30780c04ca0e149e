// Package config provides configuration management for gnioc.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - DataDir
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Verbose, WithProgress (per-run)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNIOC_ prefix with underscores for nesting:
//
//	GNIOC_DATA_DIR=./gendata
//	GNIOC_LOG_LEVEL=info
//	GNIOC_JOBS_NUMBER=8
package config

import (
	"path/filepath"
	"runtime"
)

// Config represents the complete gnioc configuration.
type Config struct {
	// DataDir is the parent directory of the taxonomy store.
	// The store itself lives in DataDir/ioc.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used to decode
	// store files when a taxonomy is loaded from disk.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// Verbose enables progress messages on the console.
	Verbose bool

	// WithProgress shows a progress bar while the store is written.
	WithProgress bool

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		DataDir: DefaultDataDir,
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// TaxonomyDir returns the directory of the one-file-per-taxon store.
func (c *Config) TaxonomyDir() string {
	return filepath.Join(c.DataDir, TaxonomyDirName)
}

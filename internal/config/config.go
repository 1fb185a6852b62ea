// Package config provides configuration types and defaults for ac.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jvanvugt/auto-cli/internal/tracing"
)

// Config holds all configuration options for ac.
type Config struct {
	// RegistryPath is the SQLite registry database location.
	// Default: ~/.config/ac/registry.db
	RegistryPath string `mapstructure:"registry_path"`

	// SearchPath lists extra directories probed for <app>/ac.yaml when an
	// app's registered location no longer holds a manifest.
	SearchPath []string `mapstructure:"search_path"`

	// Debug enables debug logging to LogPath.
	Debug bool `mapstructure:"debug"`

	// LogPath is the debug log destination.
	// Default: ~/.config/ac/debug.log
	LogPath string `mapstructure:"log_path"`

	// Flags holds feature flag overrides.
	Flags map[string]bool `mapstructure:"flags"`

	// Tracing configures invocation tracing.
	Tracing tracing.Config `mapstructure:"tracing"`
}

// Dir returns the ac config directory, ~/.config/ac. Empty when the home
// directory cannot be determined.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ac")
}

// DefaultRegistryPath returns the default registry database location.
func DefaultRegistryPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "registry.db")
	}
	return ""
}

// DefaultLogPath returns the default debug log location.
func DefaultLogPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "debug.log")
	}
	return ""
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "traces", "traces.jsonl")
	}
	return ""
}

// Default returns the built-in configuration.
func Default() Config {
	t := tracing.DefaultConfig()
	t.FilePath = DefaultTracesFilePath()
	return Config{
		RegistryPath: DefaultRegistryPath(),
		LogPath:      DefaultLogPath(),
		Tracing:      t,
	}
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.RegistryPath != "" && !filepath.IsAbs(cfg.RegistryPath) {
		return fmt.Errorf("registry_path must be an absolute path, got %q", cfg.RegistryPath)
	}
	for _, dir := range cfg.SearchPath {
		if !filepath.IsAbs(dir) {
			return fmt.Errorf("search_path entries must be absolute paths, got %q", dir)
		}
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Package config provides configuration management for propgen using Viper
// for flexible loading from files, environment variables, and command-line
// flags.
//
// Configuration is read from .propgen.yml with PROPGEN_-prefixed environment
// variable overrides (PROPGEN_TEMPLATES_DIR, PROPGEN_LOGGING_LEVEL, ...) and
// flag overrides bound by the CLI.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
	Watch     WatchConfig     `yaml:"watch"`
	Export    ExportConfig    `yaml:"export"`
}

type TemplatesConfig struct {
	// Dir is the root directory scanned recursively for template
	// definitions
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	// DebounceMs groups rapid filesystem events before a reload fires
	DebounceMs int `yaml:"debounce_ms"`
}

type ExportConfig struct {
	// Path is the default destination of the catalog export
	Path string `yaml:"path"`
}

// Load builds the configuration from viper state, applying defaults for
// everything not explicitly set.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	// Handle values set via viper (workaround for viper nested key handling)
	if viper.IsSet("templates.dir") {
		config.Templates.Dir = viper.GetString("templates.dir")
	}
	if viper.IsSet("logging.level") {
		config.Logging.Level = viper.GetString("logging.level")
	}
	if viper.IsSet("logging.format") {
		config.Logging.Format = viper.GetString("logging.format")
	}
	if viper.IsSet("watch.debounce_ms") {
		config.Watch.DebounceMs = viper.GetInt("watch.debounce_ms")
	}
	if viper.IsSet("export.path") {
		config.Export.Path = viper.GetString("export.path")
	}

	// Apply defaults
	if config.Templates.Dir == "" {
		config.Templates.Dir = "./templates"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
	if config.Watch.DebounceMs <= 0 {
		config.Watch.DebounceMs = 300
	}
	if config.Export.Path == "" {
		config.Export.Path = "catalog.json"
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(c *Config) error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q (expected text or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}

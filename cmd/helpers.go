package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/propgen/propgen/internal/catalog"
	"github.com/propgen/propgen/internal/config"
	"github.com/propgen/propgen/internal/logging"
)

// openCatalog loads configuration, builds the logger, and performs the
// initial catalog load. Every subcommand that serves queries starts here.
func openCatalog(ctx context.Context) (*catalog.Catalog, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	cat := catalog.New(cfg.Templates.Dir, logger)
	cat.Load(ctx)
	return cat, cfg, nil
}

// validateFormat rejects unsupported output format values up front.
func validateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported format: %s (supported: %v)", format, supported)
}

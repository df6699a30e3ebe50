package packager

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/extmeta/plugin-packager/internal/config"
	"github.com/extmeta/plugin-packager/internal/logger"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to packaging settings (defaults to plugin-packager-settings.yaml).
	ConfigPath string
	// Mode selects the output action: "copy" or "pack".
	Mode string
	// Destination is the directory receiving copied trees or archives.
	Destination string
	// SourceRoot optionally overrides the plugin source tree location.
	SourceRoot string
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "plugin-packager")

	// Reject an unknown mode before any filesystem work.
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	svc, err := newService(mode, opts.Destination, cfg)
	if err != nil {
		return fmt.Errorf("initialize packager: %w", err)
	}

	if err = svc.Run(ctx); err != nil {
		return fmt.Errorf("packager failed: %w", err)
	}

	logger.Info(ctx, "Packager completed successfully")

	return nil
}

// loadConfig reads settings from the options' config path when the file
// exists, falling back to the built-in layout otherwise. A SourceRoot
// override from the command line wins in either case.
func loadConfig(opts *Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	var (
		cfg *config.Config
		err error
	)

	if _, statErr := os.Stat(path); statErr == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		cfg = config.Default()
	} else {
		return nil, fmt.Errorf("stat settings: %w", statErr)
	}

	if opts.SourceRoot != "" {
		cfg.SourceRoot = opts.SourceRoot
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

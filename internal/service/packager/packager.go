package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/extmeta/plugin-packager/internal/config"
	"github.com/extmeta/plugin-packager/internal/logger"
)

// Mode selects the output action applied to every plugin in the batch.
type Mode string

const (
	// ModeCopy copies each build output tree to the destination, replacing
	// any previous copy of the same plugin.
	ModeCopy Mode = "copy"
	// ModePack compresses each build output tree into a zip archive at the
	// destination, overwriting any previous archive of the same plugin.
	ModePack Mode = "pack"
)

var (
	// ErrUnknownMode is returned when the mode argument is neither copy nor pack.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrPathNotFound is returned when a required path does not exist on disk.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotADirectory is returned when a path exists but a directory is required.
	ErrNotADirectory = errors.New("not a directory")
)

// ParseMode converts the CLI mode argument into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCopy, ModePack:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// service packages plugin build outputs into the destination directory.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type service struct {
	// cfg holds the packaging layout: source root, path segments and plugin list.
	cfg *config.Config
	// mode is the output action applied to every plugin.
	mode Mode
	// destination is the absolute path of the directory receiving outputs.
	destination string
}

// newService validates the destination and source root and returns a ready service.
func newService(mode Mode, destination string, cfg *config.Config) (*service, error) {
	destination, err := filepath.Abs(destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	if err = validatePath(destination, true); err != nil {
		return nil, err
	}

	if err = validatePath(cfg.SourceRoot, true); err != nil {
		return nil, err
	}

	return &service{
		cfg:         cfg,
		mode:        mode,
		destination: destination,
	}, nil
}

// Run processes every configured plugin in list order. The first failure
// aborts the whole run: there is no per-plugin isolation and no retry.
func (s *service) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Packaging plugin build outputs",
		"mode", string(s.mode),
		"source_root", s.cfg.SourceRoot,
		"destination", s.destination)

	for _, plugin := range s.cfg.Plugins {
		if err := s.processPlugin(ctx, plugin); err != nil {
			return err
		}
	}

	return nil
}

// processPlugin resolves one plugin's build output and dispatches on mode.
func (s *service) processPlugin(ctx context.Context, plugin string) error {
	pluginRoot := filepath.Join(s.cfg.SourceRoot, plugin)
	if err := validatePath(pluginRoot, true); err != nil {
		return err
	}

	buildOutput, err := s.resolveBuildOutputPath(pluginRoot)
	if err != nil {
		return err
	}

	switch s.mode {
	case ModeCopy:
		target := filepath.Join(s.destination, plugin)

		logger.InfoKV(ctx, "Copying build output", "from", buildOutput, "to", target)

		return replaceTree(buildOutput, target)
	case ModePack:
		target := filepath.Join(s.destination, plugin+".zip")

		logger.InfoKV(ctx, "Packing build output", "from", buildOutput, "to", target)

		return packTree(buildOutput, target)
	default:
		// ParseMode guards the entry point; this is a programming error.
		return fmt.Errorf("%w: %q", ErrUnknownMode, s.mode)
	}
}

// resolveBuildOutputPath joins the plugin root with the configured build
// path segments (bin/<configuration>/<target>) and validates the result.
func (s *service) resolveBuildOutputPath(pluginRoot string) (string, error) {
	result := filepath.Join(pluginRoot, "bin", s.cfg.Configuration, s.cfg.TargetFramework)
	if err := validatePath(result, true); err != nil {
		return "", err
	}

	return result, nil
}

// validatePath surfaces a clear failure instead of a low-level I/O error
// before any operation that depends on the path's existence.
func validatePath(path string, mustBeDir bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	return nil
}

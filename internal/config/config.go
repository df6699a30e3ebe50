package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the packaging layout parameters shared by all modes.
type Config struct {
	// SourceRoot is the directory containing one subdirectory per plugin.
	SourceRoot string `yaml:"source_root"`
	// Configuration is the build flavor segment of the output path (e.g. Debug).
	Configuration string `yaml:"configuration"`
	// TargetFramework is the target platform segment of the output path (e.g. net462).
	TargetFramework string `yaml:"target_framework"`
	// Plugins is the ordered list of plugin directory names to package.
	Plugins []string `yaml:"plugins"`
}

const (
	// DefaultConfigFilename is the default filename for packaging settings.
	DefaultConfigFilename = "plugin-packager-settings.yaml"

	// DefaultSourceRoot is the plugin source tree location relative to the working directory.
	DefaultSourceRoot = "../src"

	// DefaultConfiguration is the build flavor produced by the upstream toolchain.
	DefaultConfiguration = "Debug"

	// DefaultTargetFramework is the target platform produced by the upstream toolchain.
	DefaultTargetFramework = "net462"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoPlugins is returned when the plugin list is empty.
	errNoPlugins = errors.New("plugin list must not be empty")
	// errEmptyPluginName is returned when the plugin list contains a blank entry.
	errEmptyPluginName = errors.New("plugin name must not be empty")
)

// defaultPlugins enumerates the plugin projects this tool packages, in
// packaging order. The list is configuration data, not discovered from disk:
// directories present under the source root but absent here are ignored.
//
//nolint:gochecknoglobals // Fixed table, copied on access via Default.
var defaultPlugins = []string{
	"F95ZoneMetadata",
	"DLSiteMetadata",
}

// Default returns a Config reproducing the built-in packaging layout.
func Default() *Config {
	return &Config{
		SourceRoot:      DefaultSourceRoot,
		Configuration:   DefaultConfiguration,
		TargetFramework: DefaultTargetFramework,
		Plugins:         append([]string(nil), defaultPlugins...),
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided configuration and fills absent fields with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.SourceRoot == "" {
		cfg.SourceRoot = DefaultSourceRoot
	}

	if cfg.Configuration == "" {
		cfg.Configuration = DefaultConfiguration
	}

	if cfg.TargetFramework == "" {
		cfg.TargetFramework = DefaultTargetFramework
	}

	if len(cfg.Plugins) == 0 {
		return errNoPlugins
	}

	for _, name := range cfg.Plugins {
		if name == "" {
			return errEmptyPluginName
		}
	}

	return nil
}

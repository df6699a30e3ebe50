package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/extmeta/plugin-packager/internal/config"
	"github.com/extmeta/plugin-packager/internal/logger"
	"github.com/extmeta/plugin-packager/internal/service/packager"
	"github.com/extmeta/plugin-packager/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// sourceRoot optionally overrides the plugin source tree location.
	sourceRoot string
	// logLevel is the minimum level for log output.
	logLevel string

	// rootCmd represents the base command for packaging plugin build outputs.
	rootCmd = &cobra.Command{
		Use:   "plugin-packager [mode] [destination]",
		Short: "Copy or archive plugin build outputs.",
		Long: `Package compiled plugin build outputs into a destination directory.

Mode "copy" recursively copies each plugin's build output tree to
<destination>/<plugin>, replacing any previous copy. Mode "pack" compresses
each build output into <destination>/<plugin>.zip with every file flattened
to its base filename.

Plugins are processed strictly in configured order and the first error
aborts the whole run. The plugin list and the bin/<configuration>/<target>
layout come from built-in defaults or an optional settings file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &packager.Options{
				ConfigPath:  configPath,
				Mode:        args[0],
				Destination: args[1],
				SourceRoot:  sourceRoot,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the plugin-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&sourceRoot, "source", "s", "", "override the plugin source root")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug, info, warn, error)")
}

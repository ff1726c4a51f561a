package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/battery-monitor/internal/config"
	"github.com/oshokin/battery-monitor/internal/logger"
	"github.com/oshokin/battery-monitor/internal/service/monitor"
	"github.com/oshokin/battery-monitor/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// overrides collects command line values applied on top of the settings file.
	overrides config.Overrides
	// createConfig writes the default settings file and exits.
	createConfig bool
	// allowMultiple skips the running instance check.
	allowMultiple bool

	// rootCmd represents the base command for monitoring the battery.
	rootCmd = &cobra.Command{
		Use:   "battery-monitor",
		Short: "Alert when the battery is low and not charging.",
		Long: `Background service that watches the laptop battery and shows a desktop notification
when the charge drops below the configured threshold while the charger is disconnected.

The battery is sampled every check_interval seconds. While the condition persists the
alert is repeated every notification_repeat_delay seconds. Every sample is appended to
the CSV telemetry file and, when configured, to a SQLite database.
Settings are read from a YAML file which is created with defaults when missing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if createConfig {
				if err := config.Save(configPath, config.Default()); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default configuration file created at %s\n", configPath)

				return nil
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadSettings(ctx)
			if err != nil {
				return err
			}

			level, _ := logger.ParseLogLevel(cfg.LogLevel)

			closeLog, err := logger.Setup(level, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			defer closeLog()

			return monitor.Run(ctx, &monitor.Options{
				Config:        cfg,
				AllowMultiple: allowMultiple,
			})
		},
	}
)

// loadSettings reads the settings file and applies command line overrides.
// A malformed file is reported and replaced by the defaults.
func loadSettings(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(configPath)

	switch {
	case err == nil:
	case errors.Is(err, config.ErrMalformed):
		logger.ErrorKV(ctx, "Invalid config file format, using defaults", "error", err)
	default:
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if err = config.ApplyOverrides(cfg, overrides); err != nil {
		return nil, err
	}

	return cfg, nil
}

// quietLogs limits one-shot subcommands to warnings so their output stays readable.
func quietLogs() {
	logger.SetLogger(logger.New(zapcore.WarnLevel))
}

// Execute runs the battery-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(newNotifyCommand(), newStatusCommand())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")

	rootCmd.Flags().IntVarP(&overrides.Threshold, "threshold", "t", 0, "battery threshold percentage (1-99)")
	rootCmd.Flags().IntVarP(&overrides.Interval, "interval", "i", 0, "check interval in seconds (at least 10)")
	rootCmd.Flags().BoolVarP(&overrides.Debug, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&overrides.TestMode, "test", false, "run in test mode (10s interval)")
	rootCmd.Flags().BoolVar(&createConfig, "create-config", false, "create default config file and exit")
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "do not refuse to start when another monitor is running")
}

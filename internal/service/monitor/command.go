package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/battery-monitor/internal/config"
	"github.com/oshokin/battery-monitor/internal/logger"
	"github.com/oshokin/battery-monitor/internal/repository/telemetry"
	"github.com/oshokin/battery-monitor/internal/service/common"
	"github.com/oshokin/battery-monitor/internal/service/notify"
	"github.com/oshokin/battery-monitor/internal/service/power"
)

// Options controls the monitor process.
type Options struct {
	// Config holds validated settings with command line overrides applied.
	Config *config.Config
	// AllowMultiple skips the check for another running monitor.
	AllowMultiple bool
}

// errConfigRequired is returned when Run is called without settings.
var errConfigRequired = errors.New("configuration is required")

// Run wires the platform reader, notifier and telemetry sinks and blocks until
// ctx is canceled or the loop fails.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "battery-monitor")

	if opts == nil || opts.Config == nil {
		return errConfigRequired
	}

	cfg := opts.Config

	if !opts.AllowMultiple {
		if err := common.FindRunningInstance(common.CurrentExecutable(), nil); err != nil {
			if errors.Is(err, common.ErrAlreadyRunning) {
				return err
			}

			logger.WarnKV(ctx, "Could not check for other instances", "error", err)
		}
	}

	sink, err := OpenSinks(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close telemetry", "error", closeErr)
		}
	}()

	m := New(
		power.NewReader(),
		notify.NewPlatformDispatcher(),
		sink,
		cfg.Policy(),
		cfg.Interval(),
	)

	return m.Run(ctx)
}

// OpenSinks builds the telemetry sinks enabled in cfg.
func OpenSinks(ctx context.Context, cfg *config.Config) (telemetry.MultiSink, error) {
	var sinks telemetry.MultiSink

	if cfg.TelemetryFile != "" {
		sinks = append(sinks, telemetry.NewCSVSink(cfg.TelemetryFile))
		logger.InfoKV(ctx, "Recording telemetry to CSV", "path", cfg.TelemetryFile)
	}

	if cfg.TelemetryDB != "" {
		host, err := common.DetectHost()
		if err != nil {
			logger.WarnKV(ctx, "Could not detect host, storing samples without it", "error", err)
		}

		db, err := telemetry.NewSQLiteSink(cfg.TelemetryDB, host.Hostname)
		if err != nil {
			_ = sinks.Close()
			return nil, fmt.Errorf("open telemetry database: %w", err)
		}

		sinks = append(sinks, db)
		logger.InfoKV(ctx, "Recording telemetry to SQLite", "path", cfg.TelemetryDB, "run_id", db.RunID())
	}

	return sinks, nil
}

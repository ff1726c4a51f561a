package monitor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
	"github.com/oshokin/battery-monitor/internal/logger"
	"github.com/oshokin/battery-monitor/internal/repository/telemetry"
	"github.com/oshokin/battery-monitor/internal/service/notify"
	"github.com/oshokin/battery-monitor/internal/service/power"
)

const (
	// StartedTitle is the title of the startup notification.
	StartedTitle = "Battery Monitor"
	// LowBatteryTitle is the title of the low-battery alert.
	LowBatteryTitle = "Low Battery Alert"
	// TelemetryFailureTitle is the title of the notification shown when a sample cannot be recorded.
	TelemetryFailureTitle = "Telemetry"
)

// ErrLoopFault indicates an unexpected failure inside a monitoring cycle.
var ErrLoopFault = errors.New("monitoring loop fault")

// Monitor drives the sampling cycles. It is not safe for concurrent use:
// the alert state is owned by the goroutine calling Run.
type Monitor struct {
	// reader samples the power supply.
	reader power.Reader
	// notifier shows user-visible notifications.
	notifier notify.Notifier
	// sink records every present sample.
	sink telemetry.Sink
	// policy holds the alert threshold and repeat delay.
	policy battery.Policy
	// interval is the wait between two cycles.
	interval time.Duration
	// now returns the current time for alert decisions.
	now func() time.Time
	// wait blocks for d or until ctx is done, reporting whether the full duration elapsed.
	wait func(ctx context.Context, d time.Duration) bool
	// state is the alert state committed by the last cycle.
	state battery.AlertState
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock overrides the clock used for alert decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// WithWait overrides the inter-cycle wait.
func WithWait(wait func(ctx context.Context, d time.Duration) bool) Option {
	return func(m *Monitor) {
		if wait != nil {
			m.wait = wait
		}
	}
}

// New creates a monitor. A nil sink discards samples.
func New(
	reader power.Reader,
	notifier notify.Notifier,
	sink telemetry.Sink,
	policy battery.Policy,
	interval time.Duration,
	opts ...Option,
) *Monitor {
	if sink == nil {
		sink = telemetry.Discard{}
	}

	m := &Monitor{
		reader:   reader,
		notifier: notifier,
		sink:     sink,
		policy:   policy,
		interval: interval,
		now:      time.Now,
		wait:     sleepContext,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// State returns the alert state committed by the last cycle.
func (m *Monitor) State() battery.AlertState {
	return m.state
}

// Run sends the startup notification and runs cycles until ctx is canceled.
// It returns nil on cancellation and an error wrapping ErrLoopFault when a cycle
// fails unexpectedly.
func (m *Monitor) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Battery monitor started",
		"threshold", m.policy.Threshold,
		"interval", m.interval.String(),
		"repeat_delay", m.policy.RepeatDelay.String())

	m.notifier.Notify(ctx, StartedTitle, fmt.Sprintf("Battery monitor started (threshold: %d%%, interval: %s)",
		m.policy.Threshold, m.interval))

	for {
		if ctx.Err() != nil {
			logger.Info(ctx, "Battery monitor stopped")
			return nil
		}

		if err := m.safeCycle(ctx); err != nil {
			logger.ErrorKV(ctx, "Error in monitoring loop", "error", err)
			return err
		}

		if !m.wait(ctx, m.interval) {
			logger.Info(ctx, "Battery monitor stopped")
			return nil
		}
	}
}

// safeCycle runs one cycle, converting a panic into ErrLoopFault.
func (m *Monitor) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.DebugKV(ctx, "Cycle panic stack", "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrLoopFault, r)
		}
	}()

	m.Cycle(ctx)

	return nil
}

// Cycle performs a single sample-decide-notify-record pass.
func (m *Monitor) Cycle(ctx context.Context) {
	sample := m.reader.Read(ctx)
	if !sample.Present {
		logger.Warn(ctx, "Could not get battery information")
		return
	}

	logger.DebugKV(ctx, "Battery sample",
		"percent", sample.ChargePercent,
		"plugged", sample.OnExternalPower)

	next, fire := battery.Decide(sample, m.state, m.policy, m.now())

	if m.state.Active && !next.Active {
		logger.Debug(ctx, "Alert condition cleared")
	}

	m.state = next

	if fire {
		logger.WarnKV(ctx, "Battery below threshold", "percent", sample.ChargePercent, "threshold", m.policy.Threshold)
		m.notifier.Notify(ctx, LowBatteryTitle, LowBatteryMessage(sample.ChargePercent))
	}

	// A cycle runs to completion even when cancellation arrives mid-way.
	if err := m.sink.Record(context.WithoutCancel(ctx), sample); err != nil {
		logger.ErrorKV(ctx, "Failed to record battery sample", "error", err)
		m.notifier.Notify(ctx, TelemetryFailureTitle, "Recording battery sample failed\n"+err.Error())
	}
}

// LowBatteryMessage renders the low-battery alert text.
func LowBatteryMessage(percent int) string {
	return fmt.Sprintf("Battery level is at %d%%. Please connect charger.", percent)
}

// sleepContext waits for d unless ctx is done first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

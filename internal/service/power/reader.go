package power

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
	"github.com/oshokin/battery-monitor/internal/logger"
)

var (
	// ErrNoBattery indicates the host does not expose any battery.
	ErrNoBattery = errors.New("no battery found")
	// ErrUnsupportedOS indicates the current OS has no power status back-end.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// Status is a raw power supply reading returned by a platform back-end.
type Status struct {
	// Percent is the remaining charge, possibly outside 0-100 on odd firmware.
	Percent int
	// Plugged reports whether external power is connected.
	Plugged bool
}

// Reader produces power samples.
type Reader interface {
	Read(ctx context.Context) battery.Sample
}

// QueryFunc queries the platform for the current power status.
type QueryFunc func(ctx context.Context) (Status, error)

// StatusReader adapts a QueryFunc to the Reader interface.
type StatusReader struct {
	// query is the platform back-end.
	query QueryFunc
	// now returns the sample timestamp.
	now func() time.Time
}

// Option configures a StatusReader.
type Option func(*StatusReader)

// WithClock overrides the clock used to timestamp samples.
func WithClock(now func() time.Time) Option {
	return func(r *StatusReader) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReader returns a reader for the current operating system.
func NewReader(opts ...Option) *StatusReader {
	return NewStatusReader(platformQuery(), opts...)
}

// NewStatusReader returns a reader backed by the provided query.
func NewStatusReader(query QueryFunc, opts ...Option) *StatusReader {
	r := &StatusReader{
		query: query,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Read queries the power supply. Any failure yields an absent sample.
func (r *StatusReader) Read(ctx context.Context) battery.Sample {
	ts := r.now()

	status, err := r.query(ctx)
	if err != nil {
		if errors.Is(err, ErrNoBattery) {
			logger.Debug(ctx, "No battery present")
		} else {
			logger.DebugKV(ctx, "Power status query failed", "error", err)
		}

		return battery.Absent(ts)
	}

	return battery.NewSample(ts, status.Percent, status.Plugged)
}

func unsupportedQuery(context.Context) (Status, error) {
	return Status{}, fmt.Errorf("%s: %w", runtime.GOOS, ErrUnsupportedOS)
}

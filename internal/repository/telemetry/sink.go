package telemetry

import (
	"context"
	"errors"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

// TimestampLayout is the second-precision layout used for stored timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrAbsentSample is returned when asked to record a sample without battery data.
var ErrAbsentSample = errors.New("sample has no battery data")

// Sink records samples.
type Sink interface {
	Record(ctx context.Context, sample battery.Sample) error
	Close() error
}

// MultiSink records every sample to all of its sinks.
type MultiSink []Sink

// Record writes the sample to every sink and joins their errors.
func (m MultiSink) Record(ctx context.Context, sample battery.Sample) error {
	errs := make([]error, 0, len(m))
	for _, sink := range m {
		errs = append(errs, sink.Record(ctx, sample))
	}

	return errors.Join(errs...)
}

// Close closes every sink and joins their errors.
func (m MultiSink) Close() error {
	errs := make([]error, 0, len(m))
	for _, sink := range m {
		errs = append(errs, sink.Close())
	}

	return errors.Join(errs...)
}

// Discard is a sink that drops every sample.
type Discard struct{}

// Record does nothing.
func (Discard) Record(context.Context, battery.Sample) error { return nil }

// Close does nothing.
func (Discard) Close() error { return nil }

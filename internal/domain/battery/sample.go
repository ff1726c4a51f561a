package battery

import (
	"fmt"
	"time"
)

// Sample is a single observation of the power source.
type Sample struct {
	// Timestamp is when the sample was taken.
	Timestamp time.Time
	// ChargePercent is the remaining charge in the range 0-100.
	ChargePercent int
	// OnExternalPower reports whether the host is connected to AC power.
	OnExternalPower bool
	// Present is false when the host has no battery or the query failed.
	// ChargePercent and OnExternalPower carry no meaning in that case.
	Present bool
}

// NewSample returns a present sample with the charge clamped to 0-100.
func NewSample(ts time.Time, percent int, plugged bool) Sample {
	return Sample{
		Timestamp:       ts,
		ChargePercent:   min(max(percent, 0), 100),
		OnExternalPower: plugged,
		Present:         true,
	}
}

// Absent returns a sample with no battery information.
func Absent(ts time.Time) Sample {
	return Sample{Timestamp: ts}
}

// String renders the sample for logs.
func (s Sample) String() string {
	if !s.Present {
		return "unknown"
	}

	return fmt.Sprintf("%d%% (plugged: %t)", s.ChargePercent, s.OnExternalPower)
}

package battery

import "time"

// Phase names the alert state machine position.
type Phase string

const (
	// PhaseIdle means no low-battery condition is being alerted.
	PhaseIdle Phase = "idle"
	// PhaseAlerting means a low-battery alert has fired and the condition persists.
	PhaseAlerting Phase = "alerting"
)

// Policy holds the alert parameters that stay fixed for a run.
type Policy struct {
	// Threshold is the charge percentage below which an alert fires.
	Threshold int
	// RepeatDelay is the cool-down between two alerts for the same ongoing condition.
	RepeatDelay time.Duration
}

// AlertState is the alert status carried from one cycle to the next.
// The zero value is the idle state.
type AlertState struct {
	// Active is true while the low-battery condition is being alerted.
	Active bool
	// LastFiredAt is when the last alert fired. It is zero until the first alert.
	LastFiredAt time.Time
}

// Phase reports the state machine position.
func (s AlertState) Phase() Phase {
	if s.Active {
		return PhaseAlerting
	}

	return PhaseIdle
}

// IsLow reports whether the sample is below the threshold while running on battery.
func (p Policy) IsLow(sample Sample) bool {
	return sample.Present && !sample.OnExternalPower && sample.ChargePercent < p.Threshold
}

// Decide computes the next alert state for a sample and reports whether an alert must fire.
//
// An absent sample leaves the state untouched. A sample at or above the threshold,
// or taken on external power, clears the alert. A low sample fires when idle, and
// fires again while alerting only once more than RepeatDelay has elapsed since the
// last alert.
func Decide(sample Sample, state AlertState, policy Policy, now time.Time) (AlertState, bool) {
	if !sample.Present {
		return state, false
	}

	if !policy.IsLow(sample) {
		return AlertState{LastFiredAt: state.LastFiredAt}, false
	}

	if state.Active && now.Sub(state.LastFiredAt) <= policy.RepeatDelay {
		return state, false
	}

	// LastFiredAt never moves backwards, even if the wall clock does.
	firedAt := now
	if firedAt.Before(state.LastFiredAt) {
		firedAt = state.LastFiredAt
	}

	return AlertState{Active: true, LastFiredAt: firedAt}, true
}

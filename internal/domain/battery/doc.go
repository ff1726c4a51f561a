// Package battery contains core domain types for low-battery alerting.
//
// It defines Sample (one observation of the power source), Policy (the alert
// threshold and repeat delay) and AlertState, together with Decide, the pure
// two-state machine (Idle/Alerting) that decides whether an alert fires.
package battery

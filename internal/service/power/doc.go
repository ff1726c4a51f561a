// Package power reads the state of the local power supply.
//
// A Reader returns one battery.Sample per call and never fails: hosts without
// a battery and failed queries both produce an absent sample, which callers
// must treat as "skip this cycle" rather than as an empty battery.
package power

// Package monitor runs the battery polling loop.
//
// Each cycle reads one sample, feeds it to the alert state machine, shows a
// low-battery notification when the machine decides to fire, records the
// sample and then waits for the next cycle. The wait is interrupted as soon as
// the context is canceled.
package monitor

// Package notify delivers user-visible desktop notifications.
//
// A Dispatcher walks an ordered list of Method strategies chosen for the host
// operating system and stops at the first one that succeeds. Failures are
// logged and counted but never returned, so a broken notifier cannot stop
// the monitoring loop.
package notify

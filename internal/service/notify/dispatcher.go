package notify

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/oshokin/battery-monitor/internal/logger"
)

// ErrAllMethodsFailed is recorded when no method could show a notification.
var ErrAllMethodsFailed = errors.New("all notification methods failed")

// Notifier sends user-visible notifications without reporting failures.
type Notifier interface {
	Notify(ctx context.Context, title, message string)
}

// Stats summarises the dispatcher history.
type Stats struct {
	// Sent counts notifications shown by some method.
	Sent uint64
	// Failed counts notifications no method could show.
	Failed uint64
	// LastError is the most recent failure, or nil.
	LastError error
}

// Dispatcher tries each method in order until one succeeds.
type Dispatcher struct {
	// methods are tried in order.
	methods []Method
	// mu protects stats.
	mu    sync.Mutex
	stats Stats
}

// NewDispatcher creates a dispatcher over the provided methods.
func NewDispatcher(methods ...Method) *Dispatcher {
	return &Dispatcher{
		methods: methods,
	}
}

// NewPlatformDispatcher creates a dispatcher for the current operating system.
func NewPlatformDispatcher() *Dispatcher {
	return NewDispatcher(MethodsFor(runtime.GOOS, ExecRunner)...)
}

// Notify shows a notification. It never fails; failures are logged and counted.
func (d *Dispatcher) Notify(ctx context.Context, title, message string) {
	_, _ = d.Probe(ctx, title, message)
}

// Probe shows a notification and returns the name of the method that succeeded.
// The error wraps ErrAllMethodsFailed together with every attempt's error.
func (d *Dispatcher) Probe(ctx context.Context, title, message string) (string, error) {
	attempts := make([]error, 0, len(d.methods))

	for _, method := range d.methods {
		err := try(ctx, method, title, message)
		if err == nil {
			d.record(nil)
			logger.InfoKV(ctx, "Notification sent", "title", title, "message", message, "method", method.Name())

			return method.Name(), nil
		}

		logger.DebugKV(ctx, "Notification method failed", "method", method.Name(), "error", err)
		attempts = append(attempts, fmt.Errorf("%s: %w", method.Name(), err))
	}

	err := errors.Join(append([]error{ErrAllMethodsFailed}, attempts...)...)
	d.record(err)
	logger.ErrorKV(ctx, "Failed to send notification", "title", title, "error", err)

	return "", err
}

// try calls the method, turning a panic into an error.
func try(ctx context.Context, method Method, title, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return method.Try(ctx, title, message)
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stats
}

func (d *Dispatcher) record(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err == nil {
		d.stats.Sent++
		return
	}

	d.stats.Failed++
	d.stats.LastError = err
}

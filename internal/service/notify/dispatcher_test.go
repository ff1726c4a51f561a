package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeMethod records calls and returns a configured error.
type fakeMethod struct {
	name  string
	err   error
	calls int
	panic bool
}

func (m *fakeMethod) Name() string {
	return m.name
}

func (m *fakeMethod) Try(context.Context, string, string) error {
	m.calls++

	if m.panic {
		panic("notifier crashed")
	}

	return m.err
}

// TestDispatcherStopsAtFirstSuccess verifies ordered fallback without retries after success.
func TestDispatcherStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	first := &fakeMethod{name: "notify-send", err: errors.New("not installed")}
	second := &fakeMethod{name: "zenity"}
	third := &fakeMethod{name: "kdialog"}

	d := NewDispatcher(first, second, third)

	name, err := d.Probe(context.Background(), "Low Battery Alert", "Battery level is at 9%.")
	require.NoError(t, err)
	require.Equal(t, "zenity", name)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Zero(t, third.calls)
	require.Equal(t, Stats{Sent: 1}, d.Stats())
}

// TestDispatcherAllMethodsFail returns normally and records the failure.
func TestDispatcherAllMethodsFail(t *testing.T) {
	t.Parallel()

	methods := []*fakeMethod{
		{name: "notify-send", err: errors.New("exit status 1")},
		{name: "zenity", panic: true},
		{name: "kdialog", err: errors.New("no display")},
	}

	d := NewDispatcher(methods[0], methods[1], methods[2])

	require.NotPanics(t, func() {
		d.Notify(context.Background(), "Low Battery Alert", "Battery level is at 9%.")
	})

	for _, m := range methods {
		require.Equal(t, 1, m.calls, m.name)
	}

	stats := d.Stats()
	require.Zero(t, stats.Sent)
	require.EqualValues(t, 1, stats.Failed)
	require.ErrorIs(t, stats.LastError, ErrAllMethodsFailed)
	require.ErrorContains(t, stats.LastError, "no display")
	require.ErrorContains(t, stats.LastError, "notifier crashed")
}

// TestDispatcherWithoutMethods still records a failure.
func TestDispatcherWithoutMethods(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	_, err := d.Probe(context.Background(), "title", "message")
	require.ErrorIs(t, err, ErrAllMethodsFailed)
	require.EqualValues(t, 1, d.Stats().Failed)
}

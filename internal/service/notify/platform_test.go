package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// call is one recorded Runner invocation.
type call struct {
	name string
	args []string
}

// recordingRunner records invocations and fails for programs listed in failing.
func recordingRunner(calls *[]call, failing ...string) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})

		for _, f := range failing {
			if f == name {
				return errors.New("exit status 1")
			}
		}

		return nil
	}
}

// TestLinuxFallbackOrder checks the Linux methods and their order.
func TestLinuxFallbackOrder(t *testing.T) {
	t.Parallel()

	var calls []call

	d := NewDispatcher(MethodsFor("linux", recordingRunner(&calls, "notify-send", "zenity", "kdialog"))...)
	d.Notify(context.Background(), "Low Battery Alert", "Battery level is at 9%. Please connect charger.")

	require.Len(t, calls, 3)
	require.Equal(t, "notify-send", calls[0].name)
	require.Equal(t, []string{"--app-name=battery-monitor", "Low Battery Alert", "Battery level is at 9%. Please connect charger."}, calls[0].args)
	require.Equal(t, "zenity", calls[1].name)
	require.Equal(t, []string{"--notification", "--text=Low Battery Alert: Battery level is at 9%. Please connect charger."}, calls[1].args)
	require.Equal(t, "kdialog", calls[2].name)
	require.Equal(t, []string{"--passivepopup", "Battery level is at 9%. Please connect charger.", "10", "--title", "Low Battery Alert"}, calls[2].args)
	require.EqualValues(t, 1, d.Stats().Failed)
}

// TestDarwinEscapesAppleScript ensures quotes in the message cannot break the script.
func TestDarwinEscapesAppleScript(t *testing.T) {
	t.Parallel()

	var calls []call

	d := NewDispatcher(MethodsFor("darwin", recordingRunner(&calls))...)
	name, err := d.Probe(context.Background(), `Say "hi"`, `back\slash`)
	require.NoError(t, err)
	require.Equal(t, "osascript", name)
	require.Len(t, calls, 1)
	require.Equal(t, []string{"-e", `display notification "back\\slash" with title "Say \"hi\""`}, calls[0].args)
}

// TestWindowsFallsBackToBurntToast uses BurntToast when the WinRT toast fails.
func TestWindowsFallsBackToBurntToast(t *testing.T) {
	t.Parallel()

	var calls []call

	failFirst := func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		if len(calls) == 1 {
			return errors.New("toast unavailable")
		}

		return nil
	}

	d := NewDispatcher(MethodsFor("windows", failFirst)...)
	name, err := d.Probe(context.Background(), "Low Battery Alert", "It's at 9%")
	require.NoError(t, err)
	require.Equal(t, "burnt-toast", name)
	require.Len(t, calls, 2)
	require.True(t, strings.Contains(calls[0].args[3], "ToastGeneric"))
	require.True(t, strings.Contains(calls[0].args[3], "It&apos;s at 9%"))
	require.Equal(t, "New-BurntToastNotification -Text 'Low Battery Alert', 'It''s at 9%'", calls[1].args[3])
}

// TestUnsupportedPlatform reports ErrUnsupportedOS through the dispatcher.
func TestUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(MethodsFor("plan9", nil)...)
	_, err := d.Probe(context.Background(), "title", "message")
	require.ErrorIs(t, err, ErrAllMethodsFailed)
	require.ErrorIs(t, err, ErrUnsupportedOS)
}

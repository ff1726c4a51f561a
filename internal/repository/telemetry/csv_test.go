package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

// TestCSVSinkHeaderWrittenOnce appends rows and writes the header only on creation.
func TestCSVSinkHeaderWrittenOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "battery_log.csv")
	sink := NewCSVSink(path)

	ts := time.Date(2024, 3, 1, 12, 0, 5, 999, time.UTC)
	require.NoError(t, sink.Record(context.Background(), battery.NewSample(ts, 42, false)))
	require.NoError(t, sink.Record(context.Background(), battery.NewSample(ts.Add(time.Minute), 41, true)))

	// A new sink over the same file must not repeat the header.
	require.NoError(t, NewCSVSink(path).Record(context.Background(), battery.NewSample(ts.Add(2*time.Minute), 40, true)))
	require.NoError(t, sink.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "timestamp,percent,plugged\n"+
		"2024-03-01 12:00:05,42,false\n"+
		"2024-03-01 12:01:05,41,true\n"+
		"2024-03-01 12:02:05,40,true\n", string(contents))
}

// TestCSVSinkRejectsAbsentSample leaves the file untouched for unknown samples.
func TestCSVSinkRejectsAbsentSample(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "battery_log.csv")

	err := NewCSVSink(path).Record(context.Background(), battery.Absent(time.Now()))
	require.ErrorIs(t, err, ErrAbsentSample)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestCSVSinkWriteFailure surfaces errors when the path is a directory.
func TestCSVSinkWriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := NewCSVSink(dir).Record(context.Background(), battery.NewSample(time.Now(), 42, false))
	require.Error(t, err)
}

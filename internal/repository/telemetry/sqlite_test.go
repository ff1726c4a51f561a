package telemetry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

func newTestSQLite(t *testing.T) *SQLiteSink {
	t.Helper()

	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "telemetry", "battery.db"), "test-host")
	require.NoError(t, err)

	t.Cleanup(func() { _ = sink.Close() })

	return sink
}

// TestSQLiteSinkRecord stores samples tagged with the run identifier and host.
func TestSQLiteSinkRecord(t *testing.T) {
	t.Parallel()

	sink := newTestSQLite(t)
	ctx := context.Background()

	_, err := uuid.Parse(sink.RunID())
	require.NoError(t, err)

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, sink.Record(ctx, battery.NewSample(ts, 14, false)))
	require.NoError(t, sink.Record(ctx, battery.NewSample(ts.Add(time.Minute), 15, true)))
	require.ErrorIs(t, sink.Record(ctx, battery.Absent(ts)), ErrAbsentSample)

	rows, err := sink.recorded(ctx)
	require.NoError(t, err)
	require.Equal(t, []Row{
		{RunID: sink.RunID(), Host: "test-host", Timestamp: ts, Percent: 14, Plugged: false},
		{RunID: sink.RunID(), Host: "test-host", Timestamp: ts.Add(time.Minute), Percent: 15, Plugged: true},
	}, rows)
}

// TestSQLiteSinkReopen applies migrations idempotently and keeps earlier rows.
func TestSQLiteSinkReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "battery.db")
	ctx := context.Background()

	first, err := NewSQLiteSink(path, "host")
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, battery.NewSample(time.Now(), 50, true)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteSink(path, "host")
	require.NoError(t, err)

	defer second.Close()

	require.NotEqual(t, first.RunID(), second.RunID())

	var count int
	require.NoError(t, second.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM battery_samples`).Scan(&count))
	require.Equal(t, 1, count)

	var version int
	require.NoError(t, second.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version))
	require.Equal(t, len(migrations), version)
}

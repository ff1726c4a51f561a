package telemetry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

// csvFilePermissions is the permission mask of a newly created CSV file.
const csvFilePermissions = 0o644

// csvHeader is written once when the file is created.
var csvHeader = []string{"timestamp", "percent", "plugged"}

// CSVSink appends samples to a CSV file, opening it for every record
// so that the file can be rotated or removed while the monitor runs.
type CSVSink struct {
	// path is the filesystem location of the CSV file.
	path string
	// mu serializes writes to the file.
	mu sync.Mutex
}

// NewCSVSink creates a sink appending to the file at path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{
		path: filepath.Clean(path),
	}
}

// Record appends a row, writing the header first when the file does not exist yet.
func (s *CSVSink) Record(_ context.Context, sample battery.Sample) error {
	if !sample.Present {
		return ErrAbsentSample
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)

	isNew := errors.Is(err, os.ErrNotExist)
	if err != nil && !isNew {
		return fmt.Errorf("stat telemetry file: %w", err)
	}

	if dir := filepath.Dir(s.path); isNew && dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create telemetry directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, csvFilePermissions)
	if err != nil {
		return fmt.Errorf("open telemetry file: %w", err)
	}

	w := csv.NewWriter(file)

	if isNew {
		_ = w.Write(csvHeader)
	}

	_ = w.Write([]string{
		sample.Timestamp.Format(TimestampLayout),
		strconv.Itoa(sample.ChargePercent),
		strconv.FormatBool(sample.OnExternalPower),
	})

	w.Flush()

	if err = w.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("write telemetry row: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close telemetry file: %w", err)
	}

	return nil
}

// Close is a no-op; the file is closed after every record.
func (s *CSVSink) Close() error {
	return nil
}

package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/battery-monitor/internal/domain/battery"

	_ "modernc.org/sqlite"
)

// Row is a stored sample.
type Row struct {
	RunID     string
	Host      string
	Timestamp time.Time
	Percent   int
	Plugged   bool
}

// SQLiteSink inserts samples into a SQLite database.
type SQLiteSink struct {
	db *sql.DB
	// runID tags every row written by this process.
	runID string
	// host is the machine name stored with every row.
	host string
}

// NewSQLiteSink opens or creates the database at dbPath and applies migrations.
func NewSQLiteSink(dbPath, host string) (*SQLiteSink, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Samples are written by a single goroutine.
	db.SetMaxOpenConns(1)

	if err = runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSink{
		db:    db,
		runID: uuid.New().String(),
		host:  host,
	}, nil
}

// RunID returns the identifier attached to rows written by this sink.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// Record inserts the sample.
func (s *SQLiteSink) Record(ctx context.Context, sample battery.Sample) error {
	if !sample.Present {
		return ErrAbsentSample
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO battery_samples (run_id, host, timestamp, percent, plugged) VALUES (?, ?, ?, ?, ?)`,
		s.runID, s.host, sample.Timestamp.Format(TimestampLayout), sample.ChargePercent, sample.OnExternalPower,
	)
	if err != nil {
		return fmt.Errorf("insert battery sample: %w", err)
	}

	return nil
}

// recorded returns the samples written by this run in insertion order.
func (s *SQLiteSink) recorded(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, host, timestamp, percent, plugged FROM battery_samples WHERE run_id = ? ORDER BY id`,
		s.runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query battery samples: %w", err)
	}
	defer rows.Close()

	var result []Row

	for rows.Next() {
		var (
			r  Row
			ts string
		)

		if err = rows.Scan(&r.RunID, &r.Host, &ts, &r.Percent, &r.Plugged); err != nil {
			return nil, fmt.Errorf("scan battery sample: %w", err)
		}

		if r.Timestamp, err = time.ParseInLocation(TimestampLayout, ts, time.Local); err != nil {
			return nil, fmt.Errorf("parse sample timestamp: %w", err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

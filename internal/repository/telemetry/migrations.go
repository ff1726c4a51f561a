package telemetry

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; the index plus one is the schema version.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS battery_samples (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id    TEXT    NOT NULL,
		host      TEXT    NOT NULL,
		timestamp TEXT    NOT NULL,
		percent   INTEGER NOT NULL,
		plugged   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_battery_samples_timestamp ON battery_samples(timestamp)`,
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err = tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}

		if _, err = tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}

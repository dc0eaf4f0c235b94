package cache

import "fmt"

// migrate creates the cache schema. The schema is tiny and idempotent, so
// plain CREATE IF NOT EXISTS is enough; no version table.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recent_trips (
			id               TEXT PRIMARY KEY,
			driver_name      TEXT NOT NULL,
			truck_number     TEXT NOT NULL,
			current_location TEXT NOT NULL,
			pickup_location  TEXT NOT NULL,
			dropoff_location TEXT NOT NULL,
			created_at       TEXT NOT NULL,
			last_viewed      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recent_trips_viewed ON recent_trips(last_viewed DESC)`,
		`CREATE TABLE IF NOT EXISTS recent_values (
			kind     TEXT NOT NULL,
			value    TEXT NOT NULL,
			added_at INTEGER NOT NULL,
			PRIMARY KEY (kind, value)
		)`,
		`CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("cache: migrate: %w", err)
		}
	}
	return nil
}

// Package cache is the client's only persistent state: a small SQLite
// database holding recently viewed trips, the last-viewed trip id and
// per-field autocomplete memory. Everything in here is an affordance, so
// every operation absorbs storage failure: a failed write is logged and
// ignored, a failed read returns an empty or default value.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"hauldeck/internal/trip"
)

const (
	// RecentTripCap bounds the recently-viewed list.
	RecentTripCap = 10
	// RecentValueCap bounds the driver/truck autocomplete memory.
	RecentValueCap = 5
)

// Kinds accepted by AddRecentValue.
const (
	KindDrivers  = "drivers"
	KindTrucks   = "trucks"
	KindCarriers = "carriers"
)

const lastViewedKey = "last_viewed_trip"
const defaultCarrierKey = "default_carrier"

// RecentTrip is the denormalized projection kept for the "recently
// visited" affordance.
type RecentTrip struct {
	ID              string
	DriverName      string
	TruckNumber     string
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CreatedAt       string
	LastViewed      time.Time
}

// Preferences is the autocomplete memory updated on successful creation.
type Preferences struct {
	DefaultCarrier     string
	RecentDriverNames  []string
	RecentTruckNumbers []string
}

// Store owns the SQLite cache file. It is the only component allowed to
// touch the persistent key-value store.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// Open initializes the cache database at path, creating the directory and
// schema as needed.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("cache: set busy_timeout failed", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("cache: set journal_mode failed", zap.Error(err))
	}

	s := &Store{db: db, log: log, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecent records a visit. An id already present moves to the front
// with a refreshed timestamp; the list stays capped at RecentTripCap.
func (s *Store) SaveRecent(r RecentTrip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.LastViewed = s.now()
	_, err := s.db.Exec(`
		INSERT INTO recent_trips
			(id, driver_name, truck_number, current_location, pickup_location, dropoff_location, created_at, last_viewed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			driver_name = excluded.driver_name,
			truck_number = excluded.truck_number,
			current_location = excluded.current_location,
			pickup_location = excluded.pickup_location,
			dropoff_location = excluded.dropoff_location,
			created_at = excluded.created_at,
			last_viewed = excluded.last_viewed`,
		r.ID, r.DriverName, r.TruckNumber, r.CurrentLocation, r.PickupLocation,
		r.DropoffLocation, r.CreatedAt, r.LastViewed.UnixNano())
	if err != nil {
		s.log.Warn("cache: save recent trip failed", zap.String("id", r.ID), zap.Error(err))
		return
	}

	// Evict beyond the cap, oldest-viewed first.
	_, err = s.db.Exec(`
		DELETE FROM recent_trips WHERE id NOT IN (
			SELECT id FROM recent_trips ORDER BY last_viewed DESC LIMIT ?)`,
		RecentTripCap)
	if err != nil {
		s.log.Warn("cache: trim recent trips failed", zap.Error(err))
	}
}

// Recent lists recently viewed trips, most recent first. Failure yields
// an empty list.
func (s *Store) Recent() []RecentTrip {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, driver_name, truck_number, current_location, pickup_location,
		       dropoff_location, created_at, last_viewed
		FROM recent_trips ORDER BY last_viewed DESC LIMIT ?`, RecentTripCap)
	if err != nil {
		s.log.Warn("cache: load recent trips failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []RecentTrip
	for rows.Next() {
		var r RecentTrip
		var viewed int64
		if err := rows.Scan(&r.ID, &r.DriverName, &r.TruckNumber, &r.CurrentLocation,
			&r.PickupLocation, &r.DropoffLocation, &r.CreatedAt, &viewed); err != nil {
			s.log.Warn("cache: scan recent trip failed", zap.Error(err))
			return out
		}
		r.LastViewed = time.Unix(0, viewed)
		out = append(out, r)
	}
	return out
}

// RemoveRecent drops one trip from the recently-viewed list.
func (s *Store) RemoveRecent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM recent_trips WHERE id = ?`, id); err != nil {
		s.log.Warn("cache: remove recent trip failed", zap.String("id", id), zap.Error(err))
	}
}

// SaveLastViewed records the single last-viewed trip id.
func (s *Store) SaveLastViewed(id string) {
	s.setKV(lastViewedKey, id)
}

// LastViewed returns the last-viewed trip id, or "" when unset or on
// storage failure.
func (s *Store) LastViewed() string {
	return s.getKV(lastViewedKey)
}

// Preferences loads the autocomplete memory. Failures yield an empty
// default.
func (s *Store) Preferences() Preferences {
	return Preferences{
		DefaultCarrier:     s.getKV(defaultCarrierKey),
		RecentDriverNames:  s.recentValues(KindDrivers),
		RecentTruckNumbers: s.recentValues(KindTrucks),
	}
}

// AddRecentValue updates one recency list. Drivers and trucks keep the
// RecentValueCap most recent distinct values, newest first; carriers
// overwrite the single default-carrier slot. Unknown kinds are ignored.
func (s *Store) AddRecentValue(kind, value string) {
	if value == "" {
		return
	}
	switch kind {
	case KindCarriers:
		s.setKV(defaultCarrierKey, value)
	case KindDrivers, KindTrucks:
		s.mu.Lock()
		defer s.mu.Unlock()

		_, err := s.db.Exec(`
			INSERT INTO recent_values (kind, value, added_at) VALUES (?, ?, ?)
			ON CONFLICT(kind, value) DO UPDATE SET added_at = excluded.added_at`,
			kind, value, s.now().UnixNano())
		if err != nil {
			s.log.Warn("cache: save recent value failed", zap.String("kind", kind), zap.Error(err))
			return
		}
		_, err = s.db.Exec(`
			DELETE FROM recent_values WHERE kind = ? AND value NOT IN (
				SELECT value FROM recent_values WHERE kind = ? ORDER BY added_at DESC LIMIT ?)`,
			kind, kind, RecentValueCap)
		if err != nil {
			s.log.Warn("cache: trim recent values failed", zap.String("kind", kind), zap.Error(err))
		}
	default:
		s.log.Warn("cache: unknown recent-value kind", zap.String("kind", kind))
	}
}

// Clear removes every key this component owns.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []string{
		`DELETE FROM recent_trips`,
		`DELETE FROM recent_values`,
		`DELETE FROM kv`,
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			s.log.Warn("cache: clear failed", zap.String("stmt", stmt), zap.Error(err))
		}
	}
}

// ProjectTrip converts a full trip into its recently-viewed projection.
func ProjectTrip(t *trip.Trip) RecentTrip {
	return RecentTrip{
		ID:              t.ID,
		DriverName:      t.DriverName,
		TruckNumber:     t.TruckNumber,
		CurrentLocation: t.CurrentLocation,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		CreatedAt:       t.CreatedAt,
	}
}

func (s *Store) recentValues(kind string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT value FROM recent_values WHERE kind = ? ORDER BY added_at DESC LIMIT ?`,
		kind, RecentValueCap)
	if err != nil {
		s.log.Warn("cache: load recent values failed", zap.String("kind", kind), zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			s.log.Warn("cache: scan recent value failed", zap.Error(err))
			return out
		}
		out = append(out, v)
	}
	return out
}

func (s *Store) setKV(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		s.log.Warn("cache: write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) getKV(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		s.log.Warn("cache: read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return value
}

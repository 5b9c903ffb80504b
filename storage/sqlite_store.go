package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gomite/worktime"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the local application state: most-recently-used form
// selections and the holiday cache. The reconciliation engine itself is
// stateless; everything here is caller-side convenience.
type SQLiteStore struct {
	db *sql.DB
}

var ErrNoRecentSelection = errors.New("no recent selection")

// Well-known recent selection names.
const (
	RecentProjectID = "project_id"
	RecentServiceID = "service_id"
)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recent_selections (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
		`CREATE TABLE IF NOT EXISTS holiday_cache (
	year INTEGER NOT NULL,
	region TEXT NOT NULL,
	position INTEGER NOT NULL,
	date TEXT NOT NULL,
	name TEXT NOT NULL,
	statewide INTEGER NOT NULL,
	fetched_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (year, region, position)
);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// RecentSelection returns the stored value for one selection name.
func (s *SQLiteStore) RecentSelection(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM recent_selections WHERE name = ?;`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNoRecentSelection, name)
	}
	if err != nil {
		return "", fmt.Errorf("query recent selection %s: %w", name, err)
	}
	return value, nil
}

func (s *SQLiteStore) SetRecentSelection(name, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO recent_selections (name, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP;`,
		name,
		value,
	)
	if err != nil {
		return fmt.Errorf("store recent selection %s: %w", name, err)
	}
	return nil
}

// Holidays returns the cached holiday list for one (year, region) in its
// original fetch order. The second return value reports whether the cache
// holds an entry for that key at all.
func (s *SQLiteStore) Holidays(year int, region string) ([]worktime.Holiday, bool, error) {
	rows, err := s.db.Query(
		`SELECT date, name, statewide FROM holiday_cache
		 WHERE year = ? AND region = ?
		 ORDER BY position;`,
		year,
		region,
	)
	if err != nil {
		return nil, false, fmt.Errorf("query holiday cache: %w", err)
	}
	defer rows.Close()

	found := false
	holidays := make([]worktime.Holiday, 0, 16)
	for rows.Next() {
		found = true
		var (
			date      string
			name      string
			statewide int
		)
		if err := rows.Scan(&date, &name, &statewide); err != nil {
			return nil, false, fmt.Errorf("scan holiday cache row: %w", err)
		}
		if date == "" {
			// Marker row for a known-empty year.
			continue
		}
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, false, fmt.Errorf("parse cached holiday date %q: %w", date, err)
		}
		holidays = append(holidays, worktime.Holiday{
			Date:      parsed,
			Name:      name,
			Statewide: statewide == 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate holiday cache: %w", err)
	}

	return holidays, found, nil
}

// SaveHolidays replaces the cached list for one (year, region). A zero
// position row marks an empty-but-known year so a fruitless fetch is not
// repeated.
func (s *SQLiteStore) SaveHolidays(year int, region string, holidays []worktime.Holiday) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin holiday cache tx: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM holiday_cache WHERE year = ? AND region = ?;`, year, region); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear holiday cache: %w", err)
	}

	for position, holiday := range holidays {
		statewide := 0
		if holiday.Statewide {
			statewide = 1
		}
		_, err := tx.Exec(
			`INSERT INTO holiday_cache (year, region, position, date, name, statewide)
			 VALUES (?, ?, ?, ?, ?, ?);`,
			year,
			region,
			position+1,
			holiday.Date.Format("2006-01-02"),
			holiday.Name,
			statewide,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert holiday cache row: %w", err)
		}
	}

	if len(holidays) == 0 {
		_, err := tx.Exec(
			`INSERT INTO holiday_cache (year, region, position, date, name, statewide)
			 VALUES (?, ?, 0, '', '', 0);`,
			year,
			region,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert empty holiday cache marker: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit holiday cache tx: %w", err)
	}
	return nil
}

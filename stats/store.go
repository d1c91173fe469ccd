package stats

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists visits in a SQLite database separate from the blog content
// database.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the stats database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure stats schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visitor_id TEXT NOT NULL,
    browser TEXT NOT NULL,
    os TEXT NOT NULL,
    device TEXT NOT NULL,
    path TEXT NOT NULL,
    referrer TEXT,
    timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// InitSalt loads or generates the persistent salt for visitor hashing.
// Must be called once at startup before any hit is recorded.
func (s *Store) InitSalt() error {
	salt, err := s.getSetting("hash_salt")
	if err != nil {
		return fmt.Errorf("read hash salt: %w", err)
	}
	if salt == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(b)
		if err := s.setSetting("hash_salt", salt); err != nil {
			return fmt.Errorf("store hash salt: %w", err)
		}
	}
	s.salt = salt
	return nil
}

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// timeLayout is how visit timestamps are stored. SQLite's date and time
// functions only understand a few TEXT formats, so timestamps are bound as
// formatted strings rather than driver-native time values.
const timeLayout = "2006-01-02 15:04:05"

// RecordVisit inserts one visit row.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (visitor_id, browser, os, device, path, referrer, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.Browser, v.OS, v.Device, v.Path, v.Referrer, v.Timestamp.UTC().Format(timeLayout),
	)
	return err
}

// Summarize aggregates visits since the given cutoff.
func (s *Store) Summarize(since time.Time, period string) (Summary, error) {
	sum := Summary{Period: period}
	cutoff := since.UTC().Format(timeLayout)

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ?`, cutoff,
	).Scan(&sum.TotalViews, &sum.UniqueVisitors)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS views FROM visits WHERE timestamp >= ? GROUP BY path ORDER BY views DESC LIMIT 10`, cutoff,
	)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return Summary{}, err
		}
		sum.TopPages = append(sum.TopPages, p)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	daily, err := s.db.Query(
		`SELECT date(timestamp) AS day, COUNT(*) FROM visits WHERE timestamp >= ? GROUP BY day ORDER BY day`, cutoff,
	)
	if err != nil {
		return Summary{}, err
	}
	defer daily.Close()
	for daily.Next() {
		var d DailyView
		if err := daily.Scan(&d.Date, &d.Views); err != nil {
			return Summary{}, err
		}
		sum.DailyViews = append(sum.DailyViews, d)
	}
	return sum, daily.Err()
}

// DeleteOlderThan removes visits past the retention window and returns the
// number of rows deleted.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler deletes visits older than retentionDays on the given
// interval. The returned function stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				_, _ = s.DeleteOlderThan(cutoff)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

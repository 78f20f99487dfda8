// Package history persists supervised-run records.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/pkg/filesystem"
	"github.com/doeshing/ivyrun/internal/ports"
)

// SQLiteStore persists run records in a SQLite database. When the
// database cannot be opened the store degrades to a no-op so a broken
// history file never blocks a run.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.ivyrun/history/runs.db database.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.UserHomeDir(), ".ivyrun", "history", "runs.db"))
}

// NewSQLiteStoreAt opens a store at an explicit path.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT,
		duration_ms INTEGER,
		bind TEXT,
		health_outcome TEXT,
		shutdown_outcome TEXT,
		exit_code INTEGER,
		success INTEGER
	);`)
	return err
}

// Available reports whether the backing database opened.
func (s *SQLiteStore) Available() bool {
	return s.db != nil
}

// Save inserts a new run record.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO runs
		(id, started_at, duration_ms, bind, health_outcome, shutdown_outcome, exit_code, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StartedAt.Format(time.RFC3339),
		record.DurationMS,
		record.Bind,
		string(record.HealthOutcome),
		string(record.ShutdownOutcome),
		record.ExitCode,
		boolToInt(record.Success),
	)
	return err
}

// List returns the most recent run records, newest first.
func (s *SQLiteStore) List(limit int) ([]domain.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	query := `SELECT id, started_at, duration_ms, bind, health_outcome, shutdown_outcome, exit_code, success
		FROM runs ORDER BY datetime(started_at) DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts string
		var health, shutdown string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.DurationMS, &rec.Bind, &health, &shutdown, &rec.ExitCode, &success); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.StartedAt = t
		}
		rec.HealthOutcome = domain.HealthOutcome(health)
		rec.ShutdownOutcome = domain.ShutdownOutcome(shutdown)
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all run records.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.RunRepository = (*SQLiteStore)(nil)

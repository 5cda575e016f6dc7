// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("storage: run not found")

// Run outcomes.
const (
	OutcomeDied = "died"
	OutcomeQuit = "quit"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished game session.
type Run struct {
	ID         int64
	RunID      string // UUID assigned when the session starts
	Level      string
	Seed       int64
	Difficulty string
	Survived   time.Duration // simulation time, paused time excluded
	Hazards    int           // hazards dropped
	Dodged     int           // hazards that expired without a hit
	Outcome    string        // "died" or "quit"
	CreatedAt  time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			survived_ms INTEGER NOT NULL,
			hazards INTEGER NOT NULL DEFAULT 0,
			dodged INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level, survived_ms DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing RunID is generated.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		r.RunID = NewRunID()
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeDied
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, level, seed, difficulty, survived_ms, hazards, dodged, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Level, r.Seed, r.Difficulty, r.Survived.Milliseconds(), r.Hazards, r.Dodged, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, level, seed, difficulty, survived_ms, hazards, dodged, outcome, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var survivedMS int64
	var createdAt any
	if err := sc.Scan(&r.ID, &r.RunID, &r.Level, &r.Seed, &r.Difficulty,
		&survivedMS, &r.Hazards, &r.Dodged, &r.Outcome, &createdAt); err != nil {
		return r, err
	}
	r.Survived = time.Duration(survivedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// TopRuns retrieves the longest runs on a level, longest first.
// An empty level covers all levels.
func (s *Store) TopRuns(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR level = ?)
		 ORDER BY survived_ms DESC, id ASC
		 LIMIT ?`,
		level, level, limit,
	)
}

// RecentRuns retrieves the most recently saved runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its run id.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// BestTime returns the longest survival on a level.
// Returns 0 if no runs exist.
func (s *Store) BestTime(level string) (time.Duration, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(survived_ms) FROM runs WHERE level = ?",
		level,
	).Scan(&ms)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ms.Valid {
		return 0, nil
	}

	return time.Duration(ms.Int64) * time.Millisecond, nil
}

// ClearRuns deletes all runs on a level. An empty level clears everything.
func (s *Store) ClearRuns(level string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE (? = '' OR level = ?)", level, level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level        string
	Runs         int
	Best         time.Duration
	Average      time.Duration
	TotalHazards int64
	LastPlayed   time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(level string) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	var best int64
	var avg float64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survived_ms), 0), COALESCE(AVG(survived_ms), 0),
		        COALESCE(SUM(hazards), 0), MAX(created_at)
		 FROM runs WHERE level = ?`,
		level,
	).Scan(&stats.Runs, &best, &avg, &stats.TotalHazards, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	stats.Best = time.Duration(best) * time.Millisecond
	stats.Average = time.Duration(avg) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MAX(survived_ms), AVG(survived_ms), SUM(hazards), MAX(created_at)
		 FROM runs
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var best int64
		var avg float64
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Runs, &best, &avg, &ls.TotalHazards, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.Best = time.Duration(best) * time.Millisecond
		ls.Average = time.Duration(avg) * time.Millisecond
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

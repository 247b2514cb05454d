// Package storage provides the SQLite run ledger: finished runs and the
// point awards earned during them.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is one finished (or exposed) run.
type Run struct {
	ID         string // UUID
	Difficulty string
	Outcome    string
	Points     int
	Hacked     int
	Population int64
	Casualties int64
	Detection  float64
	Ticks      uint64
	CreatedAt  time.Time
}

// Award is a single point award within a run.
type Award struct {
	ID        int64
	RunID     string
	Kind      string // "hack" or "round"
	Target    string // Country code
	Points    int
	Detail    string
	CreatedAt time.Time
}

// Stats aggregates every run in the ledger.
type Stats struct {
	Runs            int
	BestPoints      int
	AvgPoints       float64
	TotalCasualties int64
	LastPlayed      time.Time
}

// Open creates or opens a SQLite database at the given path.
// An empty path or MemoryDSN opens an in-memory ledger that is gone when
// the store is closed. For files it creates the parent directories if
// needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	memory := dbPath == "" || dbPath == MemoryDSN
	if memory {
		dbPath = MemoryDSN
	} else {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
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
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			outcome TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			hacked INTEGER NOT NULL DEFAULT 0,
			population INTEGER NOT NULL DEFAULT 0,
			casualties INTEGER NOT NULL DEFAULT 0,
			detection REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_points ON runs(points DESC);

		CREATE TABLE IF NOT EXISTS awards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			target TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_awards_run_id ON awards(run_id);
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

// SaveRun inserts a run or replaces the row with the same ID.
func (s *Store) SaveRun(r Run) error {
	if r.ID == "" {
		return errors.New("storage: run has no ID")
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, difficulty, outcome, points, hacked, population, casualties, detection, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   outcome = excluded.outcome,
		   points = excluded.points,
		   hacked = excluded.hacked,
		   population = excluded.population,
		   casualties = excluded.casualties,
		   detection = excluded.detection,
		   ticks = excluded.ticks`,
		r.ID, r.Difficulty, r.Outcome, r.Points, r.Hacked,
		r.Population, r.Casualties, r.Detection, int64(r.Ticks), //#nosec G115 -- tick counts fit in int64
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecordAward appends a point award.
// Returns the ID of the inserted record.
func (s *Store) RecordAward(a Award) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO awards (run_id, kind, target, points, detail) VALUES (?, ?, ?, ?, ?)",
		a.RunID, a.Kind, a.Target, a.Points, a.Detail,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record award: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunByID retrieves a run. Returns nil if no run has that ID.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, difficulty, outcome, points, hacked, population, casualties, detection, ticks, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, outcome, points, hacked, population, casualties, detection, ticks, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
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

// RunAwards retrieves the awards of a run in the order they were earned.
func (s *Store) RunAwards(runID string) ([]Award, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, kind, target, points, detail, created_at
		 FROM awards
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query awards: %w", err)
	}
	defer rows.Close()

	var awards []Award
	for rows.Next() {
		var a Award
		var createdAt any
		if err := rows.Scan(&a.ID, &a.RunID, &a.Kind, &a.Target, &a.Points, &a.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		awards = append(awards, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return awards, nil
}

// GetStats retrieves aggregated statistics over every run.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(points), 0), COALESCE(AVG(points), 0),
		        COALESCE(SUM(casualties), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestPoints, &stats.AvgPoints, &stats.TotalCasualties, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes every run and award.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM awards; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var ticks int64
	var createdAt any
	err := sc.Scan(&r.ID, &r.Difficulty, &r.Outcome, &r.Points, &r.Hacked,
		&r.Population, &r.Casualties, &r.Detection, &ticks, &createdAt)
	if err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
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

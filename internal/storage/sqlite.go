// Package storage provides SQLite-based persistence for path count runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-paths/internal/paths"
)

// Store manages the SQLite database connection for the run history.
type Store struct {
	db *sql.DB
}

// Run is a single recorded path count.
type Run struct {
	ID        string
	Scenario  string // empty for ad hoc counts
	Rows      int
	Cols      int
	Snake     string // "r,c r,c ..." head first
	Depth     int
	Strategy  string
	Workers   int
	Count     uint64
	Elapsed   time.Duration
	CreatedAt time.Time
}

// ScenarioStats contains aggregated statistics for one scenario.
type ScenarioStats struct {
	Scenario   string
	Runs       int
	AvgElapsed time.Duration
	MaxElapsed time.Duration
	LastRun    time.Time
}

// NewRun builds a record from a validated input and its result.
func NewRun(scenario string, in paths.Input, res paths.Result) Run {
	r := Run{
		Scenario: scenario,
		Snake:    FormatSnake(in.Snake),
		Depth:    in.Depth,
		Strategy: string(res.Stats.Strategy),
		Workers:  res.Stats.Workers,
		Count:    res.Count,
		Elapsed:  res.Stats.Elapsed,
	}
	if len(in.Board) == 2 {
		r.Rows, r.Cols = in.Board[0], in.Board[1]
	}
	return r
}

// FormatSnake renders cells as "r,c r,c ...".
func FormatSnake(cells [][]int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		nums := make([]string, len(c))
		for j, n := range c {
			nums[j] = strconv.Itoa(n)
		}
		parts[i] = strings.Join(nums, ",")
	}
	return strings.Join(parts, " ")
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
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL DEFAULT '',
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			snake TEXT NOT NULL,
			depth INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			workers INTEGER NOT NULL DEFAULT 0,
			path_count INTEGER NOT NULL,
			elapsed_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(board_rows, board_cols, snake, depth);
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

// SaveRun records a run. A random ID is assigned when r.ID is empty.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, scenario, board_rows, board_cols, snake, depth, strategy, workers, path_count, elapsed_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Scenario,
		r.Rows,
		r.Cols,
		r.Snake,
		r.Depth,
		r.Strategy,
		r.Workers,
		int64(r.Count),
		r.Elapsed.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, scenario, board_rows, board_cols, snake, depth, strategy, workers, path_count, elapsed_us, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsFor retrieves the most recent runs of one scenario, newest first.
func (s *Store) RunsFor(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		scenario, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if there is none.
func (s *Store) RunByID(id string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// LookupCount returns a previously recorded count for the same input.
// Counts are a pure function of the input, so any earlier run will do.
func (s *Store) LookupCount(rows, cols int, snake string, depth int) (uint64, bool, error) {
	var count int64
	err := s.db.QueryRow(
		`SELECT path_count FROM runs
		 WHERE board_rows = ? AND board_cols = ? AND snake = ? AND depth = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		rows, cols, snake, depth,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot look up count: %w", err)
	}
	return uint64(count), true, nil
}

// ClearRuns deletes all runs of the given scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// AllScenarioStats retrieves statistics for every scenario that has runs.
// Ad hoc counts are grouped under the empty name.
func (s *Store) AllScenarioStats() ([]ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), COALESCE(AVG(elapsed_us), 0), COALESCE(MAX(elapsed_us), 0), MAX(created_at)
		 FROM runs
		 GROUP BY scenario
		 ORDER BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	var stats []ScenarioStats
	for rows.Next() {
		var (
			st       ScenarioStats
			avg      float64
			maxUs    int64
			lastSeen any
		)
		if err := rows.Scan(&st.Scenario, &st.Runs, &avg, &maxUs, &lastSeen); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.AvgElapsed = time.Duration(avg) * time.Microsecond
		st.MaxElapsed = time.Duration(maxUs) * time.Microsecond
		st.LastRun = parseTime(lastSeen)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			count     int64
			elapsedUs int64
			createdAt any
		)
		if err := rows.Scan(
			&r.ID,
			&r.Scenario,
			&r.Rows,
			&r.Cols,
			&r.Snake,
			&r.Depth,
			&r.Strategy,
			&r.Workers,
			&count,
			&elapsedUs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Count = uint64(count)
		r.Elapsed = time.Duration(elapsedUs) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

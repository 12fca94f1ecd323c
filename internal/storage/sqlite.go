// Package storage provides SQLite-based persistence for puzzle runs.
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

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished (or abandoned) play-through of a level.
type RunRecord struct {
	ID        string
	LevelID   string
	Policy    string
	Moves     string // Comma separated bolt>slot moves
	Won       bool
	Swaps     int
	Destroyed int
	Ticks     int64
	CreatedAt time.Time
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
			level_id TEXT NOT NULL,
			policy TEXT NOT NULL,
			moves TEXT NOT NULL DEFAULT '',
			won INTEGER NOT NULL DEFAULT 0,
			swaps INTEGER NOT NULL DEFAULT 0,
			destroyed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, won, swaps);
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

// SaveRun records a run and returns its generated ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, level_id, policy, moves, won, swaps, destroyed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.LevelID, r.Policy, r.Moves, r.Won, r.Swaps, r.Destroyed, r.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

const runColumns = `id, level_id, policy, moves, won, swaps, destroyed, ticks, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	if err := row.Scan(&r.ID, &r.LevelID, &r.Policy, &r.Moves, &r.Won,
		&r.Swaps, &r.Destroyed, &r.Ticks, &createdAt); err != nil {
		return RunRecord{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
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

// Run retrieves a run by ID. It returns nil if the run does not exist.
func (s *Store) Run(id string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the latest runs, newest first. An empty levelID
// matches every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
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

// BestRun returns the won run with the fewest swaps, earliest first on a
// tie. It returns nil if the level was never won.
func (s *Store) BestRun(levelID string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND won = 1
		 ORDER BY swaps ASC, ticks ASC, rowid ASC
		 LIMIT 1`,
		levelID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Wins       int
	BestSwaps  int // Fewest swaps among won runs, 0 if never won
	LastPlayed time.Time
}

// WinRate returns the share of won runs in [0,1].
func (st LevelStats) WinRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Runs)
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var best sql.NullInt64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN swaps END), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Wins, &best, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	if best.Valid {
		stats.BestSwaps = int(best.Int64)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has runs.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN swaps END), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var best sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.Wins, &best, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if best.Valid {
			st.BestSwaps = int(best.Int64)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

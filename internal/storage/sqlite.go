// Package storage persists typing session history and highscores.
// Session history lives in SQLite through the pure-Go modernc.org/sqlite
// driver; the single-player highscore is a small binary file.
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

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished play session.
type SessionRecord struct {
	ID         string
	Player     string
	Difficulty string
	TypedChars int
	CPM        int
	WPM        int
	EndReason  string // "quit" or "floor"
	Duration   time.Duration
	CreatedAt  time.Time
}

// DifficultyStats contains aggregated statistics for one difficulty level.
type DifficultyStats struct {
	Difficulty    string
	SessionsCount int
	BestChars     int
	BestCPM       int
	AvgChars      float64
	TotalChars    int64
	LastPlayed    time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			typed_chars INTEGER NOT NULL DEFAULT 0,
			cpm INTEGER NOT NULL DEFAULT 0,
			wpm INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(difficulty, typed_chars DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);

		CREATE TABLE IF NOT EXISTS highscores (
			player TEXT PRIMARY KEY,
			typed_chars INTEGER NOT NULL DEFAULT 0,
			cpm INTEGER NOT NULL DEFAULT 0
		);
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

// SaveSession records a finished session and returns its generated ID.
func (s *Store) SaveSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, player, difficulty, typed_chars, cpm, wpm, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Player,
		rec.Difficulty,
		rec.TypedChars,
		rec.CPM,
		rec.WPM,
		rec.EndReason,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return rec.ID, nil
}

// TopSessions retrieves the best sessions for a difficulty, ordered by
// typed characters and then cpm.
func (s *Store) TopSessions(difficulty string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, difficulty, typed_chars, cpm, wpm, end_reason, duration_ms, created_at
		 FROM sessions
		 WHERE difficulty = ?
		 ORDER BY typed_chars DESC, cpm DESC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// RecentSessions retrieves a player's most recent sessions.
func (s *Store) RecentSessions(player string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, difficulty, typed_chars, cpm, wpm, end_reason, duration_ms, created_at
		 FROM sessions
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]SessionRecord, error) {
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.Player,
			&rec.Difficulty,
			&rec.TypedChars,
			&rec.CPM,
			&rec.WPM,
			&rec.EndReason,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTimestamp handles both time.Time and string DATETIME values.
func parseTimestamp(v any) time.Time {
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

// ClearSessions deletes all sessions for the given difficulty.
func (s *Store) ClearSessions(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// PlayerHighscore returns the stored highscore for a player, zero if none.
func (s *Store) PlayerHighscore(player string) (Highscore, error) {
	var h Highscore
	err := s.db.QueryRow(
		"SELECT typed_chars, cpm FROM highscores WHERE player = ?",
		player,
	).Scan(&h.TypedChars, &h.CPM)

	if errors.Is(err, sql.ErrNoRows) {
		return Highscore{}, nil
	}
	if err != nil {
		return Highscore{}, fmt.Errorf("storage: cannot query highscore: %w", err)
	}
	return h, nil
}

// SavePlayerHighscore merges h into the player's stored highscore.
func (s *Store) SavePlayerHighscore(player string, h Highscore) error {
	_, err := s.db.Exec(
		`INSERT INTO highscores (player, typed_chars, cpm) VALUES (?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET
			typed_chars = MAX(typed_chars, excluded.typed_chars),
			cpm = MAX(cpm, excluded.cpm)`,
		player, h.TypedChars, h.CPM,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save highscore: %w", err)
	}
	return nil
}

// playerHighscores adapts the highscores table to the HighscoreStore port
// for one player, so SSH sessions keep separate records.
type playerHighscores struct {
	store  *Store
	player string
}

// HighscoresFor returns a HighscoreStore bound to a player name.
func (s *Store) HighscoresFor(player string) HighscoreStore {
	return &playerHighscores{store: s, player: player}
}

func (p *playerHighscores) LoadHighscore() Highscore {
	h, err := p.store.PlayerHighscore(p.player)
	if err != nil {
		return Highscore{}
	}
	return h
}

func (p *playerHighscores) SaveHighscore(h Highscore) error {
	return p.store.SavePlayerHighscore(p.player, h)
}

// GetDifficultyStats retrieves aggregated statistics for a difficulty level.
func (s *Store) GetDifficultyStats(difficulty string) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: difficulty}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(typed_chars), 0), COALESCE(MAX(cpm), 0),
		        COALESCE(AVG(typed_chars), 0), COALESCE(SUM(typed_chars), 0)
		 FROM sessions WHERE difficulty = ?`,
		difficulty,
	).Scan(&stats.SessionsCount, &stats.BestChars, &stats.BestCPM, &stats.AvgChars, &stats.TotalChars)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE difficulty = ? ORDER BY created_at DESC LIMIT 1`,
		difficulty,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

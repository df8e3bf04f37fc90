package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AnonymousName is recorded when a player leaves the name prompt empty.
const AnonymousName = "---"

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID        int64
	Name      string
	Score     int
	MaxTile   int
	CreatedAt time.Time
}

// Stats contains aggregated leaderboard statistics.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestTile   int
	LastPlayed time.Time
}

// SaveScore records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveScore(name string, score, maxTile int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = AnonymousName
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (name, score, max_tile) VALUES (?, ?, ?)",
		name, score, maxTile,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores, highest first.
// Ties keep insertion order. A limit <= 0 returns every score.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, max_tile, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.MaxTile, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score, or 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Qualifies reports whether score would enter a leaderboard of the given size.
func (s *Store) Qualifies(score, size int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM scores WHERE score >= ?", score).Scan(&count); err != nil {
		return false, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	return count < size, nil
}

// PruneScores keeps only the top keep entries.
func (s *Store) PruneScores(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.Exec(
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prune scores: %w", err)
	}
	return nil
}

// ClearScores deletes every leaderboard entry.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated leaderboard statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(max_tile), 0)
		 FROM scores`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.BestTile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM scores ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

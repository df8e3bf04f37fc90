package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
)

// SavedGame is a session persisted between runs.
type SavedGame struct {
	Slot      string
	Snapshot  game.Snapshot
	Undo      *game.Snapshot // nil when no undo step was available
	UpdatedAt time.Time
}

// SaveGame writes the session state to slot, replacing any previous save.
func (s *Store) SaveGame(slot string, snap game.Snapshot, undo *game.Snapshot) error {
	board, err := json.Marshal(snap.Board)
	if err != nil {
		return fmt.Errorf("storage: cannot encode board: %w", err)
	}

	var undoJSON sql.NullString
	if undo != nil {
		data, err := json.Marshal(undo)
		if err != nil {
			return fmt.Errorf("storage: cannot encode undo snapshot: %w", err)
		}
		undoJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_games (slot, board, score, state, moves, undo, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			board = excluded.board,
			score = excluded.score,
			state = excluded.state,
			moves = excluded.moves,
			undo = excluded.undo,
			updated_at = CURRENT_TIMESTAMP`,
		slot, string(board), snap.Score, string(snap.State), snap.Moves, undoJSON,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game %q: %w", slot, err)
	}
	return nil
}

// LoadGame returns the game saved in slot, or nil if the slot is empty.
func (s *Store) LoadGame(slot string) (*SavedGame, error) {
	var (
		board     string
		state     string
		undoJSON  sql.NullString
		updatedAt any
	)
	saved := &SavedGame{Slot: slot}

	err := s.db.QueryRow(
		`SELECT board, score, state, moves, undo, updated_at
		 FROM saved_games WHERE slot = ?`,
		slot,
	).Scan(&board, &saved.Snapshot.Score, &state, &saved.Snapshot.Moves, &undoJSON, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game %q: %w", slot, err)
	}

	var b engine.Board
	if err := json.Unmarshal([]byte(board), &b); err != nil {
		return nil, fmt.Errorf("storage: corrupt board in slot %q: %w", slot, err)
	}
	saved.Snapshot.Board = b
	saved.Snapshot.State = game.State(state)

	if undoJSON.Valid {
		var undo game.Snapshot
		if err := json.Unmarshal([]byte(undoJSON.String), &undo); err != nil {
			return nil, fmt.Errorf("storage: corrupt undo snapshot in slot %q: %w", slot, err)
		}
		saved.Undo = &undo
	}
	saved.UpdatedAt = parseTime(updatedAt)

	return saved, nil
}

// DeleteGame removes the save in slot. Deleting an empty slot is not an error.
func (s *Store) DeleteGame(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saved_games WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete game %q: %w", slot, err)
	}
	return nil
}

package game

import (
	"fmt"

	"github.com/vovakirdan/t2048/internal/engine"
)

// State represents the session state.
type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	return s == StatePlaying || s == StateGameOver
}

// Snapshot captures a session for undo, persistence, and determinism tests.
type Snapshot struct {
	Board engine.Board `json:"board"`
	Score int          `json:"score"`
	State State        `json:"state"`
	Moves int          `json:"moves"`
}

// MaxTile returns the highest tile in the snapshot.
func (s Snapshot) MaxTile() int {
	return engine.MaxTile(s.Board)
}

// clone returns a snapshot that shares no memory with s.
func (s Snapshot) clone() Snapshot {
	s.Board = s.Board.Clone()
	return s
}

// validate checks a snapshot loaded from outside the session.
func (s Snapshot) validate(size int) error {
	if err := engine.Validate(s.Board); err != nil {
		return err
	}
	if s.Board.Size() != size {
		return fmt.Errorf("game: snapshot board is %dx%d, session is %dx%d",
			s.Board.Size(), s.Board.Size(), size, size)
	}
	if !s.State.Valid() {
		return fmt.Errorf("game: unknown state %q", s.State)
	}
	if s.Score < 0 || s.Moves < 0 {
		return fmt.Errorf("game: negative score or move count")
	}
	return nil
}

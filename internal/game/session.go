// Package game runs a single 2048 session on top of the board engine:
// score keeping, the playing/game-over state machine, and one level of undo.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/t2048/internal/engine"
)

// ErrGameOver is returned when a move is attempted on a finished game.
var ErrGameOver = errors.New("game: game is over")

// Rules defines how a session spawns tiles.
type Rules struct {
	Size           int     // Board side length
	InitialMin     int     // Fewest tiles on a new board
	InitialMax     int     // Most tiles on a new board
	FourProb       float64 // Probability of spawning a 4 instead of a 2
	ExtraSpawnProb float64 // Probability of spawning two tiles after a move instead of one
}

// DefaultRules returns the classic 4x4 rules.
func DefaultRules() Rules {
	return Rules{
		Size:           engine.DefaultSize,
		InitialMin:     2,
		InitialMax:     3,
		FourProb:       engine.DefaultFourProb,
		ExtraSpawnProb: 0.25,
	}
}

// MoveResult describes the outcome of a single move.
type MoveResult struct {
	Moved    bool // Whether the board changed
	Gained   int  // Points from merges
	Spawned  int  // Tiles placed after the move
	GameOver bool // Whether this move ended the game
}

// Session is one game of 2048.
// All methods are safe for concurrent use; each call holds the session lock.
type Session struct {
	mu      sync.Mutex
	rules   Rules
	rng     engine.Rand
	spawner engine.Spawner

	board engine.Board
	score int
	state State
	moves int
	undo  *Snapshot
}

// New creates a session and deals the first tiles.
func New(rules Rules, rng engine.Rand) *Session {
	if rules.Size == 0 {
		rules.Size = engine.DefaultSize
	}
	s := &Session{
		rules:   rules,
		rng:     rng,
		spawner: engine.Spawner{Rand: rng, FourProb: rules.FourProb},
	}
	s.reset()
	return s
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules {
	return s.rules
}

// Reset starts a new game on an empty board.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.board = engine.NewBoard(s.rules.Size)
	s.score = 0
	s.moves = 0
	s.state = StatePlaying
	s.undo = nil

	s.board = s.spawner.Spawn(s.board, s.initialCount())
}

// initialCount picks how many tiles a fresh board starts with.
func (s *Session) initialCount() int {
	lo, hi := s.rules.InitialMin, s.rules.InitialMax
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// spawnCount picks how many tiles appear after a successful move.
func (s *Session) spawnCount() int {
	if s.rules.ExtraSpawnProb > 0 && s.rng.Float64() < s.rules.ExtraSpawnProb {
		return 2
	}
	return 1
}

// Move slides the board in the given direction.
// A move that changes nothing is not an error: it returns Moved=false and
// leaves the board, the score, and the undo step untouched.
func (s *Session) Move(dir engine.Direction) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateGameOver {
		return MoveResult{}, ErrGameOver
	}

	newBoard, moved, gained, err := engine.Move(s.board, dir)
	if err != nil {
		return MoveResult{}, err
	}
	if !moved {
		return MoveResult{}, nil
	}

	prev := s.snapshot()
	s.undo = &prev

	before := len(engine.EmptyCells(newBoard))
	s.board = s.spawner.Spawn(newBoard, s.spawnCount())
	spawned := before - len(engine.EmptyCells(s.board))

	s.score += gained
	s.moves++

	if !engine.HasMoves(s.board) {
		s.state = StateGameOver
	}

	return MoveResult{
		Moved:    true,
		Gained:   gained,
		Spawned:  spawned,
		GameOver: s.state == StateGameOver,
	}, nil
}

// Undo restores the state from before the last successful move.
// Only one step is kept, and a finished game cannot be undone.
// Returns false when nothing was restored.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateGameOver || s.undo == nil {
		return false
	}
	s.apply(*s.undo)
	s.undo = nil
	return true
}

// CanUndo reports whether Undo would restore anything.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateGameOver && s.undo != nil
}

// Board returns a copy of the current board.
func (s *Session) Board() engine.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Score returns the cumulative score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameOver reports whether no move can change the board.
func (s *Session) GameOver() bool {
	return s.State() == StateGameOver
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Board: s.board.Clone(),
		Score: s.score,
		State: s.state,
		Moves: s.moves,
	}
}

// UndoSnapshot returns the pending undo step, or nil if there is none.
func (s *Session) UndoSnapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil {
		return nil
	}
	snap := s.undo.clone()
	return &snap
}

// Restore replaces the session state with a saved snapshot and optional undo step.
// The game-over flag is recomputed from the board so a stale flag cannot
// lock a playable board.
func (s *Session) Restore(snap Snapshot, undo *Snapshot) error {
	if err := snap.validate(s.rules.Size); err != nil {
		return fmt.Errorf("game: cannot restore: %w", err)
	}
	if undo != nil {
		if err := undo.validate(s.rules.Size); err != nil {
			return fmt.Errorf("game: cannot restore undo step: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(snap.clone())
	if engine.HasMoves(s.board) {
		s.state = StatePlaying
	} else {
		s.state = StateGameOver
	}

	s.undo = nil
	if undo != nil {
		u := undo.clone()
		s.undo = &u
	}
	return nil
}

func (s *Session) apply(snap Snapshot) {
	s.board = snap.Board
	s.score = snap.Score
	s.state = snap.State
	s.moves = snap.Moves
}

// Package engine implements the 2048 board rules: sliding and merging tiles,
// spawning new tiles, and detecting a terminal board.
// It performs no I/O and holds no state; every function works on the Board
// it is given and returns a new one.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	DefaultSize = 4
	MinSize     = 2
	MaxSize     = 8
)

// ErrInvalidBoard is returned by Validate for malformed boards.
var ErrInvalidBoard = errors.New("engine: invalid board")

// Board is a square grid of tile values indexed as board[row][col].
// Zero marks an empty cell.
type Board [][]int

// Cell identifies a board position.
type Cell struct {
	Row, Col int
}

// NewBoard creates an empty n×n board.
func NewBoard(n int) Board {
	b := make(Board, n)
	for r := range b {
		b[r] = make([]int, n)
	}
	return b
}

// Size returns the side length of the board.
func (b Board) Size() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for r, row := range b {
		c[r] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether two boards hold the same values.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(other[r]) {
			return false
		}
		for c := range b[r] {
			if b[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// String formats the board one row per line, for logs and test failures.
func (b Board) String() string {
	var sb strings.Builder
	for r, row := range b {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// Validate checks that the board is square, within size limits, and holds
// only zeros or powers of two no smaller than 2.
func Validate(b Board) error {
	n := len(b)
	if n < MinSize || n > MaxSize {
		return fmt.Errorf("%w: size %d outside [%d, %d]", ErrInvalidBoard, n, MinSize, MaxSize)
	}
	for r, row := range b {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), n)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return fmt.Errorf("%w: value %d at (%d, %d)", ErrInvalidBoard, v, r, c)
			}
		}
	}
	return nil
}

// EmptyCells returns the positions of all empty cells in row-major order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for r, row := range b {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the largest tile value on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for _, row := range b {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// HasMoves reports whether any move can change the board: an empty cell
// exists, or two equal tiles are adjacent in a row or a column.
// It scans the board directly and never simulates moves.
func HasMoves(b Board) bool {
	n := len(b)
	for r := range n {
		for c := range n {
			val := b[r][c]
			if val == 0 {
				return true
			}
			if c < n-1 && b[r][c+1] == val {
				return true
			}
			if r < n-1 && b[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

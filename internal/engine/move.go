package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned for a move outside up, down, left, right.
var ErrInvalidDirection = errors.New("engine: invalid direction")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions returns all valid directions.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name such as "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// CollapseRow slides a row to the left and merges equal neighbors.
// Zeros are dropped first, then pairs merge greedily from the left; a merged
// tile does not merge again in the same pass, so [2 2 2 2] becomes [4 4 0 0].
// Returns the new row, the sum of merged values, and whether any cell changed.
func CollapseRow(row []int) (out []int, gained int, changed bool) {
	out = make([]int, len(row))
	writePos := 0
	merged := false // whether out[writePos-1] is already a merge result

	for _, v := range row {
		if v == 0 {
			continue
		}
		if writePos > 0 && !merged && out[writePos-1] == v {
			out[writePos-1] *= 2
			gained += out[writePos-1]
			merged = true
			continue
		}
		out[writePos] = v
		writePos++
		merged = false
	}

	for i := range row {
		if out[i] != row[i] {
			changed = true
			break
		}
	}
	return out, gained, changed
}

// reverseRow returns a reversed copy of a row.
func reverseRow(row []int) []int {
	n := len(row)
	result := make([]int, n)
	for i, v := range row {
		result[n-1-i] = v
	}
	return result
}

// RotateCW returns the board rotated 90° clockwise.
func RotateCW(b Board) Board {
	n := len(b)
	result := NewBoard(n)
	for r := range n {
		for c := range n {
			result[c][n-1-r] = b[r][c]
		}
	}
	return result
}

// RotateCCW returns the board rotated 90° counter-clockwise.
func RotateCCW(b Board) Board {
	n := len(b)
	result := NewBoard(n)
	for r := range n {
		for c := range n {
			result[n-1-c][r] = b[r][c]
		}
	}
	return result
}

// moveLeft collapses every row to the left.
func moveLeft(b Board) (Board, bool, int) {
	result := make(Board, len(b))
	moved := false
	total := 0

	for r, row := range b {
		newRow, gained, changed := CollapseRow(row)
		result[r] = newRow
		total += gained
		if changed {
			moved = true
		}
	}
	return result, moved, total
}

// moveRight reverses each row, collapses it left, and reverses it back.
func moveRight(b Board) (Board, bool, int) {
	reversed := make(Board, len(b))
	for r, row := range b {
		reversed[r] = reverseRow(row)
	}
	slid, moved, gained := moveLeft(reversed)
	for r, row := range slid {
		slid[r] = reverseRow(row)
	}
	return slid, moved, gained
}

// moveUp turns columns into rows with the top cell first, moves left, and turns back.
func moveUp(b Board) (Board, bool, int) {
	slid, moved, gained := moveLeft(RotateCCW(b))
	return RotateCW(slid), moved, gained
}

// moveDown turns columns into rows with the bottom cell first, moves left, and turns back.
func moveDown(b Board) (Board, bool, int) {
	slid, moved, gained := moveLeft(RotateCW(b))
	return RotateCCW(slid), moved, gained
}

// Move slides the board in the given direction.
// Returns the new board, whether anything moved, and the points gained from
// merges. When nothing moved the input board is returned as is, and the caller
// should neither spawn a tile nor record an undo step. The input is never modified.
func Move(b Board, dir Direction) (Board, bool, int, error) {
	var (
		result Board
		moved  bool
		gained int
	)

	switch dir {
	case DirLeft:
		result, moved, gained = moveLeft(b)
	case DirRight:
		result, moved, gained = moveRight(b)
	case DirUp:
		result, moved, gained = moveUp(b)
	case DirDown:
		result, moved, gained = moveDown(b)
	default:
		return b, false, 0, fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}

	if !moved {
		return b, false, 0, nil
	}
	return result, true, gained, nil
}

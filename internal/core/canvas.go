package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on a Canvas.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' ', Color: ColorDefault}

// Run is a horizontal stretch of cells sharing one color.
type Run struct {
	Color Color
	Text  string
}

// Canvas is a fixed-size character buffer that views draw into. The platform
// layer turns it into styled terminal output one Run at a time.
type Canvas struct {
	w, h  int
	cells []Cell // Row-major, len w*h
}

// NewCanvas creates a blank canvas. Negative sizes are treated as zero.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.h }

// Bounds returns the whole canvas as a rectangle.
func (c *Canvas) Bounds() Rect {
	return NewRect(0, 0, c.w, c.h)
}

// Resize changes the canvas size and blanks it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w != c.w || h != c.h || c.cells == nil {
		c.w, c.h = w, h
		c.cells = make([]Cell, w*h)
	}
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, false
	}
	return y*c.w + x, true
}

// Put stores a cell. Positions off the canvas are ignored.
func (c *Canvas) Put(x, y int, cell Cell) {
	if i, ok := c.index(x, y); ok {
		c.cells[i] = cell
	}
}

// At returns the cell at (x, y), or a blank cell off the canvas.
func (c *Canvas) At(x, y int) Cell {
	if i, ok := c.index(x, y); ok {
		return c.cells[i]
	}
	return blank
}

// Text writes s starting at (x, y), one rune per cell, clipped at the edges.
// It returns the column just past the last rune.
func (c *Canvas) Text(x, y int, s string, color Color) int {
	for _, r := range s {
		c.Put(x, y, Cell{Rune: r, Color: color})
		x++
	}
	return x
}

// TextCenter writes s centered horizontally on row y.
func (c *Canvas) TextCenter(y int, s string, color Color) {
	c.Text((c.w-utf8.RuneCountInString(s))/2, y, s, color)
}

// TextRight writes s so that it ends at the right edge of row y.
func (c *Canvas) TextRight(y int, s string, color Color) {
	c.Text(c.w-utf8.RuneCountInString(s), y, s, color)
}

// Fill sets every cell of r to cell.
func (c *Canvas) Fill(r Rect, cell Cell) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.Put(x, y, cell)
		}
	}
}

// Frame outlines r with single-line box characters.
func (c *Canvas) Frame(r Rect, color Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	c.Grid(r.X, r.Y, 1, 1, r.W-1, r.H-1, color)
}

// Grid draws a cols×rows lattice of cells, each cellW×cellH including its
// top and left border, with its top-left joint at (x, y).
func (c *Canvas) Grid(x, y, cols, rows, cellW, cellH int, color Color) {
	put := func(px, py int, r rune) { c.Put(px, py, Cell{Rune: r, Color: color}) }

	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			px, py := x+i*cellW, y+j*cellH
			put(px, py, Joint(i, j, cols, rows))
			if i < cols {
				for k := 1; k < cellW; k++ {
					put(px+k, py, '─')
				}
			}
			if j < rows {
				for k := 1; k < cellH; k++ {
					put(px, py+k, '│')
				}
			}
		}
	}
}

// Joint picks the box-drawing rune for lattice point (i, j) of a cols×rows grid.
func Joint(i, j, cols, rows int) rune {
	top, bottom := j == 0, j == rows
	left, right := i == 0, i == cols
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}

// Runs splits row y into maximal same-color stretches.
func (c *Canvas) Runs(y int) []Run {
	if y < 0 || y >= c.h {
		return nil
	}
	row := c.cells[y*c.w : (y+1)*c.w]

	var runs []Run
	var sb strings.Builder
	for i, cell := range row {
		if i > 0 && cell.Color != row[i-1].Color {
			runs = append(runs, Run{Color: row[i-1].Color, Text: sb.String()})
			sb.Reset()
		}
		sb.WriteRune(cell.Rune)
	}
	if len(row) > 0 {
		runs = append(runs, Run{Color: row[len(row)-1].Color, Text: sb.String()})
	}
	return runs
}

// Line returns row y as plain text. Rows off the canvas are all spaces.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.h {
		return strings.Repeat(" ", c.w)
	}
	var sb strings.Builder
	for _, cell := range c.cells[y*c.w : (y+1)*c.w] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}

// String returns the canvas as plain text, rows joined by newlines.
func (c *Canvas) String() string {
	lines := make([]string, c.h)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return strings.Join(lines, "\n")
}

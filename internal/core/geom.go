// Package core provides the terminal-agnostic drawing surface and input actions
// shared by the t2048 front ends. It has no Bubble Tea dependency so views
// can be rendered and tested as plain text.
package core

// Rect is an axis-aligned area on a Canvas. The right and bottom edges are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) of size w×h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks r by d on every side. The result never has negative size.
func (r Rect) Inset(d int) Rect {
	return Rect{
		X: r.X + d,
		Y: r.Y + d,
		W: max(r.W-2*d, 0),
		H: max(r.H-2*d, 0),
	}
}

// Centered returns a w×h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Around returns a w×h rectangle centered on the point (cx, cy).
func Around(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
)

const (
	minCellWidth = 5 // Width of each cell including its left border
	cellHeight   = 2 // Height of each cell including its top border
	hudHeight    = 3 // Title, score line, gap
	minViewWidth = 28
)

// boardView is everything drawGame needs to know about the current screen.
type boardView struct {
	Snapshot game.Snapshot
	Best     int
	CanUndo  bool
	Status   string
}

// layout describes where the board lands inside the view.
type layout struct {
	cellW  int
	boardW int
	boardH int
	viewW  int
	viewH  int
	boardX int
}

// computeLayout sizes cells so the widest tile fits with one space either side.
func computeLayout(b engine.Board) layout {
	n := b.Size()
	cellW := max(minCellWidth, len(strconv.Itoa(engine.MaxTile(b)))+3)

	l := layout{
		cellW:  cellW,
		boardW: n*cellW + 1,
		boardH: n*cellHeight + 1,
	}
	l.viewW = max(l.boardW, minViewWidth)
	l.viewH = hudHeight + l.boardH + 1 // Status line
	l.boardX = (l.viewW - l.boardW) / 2
	return l
}

// drawGame draws the HUD, grid, tiles and overlays into dst.
// dst must already be sized to the layout's view dimensions.
func drawGame(dst *core.Canvas, v boardView, l layout) {
	dst.Clear()

	snap := v.Snapshot
	dst.TextCenter(0, "2048", core.ColorTitle)
	dst.Text(0, 1, fmt.Sprintf("Score: %d", snap.Score), core.ColorDefault)
	dst.TextRight(1, fmt.Sprintf("Best: %d", max(v.Best, snap.Score)), core.ColorDefault)

	info := fmt.Sprintf("Moves: %d  Max: %d", snap.Moves, snap.MaxTile())
	if v.CanUndo {
		info += "  (undo)"
	}
	dst.TextCenter(2, info, core.ColorMuted)

	n := snap.Board.Size()
	dst.Grid(l.boardX, hudHeight, n, n, l.cellW, cellHeight, core.ColorGrid)
	drawTiles(dst, snap.Board, l)

	if snap.State == game.StateGameOver {
		drawOverlay(dst, l.boardX+l.boardW/2, hudHeight+l.boardH/2,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", snap.MaxTile()),
			"n: new game",
		)
	}

	if v.Status != "" {
		dst.TextCenter(hudHeight+l.boardH, v.Status, core.ColorAlert)
	}
}

// tileRect returns the interior of the grid cell at (r, c).
func tileRect(l layout, r, c int) core.Rect {
	return core.NewRect(l.boardX+c*l.cellW+1, hudHeight+r*cellHeight+1, l.cellW-1, cellHeight-1)
}

// drawTiles paints each nonzero tile with its color and centered value.
func drawTiles(dst *core.Canvas, b engine.Board, l layout) {
	for r, row := range b {
		for c, val := range row {
			if val == 0 {
				continue
			}
			color := core.TileColor(val)
			inner := tileRect(l, r, c)
			dst.Fill(inner, core.Cell{Rune: ' ', Color: color})

			label := strconv.Itoa(val)
			dst.Text(inner.X+(inner.W-len(label))/2, inner.Y, label, color)
		}
	}
}

// drawOverlay draws a framed message centered on (cx, cy). The first line is the headline.
func drawOverlay(dst *core.Canvas, cx, cy int, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := core.Around(cx, cy, width+4, len(lines)+2)
	dst.Fill(box, core.Cell{Rune: ' '})
	dst.Frame(box, core.ColorAlert)

	body := box.Inset(1)
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorAlert
		}
		dst.Text(body.X+(body.W-len(line))/2, body.Y+i, line, color)
	}
}

package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
)

func renderView(v boardView) (*core.Canvas, layout) {
	l := computeLayout(v.Snapshot.Board)
	s := core.NewCanvas(l.viewW, l.viewH)
	drawGame(s, v, l)
	return s, l
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name      string
		board     engine.Board
		wantCellW int
		wantW     int
	}{
		{"4x4 small tiles", engine.Board{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, 5, 21},
		{"4x4 four digit tile", engine.Board{{2048, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, 7, 29},
		{"2x2", engine.NewBoard(2), 5, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.board)
			if l.cellW != tt.wantCellW {
				t.Errorf("cellW = %d, want %d", l.cellW, tt.wantCellW)
			}
			if l.boardW != tt.wantW {
				t.Errorf("boardW = %d, want %d", l.boardW, tt.wantW)
			}
			if l.viewW < l.boardW || l.boardX < 0 {
				t.Errorf("board does not fit view: %+v", l)
			}
		})
	}
}

func TestDrawGameTiles(t *testing.T) {
	snap := game.Snapshot{
		Board: engine.Board{{2, 0, 0, 0}, {0, 128, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 4}},
		Score: 136,
		State: game.StatePlaying,
		Moves: 12,
	}
	s, l := renderView(boardView{Snapshot: snap, Best: 500})
	out := s.String()

	for _, want := range []string{"2048", "Score: 136", "Best: 500", "Moves: 12", "128"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Errorf("playing board shows game over overlay:\n%s", out)
	}

	// Top-left corner of the grid
	if got := s.At(l.boardX, hudHeight).Rune; got != '┌' {
		t.Errorf("grid corner = %q, want '┌'", got)
	}

	// Tile cells carry the tile color across the whole cell interior
	y := hudHeight + 1*cellHeight + 1
	for x := l.boardX + l.cellW + 1; x < l.boardX+2*l.cellW; x++ {
		if c := s.At(x, y); c.Color != core.ColorTile128 {
			t.Errorf("cell (%d, %d) color = %d, want ColorTile128", x, y, c.Color)
		}
	}
	if c := s.At(l.boardX+1, hudHeight+1); c.Color != core.ColorTile2 {
		t.Errorf("tile 2 color = %d, want ColorTile2", c.Color)
	}
}

func TestDrawGameBestTracksScore(t *testing.T) {
	snap := game.Snapshot{Board: engine.NewBoard(4), Score: 900, State: game.StatePlaying}
	s, _ := renderView(boardView{Snapshot: snap, Best: 100})
	if !strings.Contains(s.String(), "Best: 900") {
		t.Errorf("best should never be below the current score:\n%s", s.String())
	}
}

func TestDrawGameOverAndStatus(t *testing.T) {
	snap := game.Snapshot{
		Board: engine.Board{{2, 4}, {4, 2}},
		Score: 8,
		State: game.StateGameOver,
	}
	s, _ := renderView(boardView{Snapshot: snap, Status: "No moves left"})
	out := s.String()

	if !strings.Contains(out, "GAME OVER") {
		t.Errorf("view missing game over overlay:\n%s", out)
	}
	if !strings.Contains(out, "No moves left") {
		t.Errorf("view missing status line:\n%s", out)
	}
}

func TestDrawGameUndoHint(t *testing.T) {
	snap := game.Snapshot{Board: engine.NewBoard(4), State: game.StatePlaying}
	s, _ := renderView(boardView{Snapshot: snap, CanUndo: true})
	if !strings.Contains(s.String(), "(undo)") {
		t.Errorf("view missing undo hint:\n%s", s.String())
	}
}

func TestTileRect(t *testing.T) {
	l := computeLayout(engine.NewBoard(4))
	got := tileRect(l, 1, 2)
	want := core.NewRect(l.boardX+2*l.cellW+1, hudHeight+cellHeight+1, l.cellW-1, 1)
	if got != want {
		t.Errorf("tileRect(1, 2) = %+v, want %+v", got, want)
	}
}

func TestDrawOverlayCentersLines(t *testing.T) {
	s := core.NewCanvas(21, 9)
	drawOverlay(s, 10, 4, "GAME OVER", "n")

	if got := s.Line(3); got != "    │ GAME OVER │    " {
		t.Errorf("headline row = %q", got)
	}
	if got := s.At(6, 3).Color; got != core.ColorAlert {
		t.Errorf("headline color = %d, want ColorAlert", got)
	}
	if got := s.Line(4); got != "    │     n     │    " {
		t.Errorf("body row = %q", got)
	}
}

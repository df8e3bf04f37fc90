package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/core"
)

func tileStyle(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorTile2:     tileStyle("230", "236"),
	core.ColorTile4:     tileStyle("223", "236"),
	core.ColorTile8:     tileStyle("215", "231"),
	core.ColorTile16:    tileStyle("209", "231"),
	core.ColorTile32:    tileStyle("203", "231"),
	core.ColorTile64:    tileStyle("196", "231"),
	core.ColorTile128:   tileStyle("228", "236"),
	core.ColorTile256:   tileStyle("227", "236"),
	core.ColorTile512:   tileStyle("226", "236"),
	core.ColorTile1024:  tileStyle("220", "236"),
	core.ColorTile2048:  tileStyle("214", "231"),
	core.ColorTileSuper: tileStyle("57", "229"),
	core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
}

// RenderCanvas converts a Canvas to a styled string for display, one
// lipgloss render per same-color run.
func RenderCanvas(c *core.Canvas) string {
	lines := make([]string, c.Height())
	for y := range lines {
		var sb strings.Builder
		for _, run := range c.Runs(y) {
			style, ok := colorStyles[run.Color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.Text))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

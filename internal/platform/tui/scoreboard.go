package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/storage"
)

const scoreDateLayout = "Jan 02 15:04"

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	scoreNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	scoreStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the leaderboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Back: key.NewBinding(key.WithKeys("esc", "b", "tab"), key.WithHelp("tab/esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
// Standalone models quit the program on back; embedded ones report Done.
type ScoreboardModel struct {
	store   *storage.Store
	limit   int
	entries []storage.ScoreEntry
	stats   *storage.Stats
	loadErr error
	// highlight is the ID of a freshly recorded entry, or 0.
	highlight int64

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int

	standalone bool
	quitting   bool
	done       bool
}

// NewScoreboardModel loads up to limit entries from store. A nil store
// yields a model that explains scores are not kept.
func NewScoreboardModel(store *storage.Store, width, height, limit int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		limit:  limit,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	m.rebuildTable()
	return m
}

// Highlight selects the entry with the given ID if it made the list.
func (m ScoreboardModel) Highlight(id int64) ScoreboardModel {
	m.highlight = id
	m.rebuildTable()
	return m
}

func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	if m.entries, m.loadErr = m.store.TopScores(m.limit); m.loadErr != nil {
		return
	}
	m.stats, m.loadErr = m.store.Stats()
}

// rebuildTable recreates the table for the current size and entries.
func (m *ScoreboardModel) rebuildTable() {
	rows := make([]table.Row, len(m.entries))
	cursor := 0
	for i, e := range m.entries {
		rank := "#" + strconv.Itoa(i+1)
		if e.ID == m.highlight {
			rank = "▶ " + rank
			cursor = i
		}
		rows[i] = table.Row{
			rank,
			e.Name,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MaxTile),
			e.CreatedAt.Local().Format(scoreDateLayout),
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: 16},
			{Title: "Score", Width: 9},
			{Title: "Max", Width: 6},
			{Title: "Date", Width: len(scoreDateLayout)},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, stats, help and frame
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	if len(rows) > 0 {
		t.SetCursor(cursor)
	}

	m.table = t
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		scoreTitleStyle.Render("HIGH SCORES"),
		"",
		scoreFrameStyle.Render(m.body()),
	}
	if line := m.statsLine(); line != "" {
		parts = append(parts, scoreStatsStyle.Render(line))
	}
	parts = append(parts, scoreHelpStyle.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
}

// body renders the table, or a note when there is nothing to list.
func (m ScoreboardModel) body() string {
	switch {
	case m.store == nil:
		return scoreNoteStyle.Render("Leaderboard unavailable.\nScores are not being stored.")
	case m.loadErr != nil:
		return scoreNoteStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return scoreNoteStyle.Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// statsLine summarizes every recorded game, including pruned ones.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d games  avg %.0f  best tile %d", m.stats.GamesCount, m.stats.AvgScore, m.stats.BestTile)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&b, "  last %s", m.stats.LastPlayed.Local().Format(scoreDateLayout))
	}
	return b.String()
}

// Done reports whether the user asked to leave the leaderboard.
func (m ScoreboardModel) Done() bool {
	return m.done
}

// IsQuitting reports whether the user asked to quit the program.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Entries returns the loaded leaderboard rows.
func (m ScoreboardModel) Entries() []storage.ScoreEntry {
	return m.entries
}

// Selected returns the entry under the cursor.
func (m ScoreboardModel) Selected() (storage.ScoreEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ScoreEntry{}, false
	}
	return m.entries[i], true
}

// RunScoreboard shows the leaderboard as its own full-screen program.
func RunScoreboard(store *storage.Store, width, height, limit int) error {
	model := NewScoreboardModel(store, width, height, limit)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// Package tui provides the Bubble Tea front end for t2048: the board screen,
// the leaderboard and the SSH server that hosts both.
package tui

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/metrics"
	"github.com/vovakirdan/t2048/internal/storage"
)

// LocalSlot is the save slot used by the terminal front end.
const LocalSlot = "local"

// Options configures a game model.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store    // Optional; nil disables scores and autosave
	Slot    string            // Save slot; empty disables autosave
	Player  string            // Pre-filled name for the score prompt
	Logger  *log.Logger       // Optional
	Metrics *metrics.Recorder // Optional
}

type screenMode int

const (
	modePlaying screenMode = iota
	modeNamePrompt
	modeLeaderboard
)

// Model is the Bubble Tea model for one player's game.
type Model struct {
	opts      Options
	session   *game.Session
	canvas    *core.Canvas
	keys      *KeyMapper
	help      help.Model
	nameInput textinput.Model
	board     ScoreboardModel
	mode      screenMode
	best      int
	status    string
	statusID  int
	width     int
	height    int
	quitting  bool
}

// NewModel creates a game model, resuming the saved game in opts.Slot if there is one.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = storage.AnonymousName
	ti.CharLimit = 16
	ti.Width = 20
	ti.Prompt = "Name: "

	m := Model{
		opts:      opts,
		session:   game.New(opts.Config.Rules(), rand.New(rand.NewSource(seed))),
		canvas:    core.NewCanvas(0, 0),
		keys:      NewKeyMapper(),
		help:      help.New(),
		nameInput: ti,
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}
	m.restore()

	if opts.Store != nil {
		best, err := opts.Store.HighScore()
		if err != nil {
			opts.Logger.Warn("could not read high score", "error", err)
		}
		m.best = best
	}
	return m
}

// restore loads the saved game, if any, into the session.
func (m *Model) restore() {
	if m.opts.Store == nil || m.opts.Slot == "" {
		return
	}
	saved, err := m.opts.Store.LoadGame(m.opts.Slot)
	if err != nil {
		m.opts.Logger.Warn("could not load saved game", "slot", m.opts.Slot, "error", err)
		return
	}
	if saved == nil || saved.Snapshot.State == game.StateGameOver {
		return
	}
	if err := m.session.Restore(saved.Snapshot, saved.Undo); err != nil {
		m.opts.Logger.Warn("discarding saved game", "slot", m.opts.Slot, "error", err)
		return
	}
	m.opts.Logger.Debug("resumed saved game", "slot", m.opts.Slot, "score", saved.Snapshot.Score)
	m.status = "Resumed saved game"
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.status != "" {
		return expireStatusCmd(m.statusID)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.mode == modeLeaderboard {
			board, cmd := m.board.Update(msg)
			m.board = board.(ScoreboardModel)
			return m, cmd
		}
		return m, nil

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNamePrompt:
			return m.updateNamePrompt(msg)
		case modeLeaderboard:
			return m.updateLeaderboard(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modeNamePrompt {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input on the board screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionLeaderboard:
		m.openLeaderboard(0)
		return m, nil

	case core.ActionNewGame:
		m.session.Reset()
		m.autosave()
		return m, m.setStatus("New game")

	case core.ActionUndo:
		if !m.session.Undo() {
			return m, m.setStatus("Nothing to undo")
		}
		m.autosave()
		return m, nil
	}

	dir, ok := action.Direction()
	if !ok {
		return m, nil
	}

	res, err := m.session.Move(dir)
	if errors.Is(err, game.ErrGameOver) {
		return m, m.setStatus("No moves left, press n")
	}
	if err != nil {
		m.opts.Logger.Error("move failed", "direction", dir, "error", err)
		return m, nil
	}
	if !res.Moved {
		return m, nil
	}

	m.opts.Metrics.Move(dir)
	m.autosave()
	if res.GameOver {
		return m.finishGame()
	}
	return m, nil
}

// finishGame records metrics and asks for a name when the score makes the leaderboard.
func (m Model) finishGame() (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	m.opts.Metrics.GameOver(snap.MaxTile())
	m.opts.Logger.Info("game over", "score", snap.Score, "max_tile", snap.MaxTile(), "moves", snap.Moves)

	if m.opts.Store == nil {
		return m, nil
	}
	ok, err := m.opts.Store.Qualifies(snap.Score, m.opts.Config.Leaderboard.Size)
	if err != nil {
		m.opts.Logger.Warn("could not rank score", "error", err)
		return m, nil
	}
	if !ok {
		return m, nil
	}

	m.mode = modeNamePrompt
	m.nameInput.SetValue(m.opts.Player)
	m.nameInput.CursorEnd()
	return m, m.nameInput.Focus()
}

// updateNamePrompt handles the high score name entry.
func (m Model) updateNamePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.mode = modePlaying
		return m, m.setStatus("Score not saved")
	case tea.KeyEnter:
		m.nameInput.Blur()
		m.mode = modePlaying
		return m, m.recordScore(m.nameInput.Value())
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// recordScore saves the finished game and trims the leaderboard.
func (m *Model) recordScore(name string) tea.Cmd {
	snap := m.session.Snapshot()
	store := m.opts.Store

	id, err := store.SaveScore(name, snap.Score, snap.MaxTile())
	if err != nil {
		m.opts.Logger.Error("could not save score", "error", err)
		return m.setStatus("Could not save score")
	}
	if err := store.PruneScores(m.opts.Config.Leaderboard.Size); err != nil {
		m.opts.Logger.Warn("could not prune leaderboard", "error", err)
	}
	m.best = max(m.best, snap.Score)
	m.opts.Logger.Info("score saved", "name", strings.TrimSpace(name), "score", snap.Score)

	// Show where the new entry landed
	m.openLeaderboard(id)
	return m.setStatus("Score saved")
}

// openLeaderboard switches to the leaderboard, selecting the entry with the given ID.
func (m *Model) openLeaderboard(highlight int64) {
	m.board = NewScoreboardModel(m.opts.Store, m.width, m.height, m.opts.Config.Leaderboard.Size).Highlight(highlight)
	m.mode = modeLeaderboard
}

// updateLeaderboard forwards keys to the embedded leaderboard.
func (m Model) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board, cmd := m.board.Update(msg)
	m.board = board.(ScoreboardModel)
	if m.board.IsQuitting() {
		m.quitting = true
	}
	if m.board.Done() {
		m.mode = modePlaying
	}
	return m, cmd
}

// autosave writes the session to the save slot, or clears the slot once the game is over.
func (m *Model) autosave() {
	store, slot := m.opts.Store, m.opts.Slot
	if store == nil || slot == "" {
		return
	}

	var err error
	if m.session.GameOver() {
		err = store.DeleteGame(slot)
	} else {
		err = store.SaveGame(slot, m.session.Snapshot(), m.session.UndoSnapshot())
	}
	if err != nil {
		m.opts.Logger.Warn("autosave failed", "slot", slot, "error", err)
	}
}

// setStatus shows a transient message and schedules its removal.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	return expireStatusCmd(m.statusID)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeLeaderboard {
		return m.board.View()
	}

	content := m.renderBoard()
	if m.width > 0 && m.height > 0 {
		if lipgloss.Width(content) > m.width || lipgloss.Height(content) > m.height {
			return renderTooSmall(m.width, m.height)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// renderBoard renders the board screen without outer placement.
func (m Model) renderBoard() string {
	snap := m.session.Snapshot()
	l := computeLayout(snap.Board)
	m.canvas.Resize(l.viewW, l.viewH)
	drawGame(m.canvas, boardView{
		Snapshot: snap,
		Best:     m.best,
		CanUndo:  m.session.CanUndo(),
		Status:   m.status,
	}, l)

	parts := []string{RenderCanvas(m.canvas)}
	if m.mode == modeNamePrompt {
		prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Render("New high score!")
		parts = append(parts, "", prompt, m.nameInput.View())
	} else {
		parts = append(parts, "", m.help.View(m.keys.Keys()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(width, height int) string {
	msg := "Window too small\nPlease resize terminal"
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// Session exposes the underlying game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

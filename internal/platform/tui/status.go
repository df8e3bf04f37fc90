package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status line stays visible.
const statusTTL = 2 * time.Second

// statusExpiredMsg clears the status line it was scheduled for.
type statusExpiredMsg struct {
	id int
}

// expireStatusCmd returns a command that expires status id after statusTTL.
func expireStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

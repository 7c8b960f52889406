package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/wizard"
)

// Result describes how the skip selection step ended.
type Result struct {
	Action    wizard.Action
	Selected  *catalog.SkipOption
	SessionID string
}

// Outcome extracts the Result from a model returned by tea.Program.Run. Models
// not created by New report ActionQuit.
func Outcome(m tea.Model) Result {
	if mm, ok := m.(*model); ok {
		return mm.result
	}
	return Result{Action: wizard.ActionQuit}
}

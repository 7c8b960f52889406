package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Select      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	GoToPage    key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Continue    key.Binding
	Back        key.Binding
	Retry       key.Binding
	ToggleSteps key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:      key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "select skip")),
		NextPage:    key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next page")),
		PrevPage:    key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev page")),
		GoToPage:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to page")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		Continue:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Back:        key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "back")),
		Retry:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		ToggleSteps: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "steps")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.NextPage, k.PrevPage, k.Continue, k.Back, k.Retry, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.NextPage, k.PrevPage, k.GoToPage},
		{k.ScrollUp, k.ScrollDown, k.ToggleSteps},
		{k.Continue, k.Back, k.Retry, k.Help, k.Quit},
	}
}

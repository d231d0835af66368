package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Pick        key.Binding
	Cancel      key.Binding
	Menu        key.Binding
	Quit        key.Binding
	Start       key.Binding
	HowTo       key.Binding
	Continue    key.Binding
	NewGame     key.Binding
	BackToStart key.Binding
	PlayAgain   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "move")),
		Right:       key.NewBinding(key.WithKeys("right")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select")),
		Down:        key.NewBinding(key.WithKeys("down")),
		Pick:        key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick/drop")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Menu:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Start:       key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start")),
		HowTo:       key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "how to play")),
		Continue:    key.NewBinding(key.WithKeys("c", "esc", "m"), key.WithHelp("c", "continue")),
		NewGame:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		BackToStart: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back to start")),
		PlayAgain:   key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "play again")),
	}
}

func (k keyMap) bindingsFor(s screen) []key.Binding {
	switch s {
	case screenStart:
		return []key.Binding{k.Start, k.HowTo, k.Quit}
	case screenInstructions:
		return []key.Binding{k.Start, k.Cancel, k.Quit}
	case screenMenu:
		return []key.Binding{k.Up, k.Pick, k.Continue, k.NewGame, k.BackToStart, k.Quit}
	case screenComplete:
		return []key.Binding{k.PlayAgain, k.BackToStart, k.Quit}
	default:
		return []key.Binding{k.Left, k.Up, k.Pick, k.Cancel, k.Menu, k.Quit}
	}
}

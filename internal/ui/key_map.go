package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the voting TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	stars      key.Binding
	add        key.Binding
	visibility key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		stars:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "vote")),
		add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add song")),
		visibility: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle visibility")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.stars, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.stars, k.add, k.visibility},
		{k.quit},
	}
}

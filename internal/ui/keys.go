package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Press    key.Binding
	Shortcut key.Binding
	Toggle   key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next")),
		Press:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press")),
		Shortcut: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "press button")),
		Toggle:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle dark mode")),
		Palette:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark palette")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Shortcut, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Press, k.Shortcut},
		{k.Toggle, k.Palette, k.Help, k.Quit},
	}
}

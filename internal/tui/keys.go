package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Release key.Binding
	Cancel  key.Binding
	Like    key.Binding
	Nope    key.Binding
	Reset   key.Binding
	Deck    key.Binding
	Help    key.Binding
	Quit    key.Binding

	empty bool
}

func newKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "drag left")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "drag right")),
		Release: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "release")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Like:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "like")),
		Nope:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nope")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset stack")),
		Deck:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next deck")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// withEmpty toggles the bindings that only make sense on an empty deck.
func (k keyMap) withEmpty(empty bool) keyMap {
	k.empty = empty
	k.Reset.SetEnabled(empty)
	for _, b := range []*key.Binding{&k.Left, &k.Right, &k.Release, &k.Cancel, &k.Like, &k.Nope} {
		b.SetEnabled(!empty)
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.empty {
		return []key.Binding{k.Reset, k.Deck, k.Quit}
	}
	return []key.Binding{k.Left, k.Right, k.Release, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Release, k.Cancel},
		{k.Like, k.Nope, k.Reset},
		{k.Deck, k.Help, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Grab        key.Binding
	Cancel      key.Binding
	NextPreset  key.Binding
	PrevPreset  key.Binding
	AddGroup    key.Binding
	AddSubgroup key.Binding
	Remove      key.Binding
	Search      key.Binding
	Copy        key.Binding
	Help        key.Binding
	Save        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Grab:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up / drop")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextPreset:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next preset")),
		PrevPreset:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous preset")),
		AddGroup:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add group")),
		AddSubgroup: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add subgroup")),
		Remove:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find tool")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy layout")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// footer lists the hints shown under the list.
func (k keyMap) footer(dragging bool) []key.Binding {
	if dragging {
		return []key.Binding{k.Up, k.Down, k.Grab, k.Cancel}
	}
	return []key.Binding{k.Grab, k.NextPreset, k.AddGroup, k.AddSubgroup, k.Remove, k.Search, k.Save, k.Help, k.Quit}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	quit     key.Binding
	logout   key.Binding
	switcher key.Binding
	delete   key.Binding
	copy     key.Binding
	guest    key.Binding
	register key.Binding
	refresh  key.Binding
	stay     key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:   key.NewBinding(key.WithKeys("l")),
	switcher: key.NewBinding(key.WithKeys("s")),
	delete:   key.NewBinding(key.WithKeys("d")),
	copy:     key.NewBinding(key.WithKeys("c")),
	guest:    key.NewBinding(key.WithKeys("ctrl+g")),
	register: key.NewBinding(key.WithKeys("ctrl+n")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	stay:     key.NewBinding(key.WithKeys("ctrl+s")),
}

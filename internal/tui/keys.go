package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	save       key.Binding
	refresh    key.Binding
	newLeave   key.Binding
	newDuty    key.Binding
	addUser    key.Binding
	delete     key.Binding
	export     key.Binding
	copy       key.Binding
	switchUser key.Binding
	prevChoice key.Binding
	nextChoice key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab", "right")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab", "left")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	save:       key.NewBinding(key.WithKeys("s")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	newLeave:   key.NewBinding(key.WithKeys("n")),
	newDuty:    key.NewBinding(key.WithKeys("u")),
	addUser:    key.NewBinding(key.WithKeys("a")),
	delete:     key.NewBinding(key.WithKeys("d")),
	export:     key.NewBinding(key.WithKeys("x")),
	copy:       key.NewBinding(key.WithKeys("c")),
	switchUser: key.NewBinding(key.WithKeys("p")),
	prevChoice: key.NewBinding(key.WithKeys("left")),
	nextChoice: key.NewBinding(key.WithKeys("right")),
}

package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	play   key.Binding
	sel    key.Binding
	stop   key.Binding
	quit   key.Binding
	cancel key.Binding
}

var defaultKeymap = keymap{
	play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play"),
	),
	sel: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "select"),
	),
	stop: key.NewBinding(
		key.WithKeys("enter", "x"),
		key.WithHelp("enter", "stop & save"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "discard"),
	),
	cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "keep tracking"),
	),
}

func (k keymap) bindings(split bool) []key.Binding {
	if split {
		return []key.Binding{k.play, k.sel, k.stop, k.quit}
	}

	return []key.Binding{k.stop, k.quit}
}

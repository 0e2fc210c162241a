package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Pick   key.Binding
	Submit key.Binding
	Skip   key.Binding
	Again  key.Binding
	Mode   key.Binding
	Rules  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "pick"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Skip: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "skip"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play again"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch mode"),
		),
		Rules: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rules"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// stepKeys is the set of bindings that mean something in the current step.
type stepKeys []key.Binding

func (s stepKeys) ShortHelp() []key.Binding { return s }

func (s stepKeys) FullHelp() [][]key.Binding { return [][]key.Binding{s} }

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the bindings surfaced in the footer help. Label
// hotkeys are generated from the configured label set (see labelKeys
// in model.go); everything here is structural.
type keyMap struct {
	Label    key.Binding
	Mark     key.Binding
	Pan      key.Binding
	Maximize key.Binding
	Visible  key.Binding
	Save     key.Binding
	Load     key.Binding
	Gaps     key.Binding
	Demo     key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Label: key.NewBinding(
			key.WithKeys("b", "n", "d", "z", "j", "c", "w"),
			key.WithHelp("b/n/d/z/j/c/w", "label"),
		),
		Mark: key.NewBinding(
			key.WithKeys("mouse"),
			key.WithHelp("drag", "mark/zoom"),
		),
		Pan: key.NewBinding(
			key.WithKeys(" ", "-"),
			key.WithHelp("space/-", "pan"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "max"),
		),
		Visible: key.NewBinding(
			key.WithKeys("i", "h", "v"),
			key.WithHelp("i/h/v", "visibility"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("l", "L"),
			key.WithHelp("l/L", "load/force"),
		),
		Gaps: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "gaps"),
		),
		Demo: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "demo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "ctrl+r"),
			key.WithHelp("x/ctrl+r", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Label, k.Mark, k.Pan, k.Maximize, k.Visible,
		k.Save, k.Load, k.Gaps, k.Demo, k.Delete, k.Quit,
	}
}

// FullHelp satisfies help.KeyMap; the inspector only uses the short
// view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

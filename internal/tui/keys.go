package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tick       key.Binding
	Reset      key.Binding
	EditCount  key.Binding
	EditTarget key.Binding
	Insight    key.Binding
	Stats      key.Binding
	Overview   key.Binding
	Sound      key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Favorite   key.Binding
	Export     key.Binding
	Help       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Tick: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "count"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset cycle"),
	),
	EditCount: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "edit count"),
	),
	EditTarget: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "edit target"),
	),
	Insight: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "meaning & benefits"),
	),
	Stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	Overview: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "overview"),
	),
	Sound: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "sound on/off"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tick, k.New, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tick, k.Reset, k.EditCount, k.EditTarget},
		{k.New, k.Edit, k.Delete, k.Favorite},
		{k.Insight, k.Stats, k.Overview, k.Export},
		{k.Sound, k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}

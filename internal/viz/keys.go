package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Edit      key.Binding
	Apply     key.Binding
	Cancel    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	NiterUp   key.Binding
	NiterDown key.Binding
	Mode      key.Binding
	Julia     key.Binding
	Subsample key.Binding
	Orbit     key.Binding
	Theme     key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Edit:      key.NewBinding(key.WithKeys("e", "tab"), key.WithHelp("e/tab", "edit formula")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan")),
		NiterUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "niter ×2")),
		NiterDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "niter ÷2")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Julia:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "julia at cursor")),
		Subsample: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subsample")),
		Orbit:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orbit panel")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.ZoomIn, k.ZoomOut, k.Mode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Apply, k.Cancel},
		{k.Left, k.Right, k.Up, k.Down, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.NiterUp, k.NiterDown, k.Mode, k.Julia, k.Subsample},
		{k.Orbit, k.Theme, k.Help, k.Quit},
	}
}

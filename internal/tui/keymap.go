package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	JumpTab key.Binding

	// Filters
	RaiseScore      key.Binding
	LowerScore      key.Binding
	CyclePayment    key.Binding
	CycleCategory   key.Binding
	CycleEmployment key.Binding
	ResetFilters    key.Binding

	// Search
	Search      key.Binding
	CycleSort   key.Binding
	ToggleOrder key.Binding
	Confirm     key.Binding
	Cancel      key.Binding

	// Application
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to tab"),
		),

		RaiseScore: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise min score"),
		),
		LowerScore: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "lower min score"),
		),
		CyclePayment: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "payment filter"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category filter"),
		),
		CycleEmployment: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "employment filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export CSV"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.RaiseScore, k.LowerScore, k.CyclePayment, k.Search, k.Export, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab, k.JumpTab},
		{k.RaiseScore, k.LowerScore, k.CyclePayment, k.CycleCategory, k.CycleEmployment, k.ResetFilters},
		{k.Search, k.CycleSort, k.ToggleOrder, k.Confirm, k.Cancel},
		{k.Export, k.Help, k.Quit},
	}
}

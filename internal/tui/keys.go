package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings. Scene-local keys are handled by the
// scenes themselves.
type keyMap struct {
	Home       key.Binding
	Scenarios  key.Binding
	Parameters key.Binding
	Compare    key.Binding
	Report     key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Home:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
	Scenarios:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenarios")),
	Parameters: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "parameters")),
	Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
	Report:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "report")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Scenarios, k.Parameters, k.Compare, k.Report, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Scenarios, k.Parameters},
		{k.Compare, k.Report},
		{k.Help, k.Back, k.Quit},
	}
}

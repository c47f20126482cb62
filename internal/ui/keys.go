package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings. Scrolling keys not listed here fall
// through to the viewport.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	ViewDebug  key.Binding
	ViewLogs   key.Binding
	ClearCache key.Binding
	Top        key.Binding
	Bottom     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		ViewDebug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Discovery sources"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Companion log"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear image cache"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ViewDebug, k.ViewLogs, k.ClearCache, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDebug, k.ViewLogs, k.Top, k.Bottom},
		{k.Refresh, k.ClearCache},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

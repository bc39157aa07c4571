package ui

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit     key.Binding
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
	View4    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Refresh  key.Binding
	Range    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		View1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "overview"),
		),
		View2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "content"),
		),
		View3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "traffic"),
		),
		View4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "inspector"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Range: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "date range"),
		),
	}
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.View1, k.View2, k.View3, k.View4, k.Refresh, k.Range, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.View1, k.View2, k.View3, k.View4},
		{k.Tab, k.ShiftTab, k.Refresh, k.Range, k.Quit},
	}
}

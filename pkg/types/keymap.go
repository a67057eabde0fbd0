package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the upload screen.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Form
	NextField  key.Binding
	ToggleMode key.Binding
	Submit     key.Binding
	SaveKey    key.Binding

	// Result
	Copy        key.Binding
	ToggleLang  key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ClearResult key.Binding
}

// DefaultKeyMap returns the bindings shown in the help line.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),

		NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mode")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload")),
		SaveKey:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save key")),

		Copy:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		ToggleLang:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		ClearResult: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleMode, k.Copy, k.ToggleLang, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.ToggleMode, k.Submit, k.SaveKey},
		{k.Copy, k.ToggleLang, k.ScrollUp, k.ScrollDown, k.ClearResult},
		{k.Help, k.Quit},
	}
}

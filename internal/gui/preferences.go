//go:build !nogui
// +build !nogui

package gui

import (
	"fyne.io/fyne/v2"
)

// PreferenceStore keeps the API key and language in the fyne app
// preferences, so the desktop window remembers them like a browser would.
type PreferenceStore struct {
	prefs fyne.Preferences
}

func NewPreferenceStore(p fyne.Preferences) *PreferenceStore {
	return &PreferenceStore{prefs: p}
}

// Get treats an empty string as unset; fyne has no presence check.
func (s *PreferenceStore) Get(key string) (string, bool) {
	v := s.prefs.String(key)
	return v, v != ""
}

func (s *PreferenceStore) Set(key, value string) error {
	s.prefs.SetString(key, value)
	return nil
}

func (s *PreferenceStore) Delete(key string) error {
	s.prefs.RemoveValue(key)
	return nil
}

// WindowClipboard copies through the window's clipboard.
type WindowClipboard struct {
	Window fyne.Window
}

func (c WindowClipboard) WriteAll(text string) error {
	c.Window.Clipboard().SetContent(text)
	return nil
}

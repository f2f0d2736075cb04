package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typemaster/internal/core"
)

// KeyMap defines the shell key bindings. Letters are never bound on the
// game page since every printable key is a typing attempt there.
type KeyMap struct {
	Start      key.Binding
	Difficulty key.Binding
	License    key.Binding
	Back       key.Binding
	Exit       key.Binding
	Scroll     key.Binding
}

// ShortHelp returns bindings for the welcome page footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Difficulty, k.License, k.Back}
}

// FullHelp returns all bindings grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Difficulty, k.License},
		{k.Back, k.Exit, k.Scroll},
	}
}

// LicenseHelp returns bindings for the license page footer.
func (k KeyMap) LicenseHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Back}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "difficulty"),
		),
		License: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "license"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/quit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
	}
}

// Page identifies the screen the shell is showing.
type Page int

const (
	PageWelcome Page = iota
	PageLicense
	PageGame
)

// String returns a human-readable name for the page.
func (p Page) String() string {
	switch p {
	case PageWelcome:
		return "Welcome"
	case PageLicense:
		return "License"
	case PageGame:
		return "Game"
	default:
		return "Unknown"
	}
}

// KeyMapper translates Bubble Tea key messages to classified intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action for the given page.
// exit reports a request to leave the program entirely.
func (km *KeyMapper) MapKey(page Page, msg tea.KeyMsg) (action core.Action, exit bool) {
	if key.Matches(msg, km.keys.Exit) {
		return core.ActionQuit, true
	}

	switch page {
	case PageWelcome:
		switch {
		case key.Matches(msg, km.keys.Start):
			return core.ActionConfirm, false
		case key.Matches(msg, km.keys.Difficulty):
			return core.ActionCycleDifficulty, false
		case key.Matches(msg, km.keys.License):
			return core.ActionLicense, false
		case key.Matches(msg, km.keys.Back):
			return core.ActionQuit, false
		}
	case PageLicense:
		if key.Matches(msg, km.keys.Back) {
			return core.ActionBack, false
		}
	case PageGame:
		if key.Matches(msg, km.keys.Back) {
			return core.ActionQuit, false
		}
	}

	return core.ActionNone, false
}

// TypedRune extracts a single typed character from a key message.
// Pastes and Alt combinations are not typing.
func TypedRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || msg.Paste || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}

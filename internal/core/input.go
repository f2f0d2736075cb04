package core

// Action represents a classified input intent, abstracted from physical key presses.
// The shell decides which keys map to which action; the engine only sees intents.
type Action int

const (
	ActionNone            Action = iota
	ActionConfirm                // Enter - start a session from the menu
	ActionCycleDifficulty        // Tab - switch Easy -> Normal -> Hard (menu only)
	ActionLicense                // F12 - open the license page
	ActionBack                   // Esc on a sub page - go back to the menu
	ActionQuit                   // Esc in game or menu, Ctrl+C - end session / exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionCycleDifficulty:
		return "CycleDifficulty"
	case ActionLicense:
		return "License"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the classified input for one simulation tick:
// a set of triggered actions plus at most one typed character.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Char is the typed character for this tick, or 0 when nothing was typed.
	Char rune
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type records a typed character for this frame.
func (f *InputFrame) Type(r rune) {
	f.Char = r
}

// Typed returns the typed character and whether one was supplied.
func (f InputFrame) Typed() (rune, bool) {
	return f.Char, f.Char != 0
}

// Clear resets all actions and the typed character for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Char = 0
}

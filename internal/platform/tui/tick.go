// Package tui provides the Bubble Tea shell for TypeMaster.
// It owns the terminal loop, page transitions, input classification and the
// highscore, and drives the game engine one tick per frame.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typemaster/internal/core"
)

// TickMsg is sent to trigger a simulation tick. It carries the wall time
// the frame fired, from which the shell derives the engine's dt.
type TickMsg time.Time

// tickCmd schedules the next frame at the runtime tick rate.
func tickCmd(rt core.RuntimeConfig) tea.Cmd {
	return tea.Tick(rt.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

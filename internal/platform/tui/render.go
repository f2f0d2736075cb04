package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/core"
	"github.com/vovakirdan/typemaster/internal/games/typemaster"
	"github.com/vovakirdan/typemaster/internal/storage"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

const (
	borderRune = '#'
	floorRune  = '^'
)

const banner = ` _____                 __  __           _
|_   _|   _ _ __   ___|  \/  | __ _ ___| |_ ___ _ __
  | || | | | '_ \ / _ \ |\/| |/ _` + "`" + ` / __| __/ _ \ '__|
  | || |_| | |_) |  __/ |  | | (_| \__ \ ||  __/ |
  |_| \__, | .__/ \___|_|  |_|\__,_|___/\__\___|_|
      |___/|_|`

// bannerWidth is the widest banner line.
var bannerWidth = func() int {
	w := 0
	for _, line := range strings.Split(banner, "\n") {
		w = max(w, len(line))
	}
	return w
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// drawFrame clears the screen and draws the outer border.
func drawFrame(s *core.Screen) {
	s.Clear()
	s.DrawBorder(core.NewRect(0, 0, s.Width(), s.Height()), borderRune)
}

// welcomeView is what the welcome page shows.
type welcomeView struct {
	Difficulty config.Difficulty
	Highscore  storage.Highscore
	Help       string
	Err        string
}

// drawWelcome renders the menu page.
func drawWelcome(s *core.Screen, v welcomeView) {
	drawFrame(s)

	s.DrawLines((s.Width()-bannerWidth)/2, 3, banner, core.ColorBlue)

	s.DrawTextCentered(10, "MENU")
	left := core.Clamp(s.Width()/2-12, 2, s.Width())
	s.DrawText(left, 12, "Press ENTER to start.")
	s.DrawText(left, 13, "Press TAB to toggle difficulty: "+v.Difficulty.String())
	s.DrawText(left, 14, "Press F12 to read license.")
	s.DrawText(left, 15, "Press ESC to quit.")
	s.DrawText(left, 17, fmt.Sprintf("Your Highscore: %d", v.Highscore.TypedChars))
	s.DrawText(left, 18, fmt.Sprintf("Your highest Cpm: %d", v.Highscore.CPM))

	if v.Err != "" {
		s.DrawTextColored(left, 20, v.Err, core.ColorRed)
	}
	if v.Help != "" {
		s.DrawTextColored(2, s.Height()-2, v.Help, core.ColorGray)
	}
}

// drawLicense renders the license page around the viewport contents.
func drawLicense(s *core.Screen, body, help string) {
	drawFrame(s)
	s.DrawText(2, 2, "Press ESC to go back to Menu!")
	s.DrawLines(2, 4, body, core.ColorDefault)
	if help != "" {
		s.DrawTextColored(2, s.Height()-2, help, core.ColorGray)
	}
}

// drawGame renders the play field from an engine snapshot. The head word's
// next expected character is highlighted. Words whose start lies outside the
// area between the border and the floor are skipped.
func drawGame(s *core.Screen, snap typemaster.Snapshot, best storage.Highscore, floorRow int) {
	drawFrame(s)
	field := core.NewRect(1, 1, s.Width()-2, floorRow-1)
	s.DrawHLine(1, floorRow, s.Width()-2, floorRune)

	s.DrawText(2, s.Height()-2, fmt.Sprintf(
		"Score: %d cpm: %d wpm: %d (Highscore: %d Max-cpm: %d)",
		snap.TypedChars, snap.CPM, snap.WPM, best.TypedChars, best.CPM,
	))

	for _, w := range snap.Words {
		if field.Contains(w.X, w.Y) {
			s.DrawText(w.X, w.Y, w.Text)
		}
	}
	if snap.HasHead && field.Contains(snap.Head.X, snap.Head.Y) {
		s.SetColored(snap.Head.X, snap.Head.Y, snap.Head.Char, core.ColorGreen)
	}
}

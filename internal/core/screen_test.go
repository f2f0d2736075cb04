package core

import (
	"strings"
	"testing"
)

// rowText returns row y as plain runes.
func rowText(s *Screen, y int) string {
	var sb strings.Builder
	for x := 0; x < s.Width(); x++ {
		sb.WriteRune(s.GetCell(x, y).Rune)
	}
	return sb.String()
}

// screenText returns the whole buffer as plain rows joined by newlines.
func screenText(s *Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with uncolored spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.GetCell(5, 5).Rune != 'X' {
		t.Errorf("GetCell(5, 5) = %q, expected 'X'", s.GetCell(5, 5).Rune)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.GetCell(-1, 0).Rune != ' ' {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
	if s.GetCell(100, 0).Rune != ' ' {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, 'c', ColorGreen)

	c := s.GetCell(2, 1)
	if c.Rune != 'c' || c.Color != ColorGreen {
		t.Errorf("GetCell(2, 1) = %+v, expected green 'c'", c)
	}

	s.Clear()
	if c := s.GetCell(2, 1); c.Color != ColorDefault || c.Rune != ' ' {
		t.Errorf("Clear should reset colors, got %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.GetCell(2+i, 1).Rune != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.GetCell(2+i, 1).Rune)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "über")

	// One column per rune, not per byte
	if s.GetCell(0, 0).Rune != 'ü' || s.GetCell(1, 0).Rune != 'b' || s.GetCell(3, 0).Rune != 'r' {
		t.Errorf("multibyte text misplaced: %q", rowText(s, 0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.GetCell(x, 2).Rune != 'H' || s.GetCell(x+1, 2).Rune != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawTextCenteredClipsWideText(t *testing.T) {
	s := NewScreen(4, 1)
	s.DrawTextCentered(0, "abcdef")

	if got := rowText(s, 0); got != "abcd" {
		t.Errorf("row = %q, expected text to start at column 0 and clip", got)
	}
}

func TestScreenDrawLines(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawLines(1, 1, "ab\ncd", ColorBlue)

	if s.GetCell(1, 1).Rune != 'a' || s.GetCell(2, 2).Rune != 'd' {
		t.Errorf("DrawLines placed text incorrectly:\n%s", screenText(s))
	}
	if s.GetCell(1, 2).Color != ColorBlue {
		t.Error("DrawLines should apply color")
	}
}

func TestScreenDrawBorder(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBorder(NewRect(0, 0, 6, 4), '#')

	expected := "######\n#    #\n#    #\n######"
	if got := screenText(s); got != expected {
		t.Errorf("DrawBorder =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '^')

	for x := 2; x < 7; x++ {
		if s.GetCell(x, 2).Rune != '^' {
			t.Errorf("DrawHLine: expected '^' at (%d, 2), got %q", x, s.GetCell(x, 2).Rune)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := rowText(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	if row0 := rowText(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

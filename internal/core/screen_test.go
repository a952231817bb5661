package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("GetCell(%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '@', ColorPlayer)
	if c := s.GetCell(5, 5); c.Rune != '@' || c.Color != ColorPlayer {
		t.Errorf("GetCell(5, 5) = %+v, expected '@' in ColorPlayer", c)
	}

	// Set keeps the color already in the cell
	s.Set(5, 5, 'x')
	if c := s.GetCell(5, 5); c.Rune != 'x' || c.Color != ColorPlayer {
		t.Errorf("GetCell(5, 5) after Set = %+v, expected 'x' in ColorPlayer", c)
	}

	// Out of bounds is silent
	s.SetColored(-1, 0, 'A', ColorBad)
	s.SetColored(0, 100, 'A', ColorBad)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorText)

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello", ColorText)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "GO!", ColorCountdown)

	if s.Get(4, 0) != 'G' || s.Get(6, 0) != '!' {
		t.Errorf("DrawTextCentered() row = %q, expected GO! at column 4", s.Row(0))
	}

	s.Clear()
	s.DrawTextCentered(0, "·zz·", ColorText)
	if s.Get(3, 0) != '·' {
		t.Errorf("DrawTextCentered() should count runes, row = %q", s.Row(0))
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(2, 2, 3, 3, '#', ColorObstacle)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorObstacle {
				t.Errorf("DrawRect: got %+v at (%d, %d)", c, x, y)
			}
		}
	}
	if s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	s.Clear()
	s.DrawBox(1, 1, 5, 4, ColorFrame)
	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' || s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Errorf("DrawBox corners wrong:\n%s", s.String())
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Errorf("DrawBox edges wrong:\n%s", s.String())
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'A', ColorGood)
	s.SetColored(4, 4, 'B', ColorBad)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize(3, 3) gave %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'A' || c.Color != ColorGood {
		t.Errorf("Resize should keep content, got %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Errorf("Resize should not resurrect clipped content, got %q", s.Get(4, 4))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorText)
	s.DrawText(0, 1, "de", ColorText)

	expected := "abc\nde "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 3) {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}

package tui

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/game"
)

// Arena maps the simulation's percent space onto the inside of a box drawn
// on the screen.
type Arena struct {
	X, Y int // top-left of the border
	W, H int // border included
}

// NewArena fills the whole screen.
func NewArena(s *core.Screen) Arena {
	return Arena{W: s.Width(), H: s.Height()}
}

func (a Arena) innerW() int { return max(a.W-2, 1) }
func (a Arena) innerH() int { return max(a.H-2, 1) }

// Cell converts an arena position to a screen cell. ok is false for
// positions outside [0, 100].
func (a Arena) Cell(x, y float64) (col, row int, ok bool) {
	if x < 0 || x > 100 || y < 0 || y > 100 {
		return 0, 0, false
	}
	col = a.X + 1 + int(math.Round(x/100*float64(a.innerW()-1)))
	row = a.Y + 1 + int(math.Round(y/100*float64(a.innerH()-1)))
	return col, row, true
}

func (a Arena) inside(col, row int) bool {
	return col > a.X && col < a.X+a.W-1 && row > a.Y && row < a.Y+a.H-1
}

func (a Arena) set(s *core.Screen, col, row int, r rune, c core.Color) {
	if a.inside(col, row) {
		s.SetColored(col, row, r, c)
	}
}

func (a Arena) text(s *core.Screen, col, row int, text string, c core.Color) {
	for _, r := range text {
		a.set(s, col, row, r, c)
		col++
	}
}

// textAt centres text on an arena position.
func (a Arena) textAt(s *core.Screen, x, y float64, text string, c core.Color) {
	x = core.ClampF(x, 0, 100)
	y = core.ClampF(y, 0, 100)
	col, row, _ := a.Cell(x, y)
	col -= utf8.RuneCountInString(text) / 2
	a.text(s, col, row, text, c)
}

// textCentered centres text horizontally on an inner row.
func (a Arena) textCentered(s *core.Screen, row int, text string, c core.Color) {
	col := a.X + (a.W-utf8.RuneCountInString(text))/2
	a.text(s, col, a.Y+1+row, text, c)
}

func itemColor(t game.ItemType) core.Color {
	switch t {
	case game.ItemPhone:
		return core.ColorBad
	case game.ItemSocial, game.ItemSearch:
		return core.ColorMixed
	case game.ItemObstacle:
		return core.ColorObstacle
	default:
		return core.ColorGood
	}
}

func popupColor(t game.Tone) core.Color {
	switch t {
	case game.ToneGood:
		return core.ColorPopupGood
	case game.ToneBad:
		return core.ColorPopupBad
	default:
		return core.ColorPopupNeutral
	}
}

// DrawArena draws a snapshot: frame, obstacles, items, player, popups and
// the countdown. Obstacles go first so items stay visible on top of them.
func DrawArena(s *core.Screen, a Arena, snap game.Snapshot) {
	s.Clear()
	s.DrawBox(a.X, a.Y, a.W, a.H, core.ColorFrame)

	for _, o := range snap.Objects {
		if o.Type == game.ItemObstacle {
			drawObstacle(s, a, o)
		}
	}
	for _, o := range snap.Objects {
		if o.Type == game.ItemObstacle {
			continue
		}
		if col, row, ok := a.Cell(o.X, o.Y); ok {
			a.set(s, col, row, o.Type.Glyph(), itemColor(o.Type))
		}
	}

	drawPlayer(s, a, snap.Player)

	for _, p := range snap.Popups {
		a.textAt(s, p.X, p.Y, " "+p.Text+" ", popupColor(p.Tone))
	}

	if snap.Countdown != "" {
		a.textCentered(s, a.innerH()/2, "  "+snap.Countdown+"  ", core.ColorCountdown)
	}
}

func drawObstacle(s *core.Screen, a Arena, o game.ObjectView) {
	left, top := o.X-o.W/2, o.Y-o.H/2
	x0, y0, _ := a.Cell(core.ClampF(left, 0, 100), core.ClampF(top, 0, 100))
	x1, y1, _ := a.Cell(core.ClampF(left+o.W, 0, 100), core.ClampF(top+o.H, 0, 100))
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			a.set(s, col, row, o.Type.Glyph(), core.ColorObstacle)
		}
	}
	label := "zzz"
	a.text(s, (x0+x1)/2-1, (y0+y1)/2, label, core.ColorText)
}

func drawPlayer(s *core.Screen, a Arena, p game.PlayerView) {
	x := core.ClampF(p.X, 0, 100)
	y := core.ClampF(p.Y, 0, 100)
	col, row, _ := a.Cell(x, y)

	color := core.ColorPlayer
	if p.Stunned {
		color = core.ColorStunned
		a.set(s, col, row-1, '~', core.ColorDim)
	}
	a.set(s, col-1, row, '(', color)
	a.set(s, col, row, p.Expression.Face(), color)
	a.set(s, col+1, row, ')', color)
}

// DrawOverlay writes message lines in the middle of the arena, used by the
// loading screen.
func DrawOverlay(s *core.Screen, a Arena, lines []string, c core.Color) {
	start := a.innerH()/2 - len(lines)/2
	for i, line := range lines {
		a.textCentered(s, start+i, line, c)
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

// Palette maps core.Color slots to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// basePalette holds the slots every theme shares.
func basePalette() Palette {
	return Palette{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorFrame:        fg("245"),
		core.ColorText:         fg("252"),
		core.ColorDim:          fg("240"),
		core.ColorPlayer:       fg("15").Bold(true),
		core.ColorStunned:      fg("244").Bold(true),
		core.ColorGood:         fg("10"),
		core.ColorBad:          fg("9"),
		core.ColorMixed:        fg("13"),
		core.ColorObstacle:     fg("61"),
		core.ColorPopupGood:    fg("15").Background(lipgloss.Color("28")),
		core.ColorPopupBad:     fg("15").Background(lipgloss.Color("124")),
		core.ColorPopupNeutral: fg("15").Background(lipgloss.Color("240")),
		core.ColorWarning:      fg("9").Bold(true).Blink(true),
		core.ColorCountdown:    fg("11").Bold(true),
	}
}

// ThemePalette returns the palette for a phase theme (day, dusk, night).
// Unknown themes get the day palette.
func ThemePalette(theme string) Palette {
	p := basePalette()
	switch theme {
	case "dusk":
		p[core.ColorFrame] = fg("208")
		p[core.ColorDim] = fg("130")
	case "night":
		p[core.ColorFrame] = fg("63")
		p[core.ColorDim] = fg("17")
		p[core.ColorText] = fg("147")
	default:
		p[core.ColorFrame] = fg("220")
		p[core.ColorDim] = fg("229")
	}
	return p
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, palette Palette) string {
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

			style, ok := palette[startColor]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

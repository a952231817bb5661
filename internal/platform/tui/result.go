package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/game"
)

var (
	goodHeadline = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	badHeadline  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// ResultModel shows how a round ended.
type ResultModel struct {
	outcome   game.Outcome
	player    game.PlayerState
	elapsed   float64
	skipped   bool
	collected map[game.ItemType]int

	width      int
	keys       KeyMap
	help       help.Model
	restart    bool
	backToMenu bool
	quitting   bool
}

// NewResultModel captures the finished round.
func NewResultModel(sim *game.Sim, width int) ResultModel {
	h := help.New()
	h.Width = width
	return ResultModel{
		outcome:   sim.Outcome(),
		player:    sim.Player(),
		elapsed:   sim.Elapsed(),
		skipped:   sim.Skipped(),
		collected: sim.Collected(),
		width:     width,
		keys:      DefaultKeyMap(),
		help:      h,
	}
}

// Init initializes the result screen.
func (m ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.quitting = true
		case core.ActionRestart, core.ActionConfirm:
			m.restart = true
		case core.ActionBack:
			m.backToMenu = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the result.
func (m ResultModel) View() string {
	if m.quitting {
		return ""
	}

	headline := badHeadline
	if m.outcome == game.OutcomeSucceeded {
		headline = goodHeadline
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.outcome.String())), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(headline.Render(m.outcome.Headline()), m.width))
	b.WriteString("\n\n")

	for _, line := range m.statLines() {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpBarStyle.Render(m.help.View(m.keys.resultHelp())), m.width))
	return b.String()
}

func (m ResultModel) statLines() []string {
	lines := []string{
		fmt.Sprintf("Homework  %3.0f%%", m.player.Progress),
		fmt.Sprintf("Vitality  %3.0f%%", m.player.Vitality),
		fmt.Sprintf("Time      %4.1fs", m.elapsed),
	}
	if m.skipped {
		lines = append(lines, subtitleStyle.Render("(played without the head tracker)"))
	}

	var caught []string
	for _, t := range game.ItemTypes() {
		if n := m.collected[t]; n > 0 {
			caught = append(caught, fmt.Sprintf("%c %d", t.Glyph(), n))
		}
	}
	if len(caught) > 0 {
		lines = append(lines, "", "Caught  "+strings.Join(caught, "  "))
	}
	return lines
}

// Outcome returns how the round ended.
func (m ResultModel) Outcome() game.Outcome {
	return m.outcome
}

// Restart returns true if user asked for another round.
func (m ResultModel) Restart() bool {
	return m.restart
}

// IsQuitting returns true if user requested to quit entirely.
func (m ResultModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m ResultModel) BackToMenu() bool {
	return m.backToMenu
}

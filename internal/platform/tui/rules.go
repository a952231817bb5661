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

var rulesBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 2)

// RulesModel explains the controls and the items.
type RulesModel struct {
	width      int
	keys       KeyMap
	help       help.Model
	backToMenu bool
	quitting   bool
}

// NewRulesModel creates the rules screen.
func NewRulesModel(width int) RulesModel {
	h := help.New()
	h.Width = width
	return RulesModel{width: width, keys: DefaultKeyMap(), help: h}
}

// Init initializes the rules screen.
func (m RulesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.quitting = true
		case core.ActionBack, core.ActionConfirm:
			m.backToMenu = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the rules.
func (m RulesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HOW TO PLAY"), m.width))
	b.WriteString("\n\n")

	box := rulesBoxStyle.Render(RulesText())
	for _, line := range strings.Split(box, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpBarStyle.Render(m.help.View(bindings{m.keys.Back, m.keys.Quit})), m.width))
	return b.String()
}

// RulesText lists the goal and what every item does.
func RulesText() string {
	var b strings.Builder
	b.WriteString("Move your head to steer. Your nose is the cursor.\n")
	b.WriteString("Reach 100% homework before time runs out,\n")
	b.WriteString("and do not let your vitality drop to zero.\n\n")

	for _, t := range game.ItemTypes() {
		fmt.Fprintf(&b, "%c  %-12s %s\n", t.Glyph(), t.Label(), describeItem(t))
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeItem(t game.ItemType) string {
	if t == game.ItemObstacle {
		return "pushes you away while you touch it"
	}
	choices := game.Reactions(t)
	parts := make([]string, 0, len(choices))
	for _, r := range choices {
		parts = append(parts, describeReaction(r))
	}
	return strings.Join(parts, " or ")
}

func describeReaction(r game.Reaction) string {
	stat := "vitality"
	if r.Effect == game.EffectProgress {
		stat = "homework"
	}
	s := fmt.Sprintf("%+.0f %s", r.Amount, stat)
	if r.Over > 0 {
		s += fmt.Sprintf(" over %.1fs", r.Over)
	}
	if r.Stun > 0 {
		s += fmt.Sprintf(", busy %.1fs", r.Stun.Seconds())
	}
	return s
}

// IsQuitting returns true if user requested to quit entirely.
func (m RulesModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m RulesModel) BackToMenu() bool {
	return m.backToMenu
}

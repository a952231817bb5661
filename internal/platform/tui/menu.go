package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

// Choice is a main menu entry.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoicePlay
	ChoiceRules
	ChoiceResults
	ChoiceSettings
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice Choice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: ChoicePlay, Title: "Start studying"},
	{Choice: ChoiceRules, Title: "How to play"},
	{Choice: ChoiceResults, Title: "Past results"},
	{Choice: ChoiceSettings, Title: "Sound settings"},
	{Choice: ChoiceQuit, Title: "Quit"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	status   string // tracker line under the title
	keys     KeyMap
	help     help.Model
	selected Choice
	quitting bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(width, height int, status string) MenuModel {
	h := help.New()
	h.Width = width
	return MenuModel{
		items:  menuItems,
		width:  width,
		height: height,
		status: status,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case core.ActionConfirm:
		m.selected = m.items[m.cursor].Choice
		if m.selected == ChoiceQuit {
			m.quitting = true
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D E A D L I N E   R U S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitleStyle.Render("Finish your homework before the night is over"), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(subtitleStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-16s", item.Title)
		if i == m.cursor {
			line = cursorStyle.Render(fmt.Sprintf("> %-16s", item.Title))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpBarStyle.Render(m.help.View(m.keys.menuHelp())), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() Choice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

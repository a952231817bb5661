package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadline-rush/internal/storage"
)

const (
	maxResults     = 100 // rows loaded into the table
	resultsChrome  = 9   // title, stats, borders and help
	minTableHeight = 3
)

// ResultsModel is the Bubble Tea model for the past results screen.
type ResultsModel struct {
	store      *storage.Store
	results    []storage.Result
	stats      *storage.Stats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       KeyMap
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewResultsModel creates the results screen and loads the history.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	h := help.New()
	h.Width = width

	m := ResultsModel{
		store:  store,
		keys:   DefaultKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Outcome", Width: 10},
		{Title: "Homework", Width: 9},
		{Title: "Vitality", Width: 9},
		{Title: "Time", Width: 7},
		{Title: "Player", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-resultsChrome, minTableHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ResultsModel) load() {
	m.results, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	results, err := m.store.RecentResults(maxResults)
	if err != nil {
		m.loadErr = err
	} else {
		m.results = results
	}
	if stats, err := m.store.Stats(); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		player := r.Player
		if r.Skipped {
			player += " *"
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Outcome,
			fmt.Sprintf("%.0f%%", r.Progress),
			fmt.Sprintf("%.0f%%", r.Vitality),
			fmt.Sprintf("%.1fs", r.Elapsed),
			player,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results screen.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.backToMenu = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("PAST RESULTS"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for _, line := range strings.Split(tableStyle.Render(m.renderTableContent()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render(m.help.View(bindings{m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Quit})))
	return b.String()
}

func (m ResultsModel) statsLine() string {
	switch {
	case m.store == nil:
		return "History is disabled"
	case m.stats == nil || m.stats.Games == 0:
		return "No rounds played yet"
	}
	s := m.stats
	return fmt.Sprintf("%d rounds  |  %d done  %d exhausted  %d late  |  best %.0f%%  avg %.0f%%",
		s.Games, s.Succeeded, s.Failed, s.Expired, s.BestProgress, s.AvgProgress)
}

// renderTableContent renders the table or empty message.
func (m ResultsModel) renderTableContent() string {
	if m.loadErr != nil || len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.loadErr != nil {
			return emptyStyle.Render("Could not load results:\n" + m.loadErr.Error())
		}
		return emptyStyle.Render("No results recorded yet.\nFinish a round to see it here!")
	}
	return m.table.View()
}

// Rows returns the number of loaded results.
func (m ResultsModel) Rows() int {
	return len(m.results)
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user wants to go back to menu.
func (m ResultsModel) BackToMenu() bool {
	return m.backToMenu
}

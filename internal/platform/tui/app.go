package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenResult
	screenRules
	screenResults
	screenSettings
)

// App manages the full flow of one player: menu -> round -> result -> menu.
// It is the top-level model for both local and SSH sessions.
type App struct {
	sess    *Session
	width   int
	height  int
	current screen

	menu     MenuModel
	play     PlayModel
	result   ResultModel
	rules    RulesModel
	results  ResultsModel
	settings SettingsModel

	quitting bool
}

// NewApp creates the app on the screen matching start. ChoiceNone opens the
// menu.
func NewApp(sess *Session, width, height int, start Choice) App {
	m := App{sess: sess, width: width, height: height}
	m.menu = NewMenuModel(width, height, trackerStatus(sess))

	switch start {
	case ChoicePlay:
		m.current = screenPlay
		if err := m.newRound(); err != nil {
			m.current = screenMenu
		}
	case ChoiceResults:
		m.current = screenResults
		m.results = NewResultsModel(sess.Store, width, height)
	}
	return m
}

// trackerStatus describes the head tracker for the menu.
func trackerStatus(sess *Session) string {
	b := sess.backend
	switch {
	case b == nil:
		return "Head tracker: none"
	case b.Landmarker.Err() != nil:
		return fmt.Sprintf("Head tracker: %s (failed: %v)", b.Name, b.Landmarker.Err())
	case b.Landmarker.Ready():
		return fmt.Sprintf("Head tracker: %s (ready)", b.Name)
	default:
		return fmt.Sprintf("Head tracker: %s (loading)", b.Name)
	}
}

func (m *App) newRound() error {
	play, err := NewPlayModel(m.sess, m.width, m.height)
	if err != nil {
		m.sess.Logger().Error("could not start a round", "err", err)
		return err
	}
	m.play = play
	return nil
}

// Init initializes the current screen.
func (m App) Init() tea.Cmd {
	if m.current == screenPlay {
		return m.play.Init()
	}
	return nil
}

// Update routes the message to the current screen and follows its
// transitions.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.current {
	case screenPlay:
		return m.updatePlay(msg)
	case screenResult:
		return m.updateResult(msg)
	case screenRules:
		next, cmd := m.rules.Update(msg)
		m.rules = next.(RulesModel)
		return m.leave(m.rules.IsQuitting(), m.rules.BackToMenu(), cmd)
	case screenResults:
		next, cmd := m.results.Update(msg)
		m.results = next.(ResultsModel)
		return m.leave(m.results.IsQuitting(), m.results.BackToMenu(), cmd)
	case screenSettings:
		next, cmd := m.settings.Update(msg)
		m.settings = next.(SettingsModel)
		return m.leave(m.settings.IsQuitting(), m.settings.BackToMenu(), cmd)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}

	switch m.menu.Selected() {
	case ChoicePlay:
		return m.startRound()
	case ChoiceRules:
		m.current = screenRules
		m.rules = NewRulesModel(m.width)
	case ChoiceResults:
		m.current = screenResults
		m.results = NewResultsModel(m.sess.Store, m.width, m.height)
	case ChoiceSettings:
		m.current = screenSettings
		m.settings = NewSettingsModel(m.sess, m.width)
	}
	return m, cmd
}

func (m App) startRound() (tea.Model, tea.Cmd) {
	if err := m.newRound(); err != nil {
		m.menu = NewMenuModel(m.width, m.height, "Could not start: "+err.Error())
		m.current = screenMenu
		return m, nil
	}
	m.current = screenPlay
	return m, m.play.Init()
}

// updatePlay handles updates while a round runs.
func (m App) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	m.play = next.(PlayModel)

	switch {
	case m.play.IsQuitting():
		return m.quit()
	case m.play.BackToMenu():
		m.sess.Music.Stop()
		return m.toMenu()
	case m.play.Finished():
		m.current = screenResult
		m.result = NewResultModel(m.play.Sim(), m.width)
		return m, nil
	}
	return m, cmd
}

// updateResult handles updates on the result screen.
func (m App) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.result.Update(msg)
	m.result = next.(ResultModel)

	switch {
	case m.result.IsQuitting():
		return m.quit()
	case m.result.Restart():
		return m.startRound()
	case m.result.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m App) leave(quitting, back bool, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case quitting:
		return m.quit()
	case back:
		return m.toMenu()
	}
	return m, cmd
}

func (m App) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.width, m.height, trackerStatus(m.sess))
	return m, m.menu.Init()
}

func (m App) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sess.Music.Stop()
	return m, tea.Quit
}

// View renders the current screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenPlay:
		return m.play.View()
	case screenResult:
		return m.result.View()
	case screenRules:
		return m.rules.View()
	case screenResults:
		return m.results.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true once the player asked to leave.
func (m App) IsQuitting() bool {
	return m.quitting
}

// Run plays in the local terminal until the player quits or ctx is
// cancelled. The session is closed on every exit path.
func Run(ctx context.Context, deps Deps, player string, start Choice) error {
	sess := NewSession(ctx, deps, player)
	defer sess.Close()

	app := NewApp(sess, deps.Runtime.ScreenW, deps.Runtime.ScreenH, start)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

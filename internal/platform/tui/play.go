package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/game"
)

const (
	hudLines    = 2
	footerLines = 1
	barWidth    = 20
	minArenaW   = 20
	minArenaH   = 8
)

var (
	hudLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	hudValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	hudWarningStyle = lipgloss.NewStyle().Bold(true).Blink(true).Foreground(lipgloss.Color("9"))
	helpBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlayModel runs one round: it ticks the simulation, forwards its events to
// the audio collaborators and draws the arena.
type PlayModel struct {
	sess    *Session
	sim     *game.Sim
	roundID string

	screen   *core.Screen
	width    int
	height   int
	keys     KeyMap
	help     help.Model
	vitality progress.Model
	progress progress.Model
	spinner  spinner.Model

	input    core.InputFrame
	lastTick time.Time

	finished   bool
	backToMenu bool
	quitting   bool
}

// NewPlayModel starts a new round for the session.
func NewPlayModel(sess *Session, width, height int) (PlayModel, error) {
	sim, err := sess.NewSim()
	if err != nil {
		return PlayModel{}, fmt.Errorf("start round: %w", err)
	}
	return newPlayModel(sess, sim, width, height), nil
}

func newPlayModel(sess *Session, sim *game.Sim, width, height int) PlayModel {
	h := help.New()
	h.Width = width

	m := PlayModel{
		sess:    sess,
		sim:     sim,
		roundID: uuid.NewString(),
		keys:    DefaultKeyMap(),
		help:    h,
		vitality: progress.New(
			progress.WithSolidFill("10"),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
		progress: progress.New(
			progress.WithSolidFill("33"),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:   core.NewInputFrame(),
	}
	m.resize(width, height)
	return m
}

func (m *PlayModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	w := max(width, minArenaW)
	h := max(height-hudLines-footerLines, minArenaH)
	if m.screen == nil {
		m.screen = core.NewScreen(w, h)
	} else {
		m.screen.Resize(w, h)
	}
}

// Init starts the tick loop and the loading spinner.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.sess.Runtime.TickRate), m.spinner.Tick)
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case spinner.TickMsg:
		if m.sim.Status() != game.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey queues the action for the next tick. Quit is the exception and
// takes effect at once.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, nil
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleTick drains the input frame, steps the simulation and dispatches
// its events. The loop stops rescheduling once the round is over.
func (m PlayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.finished || m.backToMenu || m.quitting {
		return m, nil
	}

	rate := m.sess.Runtime.TickRate
	dt := stepSize(m.lastTick, now, rate)
	m.lastTick = now

	if m.input.Has(core.ActionBack) {
		m.input.Clear()
		m.backToMenu = true
		return m, nil
	}
	if m.input.Has(core.ActionSkip) {
		m.sim.Skip()
	}
	if m.input.Has(core.ActionMusic) {
		if err := m.sess.Music.Play(); err != nil {
			m.sess.Logger().Warn("music did not start", "err", err)
		}
	}
	m.input.Clear()

	res := m.sim.Step(dt)
	m.sess.Dispatch(res.Events)

	if res.Outcome != game.OutcomeNone {
		m.finished = true
		m.sess.SaveResult(m.roundID, m.sim)
		m.sess.Logger().Info("round finished",
			"outcome", res.Outcome,
			"vitality", math.Round(m.sim.Player().Vitality),
			"progress", math.Round(m.sim.Player().Progress),
		)
		return m, nil
	}

	return m, tickCmd(rate)
}

// View renders the HUD, the arena and the help bar.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sim.Snapshot()
	arena := NewArena(m.screen)
	DrawArena(m.screen, arena, snap)
	if snap.Status == game.StatusLoading {
		DrawOverlay(m.screen, arena, m.loadingLines(snap), core.ColorText)
	}

	var b strings.Builder
	b.WriteString(m.hudView(snap))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen, ThemePalette(snap.Theme)))
	b.WriteString("\n")
	keys := m.keys.playHelp(snap.SkipAvailable, m.sess.Music.NeedsManualStart())
	b.WriteString(helpBarStyle.Render(m.help.View(keys)))
	return b.String()
}

func (m PlayModel) loadingLines(snap game.Snapshot) []string {
	lines := []string{m.spinner.View() + " Loading the head tracker..."}
	if err := m.sess.TrackerErr(); err != nil {
		lines = append(lines, "Tracker failed: "+err.Error())
	}
	lines = append(lines, "", "Steer with your nose once the countdown ends.")
	if snap.SkipAvailable {
		lines = append(lines, "Press s to start without the tracker.")
	}
	return lines
}

var phaseIcons = map[string]string{
	"day":   "☀",
	"dusk":  "◐",
	"night": "☾",
}

func (m PlayModel) hudView(snap game.Snapshot) string {
	p := snap.Player
	bars := fmt.Sprintf("%s %s %s   %s %s %s",
		hudLabelStyle.Render("VITALITY"),
		m.vitality.ViewAs(p.Vitality/100),
		hudValueStyle.Render(fmt.Sprintf("%3.0f%%", p.Vitality)),
		hudLabelStyle.Render("HOMEWORK"),
		m.progress.ViewAs(p.Progress/100),
		hudValueStyle.Render(fmt.Sprintf("%3.0f%%", p.Progress)),
	)

	status := fmt.Sprintf("%s %s   %s %s   %s",
		hudLabelStyle.Render("TIME"),
		hudValueStyle.Render(fmt.Sprintf("%2.0fs", math.Ceil(snap.TimeLeft))),
		phaseIcons[snap.Theme],
		hudValueStyle.Render(strings.ToUpper(snap.Theme)),
		p.Expression.Symbol(),
	)
	if p.Stunned {
		status += "   " + hudValueStyle.Render("(busy)")
	}
	if snap.LowVitality && snap.Status == game.StatusRunning {
		status += "   " + hudWarningStyle.Render("LOW VITALITY!")
	}

	return bars + "\n" + status
}

// Finished reports whether the round reached an outcome.
func (m PlayModel) Finished() bool {
	return m.finished
}

// Sim returns the round's simulation.
func (m PlayModel) Sim() *game.Sim {
	return m.sim
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

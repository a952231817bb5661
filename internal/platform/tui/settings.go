package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

const volumeStep = 0.1

type settingRow int

const (
	rowCues settingRow = iota
	rowCueVolume
	rowMusic
	rowMusicVolume
	rowCount
)

// SettingsModel toggles sound for the current session. Changes apply live.
type SettingsModel struct {
	sess       *Session
	cursor     settingRow
	width      int
	keys       KeyMap
	help       help.Model
	backToMenu bool
	quitting   bool
}

// NewSettingsModel creates the settings screen for a session.
func NewSettingsModel(sess *Session, width int) SettingsModel {
	h := help.New()
	h.Width = width
	return SettingsModel{sess: sess, width: width, keys: DefaultKeyMap(), help: h}
}

// Init initializes the settings screen.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.quitting = true
		case core.ActionBack:
			m.backToMenu = true
		case core.ActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case core.ActionDown:
			if m.cursor < rowCount-1 {
				m.cursor++
			}
		case core.ActionLeft:
			m.adjust(-1)
		case core.ActionRight:
			m.adjust(1)
		case core.ActionConfirm:
			m.toggle()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) adjust(dir float64) {
	switch m.cursor {
	case rowCues, rowMusic:
		m.toggle()
	case rowCueVolume:
		m.sess.Audio.SetVolume(m.sess.Audio.Volume() + dir*volumeStep)
	case rowMusicVolume:
		m.sess.Music.SetVolume(m.sess.Music.Volume() + dir*volumeStep)
	}
}

func (m SettingsModel) toggle() {
	switch m.cursor {
	case rowCues:
		m.sess.Audio.SetEnabled(!m.sess.Audio.Enabled())
	case rowMusic:
		m.sess.Music.SetEnabled(!m.sess.Music.Enabled())
	}
}

// View renders the settings.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SOUND SETTINGS"), m.width))
	b.WriteString("\n\n")

	for row := range rowCount {
		line := fmt.Sprintf("%-14s %s", m.label(row), m.value(row))
		if row == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sess.Audio.Silent() {
		b.WriteString(centerText(subtitleStyle.Render("No audio device: sound is off for this session"), m.width))
		b.WriteString("\n")
	}
	if !m.sess.Music.HasTrack() {
		b.WriteString(centerText(subtitleStyle.Render("No music track configured"), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(helpBarStyle.Render(m.help.View(m.keys.settingsHelp())), m.width))
	return b.String()
}

func (m SettingsModel) label(row settingRow) string {
	switch row {
	case rowCues:
		return "Sound cues"
	case rowCueVolume:
		return "Cue volume"
	case rowMusic:
		return "Music"
	default:
		return "Music volume"
	}
}

func (m SettingsModel) value(row settingRow) string {
	switch row {
	case rowCues:
		return onOff(m.sess.Audio.Enabled())
	case rowCueVolume:
		return volumeBar(m.sess.Audio.Volume())
	case rowMusic:
		return onOff(m.sess.Music.Enabled())
	default:
		return volumeBar(m.sess.Music.Volume())
	}
}

func onOff(on bool) string {
	if on {
		return "[on] "
	}
	return "[off]"
}

// volumeBar draws v in [0,1] as ten cells.
func volumeBar(v float64) string {
	n := core.Clamp(int(v*10+0.5), 0, 10)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", 10-n) + "]"
}

// IsQuitting returns true if user requested to quit entirely.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SettingsModel) BackToMenu() bool {
	return m.backToMenu
}

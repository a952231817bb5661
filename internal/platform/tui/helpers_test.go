package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/game"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
)

type stubSensor struct {
	ready bool
}

func (s stubSensor) Ready() bool { return s.ready }

func (s stubSensor) Sample() (sensor.Reading, bool) {
	return sensor.Reading{X: 0.5, Y: 0.5}, s.ready
}

func testDeps(cfg config.GameConfig) Deps {
	rt := core.DefaultConfig()
	rt.Seed = 1
	return Deps{
		Game:    cfg,
		Runtime: rt,
		Logger:  log.New(io.Discard),
	}
}

func newTestSession(t *testing.T, cfg config.GameConfig) *Session {
	t.Helper()
	sess := NewSession(context.Background(), testDeps(cfg), "tester")
	t.Cleanup(sess.Close)
	return sess
}

func newTestPlay(t *testing.T, cfg config.GameConfig, ready bool) PlayModel {
	t.Helper()
	sess := newTestSession(t, cfg)
	sim, err := game.New(cfg, stubSensor{ready: ready}, time.Now(), 1)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	return newPlayModel(sess, sim, 80, 24)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tick delivers a TickMsg and returns the updated model.
func tick(t *testing.T, m PlayModel, at time.Time) (PlayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg(at))
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected PlayModel", next)
	}
	return pm, cmd
}

func press(t *testing.T, m PlayModel, msg tea.KeyMsg) PlayModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(PlayModel)
}

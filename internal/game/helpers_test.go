package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
)

var epoch = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

type fakeSensor struct {
	ready   bool
	reading sensor.Reading
	have    bool
	samples int
}

func (f *fakeSensor) Ready() bool { return f.ready }

func (f *fakeSensor) Sample() (sensor.Reading, bool) {
	f.samples++
	return f.reading, f.have
}

// quietConfig is the default config without spawns.
func quietConfig() config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Phases.Early.SpawnInterval = 1e9
	cfg.Phases.Mid.SpawnInterval = 1e9
	cfg.Phases.Late.SpawnInterval = 1e9
	return cfg
}

func newSim(t *testing.T, cfg config.GameConfig, s Sensor) *Sim {
	t.Helper()
	sim, err := New(cfg, s, epoch, 42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sim
}

// runningSim returns a sim whose clock has just started.
func runningSim(t *testing.T, cfg config.GameConfig, s *fakeSensor) *Sim {
	t.Helper()
	s.ready = true
	sim := newSim(t, cfg, s)
	sim.Step(0)
	if sim.Status() != StatusWarmup {
		t.Fatalf("Status() after ready = %v, expected warmup", sim.Status())
	}
	sim.Step(time.Duration(cfg.Session.WarmupSeconds * float64(time.Second)))
	if sim.Status() != StatusRunning {
		t.Fatalf("Status() after warmup = %v, expected running", sim.Status())
	}
	return sim
}

func hasEvent(events []Event, want Event) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func cueEvent(c Cue) Event {
	return Event{Kind: EventCue, Cue: c}
}

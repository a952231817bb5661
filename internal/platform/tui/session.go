package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/deadline-rush/internal/audio"
	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/game"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
	"github.com/vovakirdan/deadline-rush/internal/storage"
)

// Deps are the process-wide resources every session shares.
type Deps struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Backend *sensor.Backend // nil plays without a tracker
	Store   *storage.Store  // nil disables the results history
	Output  *audio.Output   // nil disables sound
	Logger  *log.Logger
}

// Session owns the resources of one player: the tracker subscription, the
// cue engine and the music. Close releases them on every exit path.
type Session struct {
	ID      string
	Player  string
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Audio   *audio.Engine
	Music   *audio.Music

	backend *sensor.Backend
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	adapter   *sensor.Adapter
	closeOnce sync.Once
}

// NewSession prepares a session. Audio problems are logged and leave the
// session silent.
func NewSession(ctx context.Context, deps Deps, player string) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id[:8])

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:      id,
		Player:  player,
		Game:    deps.Game,
		Runtime: deps.Runtime,
		Store:   deps.Store,
		backend: deps.Backend,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	s.Audio = audio.NewEngine(deps.Output, deps.Game.Audio)
	if err := s.Audio.Start(); err != nil && deps.Output != nil {
		logger.Warn("sound cues disabled", "err", err)
	}

	musicCfg := deps.Game.Audio
	if deps.Output == nil {
		musicCfg.MusicPath = ""
	}
	music, err := audio.LoadMusic(deps.Output, musicCfg)
	if err != nil {
		logger.Warn("background music unavailable", "path", musicCfg.MusicPath, "err", err)
	}
	s.Music = music

	return s
}

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}

// NewSim starts a fresh round. The previous round's tracker subscription is
// released first.
func (s *Session) NewSim() (*game.Sim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adapter != nil {
		s.adapter.Close()
		s.adapter = nil
	}

	var src game.Sensor = noSensor{}
	if s.backend != nil {
		adapter, err := s.backend.NewAdapter(s.ctx)
		if err != nil {
			s.logger.Error("tracker unavailable", "backend", s.backend.Name, "err", err)
		} else {
			s.adapter = adapter
			src = adapter
		}
	}

	seed := s.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return game.New(s.Game, src, time.Now(), seed)
}

// TrackerErr returns the tracker's load error, if any.
func (s *Session) TrackerErr() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Landmarker.Err()
}

// SaveResult records a finished round. Best-effort: failures are logged.
func (s *Session) SaveResult(roundID string, sim *game.Sim) {
	if s.Store == nil || !sim.Status().Terminal() {
		return
	}
	p := sim.Player()
	_, err := s.Store.SaveResult(storage.Result{
		SessionID: roundID,
		Outcome:   sim.Outcome().String(),
		Vitality:  p.Vitality,
		Progress:  p.Progress,
		Elapsed:   sim.Elapsed(),
		Collected: sim.TotalCollected(),
		Player:    s.Player,
		Skipped:   sim.Skipped(),
	})
	if err != nil {
		s.logger.Warn("could not save result", "err", err)
	}
}

// Dispatch forwards a step's events to the cue engine and the music.
func (s *Session) Dispatch(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventCue:
			s.Audio.Play(ev.Cue)
		case game.EventMusicStart:
			if err := s.Music.Play(); err != nil {
				s.logger.Debug("music needs a manual start", "err", err)
			}
		case game.EventMusicStop:
			s.Music.Stop()
		}
	}
}

// Close stops the music, releases the tracker subscription and cancels the
// session context. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.Music.Close()

		s.mu.Lock()
		if s.adapter != nil {
			s.adapter.Close()
			s.adapter = nil
		}
		s.mu.Unlock()
		s.logger.Debug("session closed")
	})
}

// noSensor is used when no tracker backend could be opened.
type noSensor struct{}

func (noSensor) Ready() bool                    { return false }
func (noSensor) Sample() (sensor.Reading, bool) { return sensor.Reading{}, false }

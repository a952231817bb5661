package game

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
)

// GoLabel is the countdown label shown when the clock starts.
const GoLabel = "GO!"

// Sensor is the head position source polled once per tick.
type Sensor interface {
	// Ready reports whether the tracker can produce readings.
	Ready() bool
	// Sample returns the latest nose position, if there is a new one.
	Sample() (sensor.Reading, bool)
}

// Sim is the authoritative state of one session.
// It keeps its own clock, advanced only by Step, so a session can be driven
// by wall-clock deltas or by fixed steps in tests.
type Sim struct {
	cfg      config.GameConfig
	sensor   Sensor
	rng      *rand.Rand
	store    *Store
	spawner  *Spawner
	resolver *Resolver
	schedule *config.Schedule

	status   Status
	outcome  Outcome
	reported bool
	phase    Phase
	skipped  bool

	now          time.Time
	loadingSince time.Time
	warmupStart  time.Time
	runStart     time.Time
	elapsed      float64

	countdown string
	popups    []Popup
	events    []Event
	collected [itemTypeCount]int
}

// New creates a session in the loading state. start seeds the session clock
// and is normally the wall-clock time.
func New(cfg config.GameConfig, s Sensor, start time.Time, seed int64) (*Sim, error) {
	rng := rand.New(rand.NewSource(seed))

	spawner, err := NewSpawner(cfg, rng)
	if err != nil {
		return nil, err
	}

	sim := &Sim{
		cfg:          cfg,
		sensor:       s,
		rng:          rng,
		spawner:      spawner,
		resolver:     NewResolver(cfg),
		schedule:     config.NewSchedule(cfg.Phases),
		status:       StatusLoading,
		phase:        PhaseEarly,
		now:          start,
		loadingSince: start,
	}
	sim.store = NewStore(sim.initialPlayer())
	return sim, nil
}

func (s *Sim) initialPlayer() PlayerState {
	return PlayerState{
		X:          s.cfg.Player.StartX,
		Y:          s.cfg.Player.StartY,
		Vitality:   statMax,
		Progress:   0,
		Expression: s.spawner.phases[PhaseEarly].face,
	}
}

func (s *Sim) tuning() phaseTuning {
	return s.spawner.phases[s.phase]
}

// Step advances the session by dt. Once the session has ended it does
// nothing.
func (s *Sim) Step(dt time.Duration) StepResult {
	if s.status.Terminal() {
		return StepResult{Status: s.status}
	}
	dt = max(dt, 0)
	s.now = s.now.Add(dt)
	s.events = nil

	if s.status == StatusLoading {
		if s.sensor.Ready() {
			s.beginWarmup()
		}
		return s.result()
	}

	reading, haveReading := s.sensor.Sample()

	// The clock starts mid-tick when the countdown ends; that tick's dt
	// belongs to the warmup.
	wasRunning := s.status == StatusRunning
	s.advanceClock()
	if s.checkOutcome() {
		return s.result()
	}

	p := &s.store.Player
	if haveReading && !p.Stunned {
		s.steer(p, reading)
	}
	p.ExpireStatus(s.now, s.tuning().face)

	secs := dt.Seconds()
	running := wasRunning && s.status == StatusRunning
	if running {
		p.Decay(s.tuning().decay, secs)
		p.TickEffects(secs)
	}

	if obj, ok := s.spawner.TrySpawn(s.phase, s.now, secs, p); ok {
		if obj.Type == ItemObstacle {
			s.emit(CueAlert)
		}
		s.store.Add(obj)
	}

	s.resolver.Step(s.store, secs, running, s.catch)
	s.store.Purge()
	s.prunePopups()

	return s.result()
}

// SkipAvailable reports whether the player may start without a ready
// tracker.
func (s *Sim) SkipAvailable() bool {
	return s.status == StatusLoading &&
		s.now.Sub(s.loadingSince).Seconds() >= s.cfg.Session.SkipAfter
}

// Skip starts the warmup without waiting for the tracker. It is refused
// until the skip grace period has passed.
func (s *Sim) Skip() bool {
	if !s.SkipAvailable() {
		return false
	}
	s.skipped = true
	s.beginWarmup()
	return true
}

func (s *Sim) beginWarmup() {
	s.status = StatusWarmup
	s.warmupStart = s.now
}

func (s *Sim) startRunning() {
	s.status = StatusRunning
	s.runStart = s.now
	s.countdown = GoLabel
	s.emit(CueCountdownGo)
	s.events = append(s.events, Event{Kind: EventMusicStart})
}

// advanceClock runs the countdown during warmup and the phase schedule
// while running.
func (s *Sim) advanceClock() {
	if s.status == StatusWarmup {
		remaining := s.cfg.Session.WarmupSeconds - s.now.Sub(s.warmupStart).Seconds()
		if remaining > 0 {
			label := strconv.Itoa(int(math.Ceil(remaining)))
			if label != s.countdown {
				s.countdown = label
				s.emit(CueCountdownTick)
			}
			return
		}
		s.startRunning()
	}

	if s.status != StatusRunning {
		return
	}
	s.elapsed = s.now.Sub(s.runStart).Seconds()
	if s.countdown != "" && s.elapsed > s.cfg.Session.GoSeconds {
		s.countdown = ""
	}
	if stage, changed := s.schedule.Advance(s.elapsed); changed {
		s.phase = Phase(stage)
	}
}

// checkOutcome ends the session when a terminal condition holds. Running
// out of vitality wins over finishing the homework on the same tick.
func (s *Sim) checkOutcome() bool {
	if s.status != StatusRunning {
		return false
	}
	p := s.store.Player
	switch {
	case p.Vitality <= 0:
		s.finish(StatusFailed, OutcomeFailed, CueFail)
	case p.Progress >= statMax:
		s.finish(StatusSucceeded, OutcomeSucceeded, CueSuccess)
	case s.TimeLeft() <= 0:
		s.finish(StatusExpired, OutcomeExpired, CueTimeout)
	default:
		return false
	}
	return true
}

func (s *Sim) finish(status Status, outcome Outcome, stinger Cue) {
	s.status = status
	s.outcome = outcome
	s.countdown = ""
	s.events = append(s.events, Event{Kind: EventMusicStop})
	s.emit(stinger)
}

// steer eases the avatar toward the nose position. Low vitality makes the
// avatar sluggish.
func (s *Sim) steer(p *PlayerState, r sensor.Reading) {
	pc := s.cfg.Player
	speed := pc.MinSpeedFactor + (1-pc.MinSpeedFactor)*p.Vitality/statMax
	k := pc.Smoothing * speed
	p.X = core.Lerp(p.X, r.X*100, k)
	p.Y = core.Lerp(p.Y, r.Y*100, k)
}

// catch applies the reaction for an item the player ran into.
func (s *Sim) catch(o *GameObject) {
	choices := Reactions(o.Type)
	if len(choices) == 0 {
		return
	}
	r := choices[0]
	if len(choices) > 1 {
		r = choices[s.rng.Intn(len(choices))]
	}

	p := &s.store.Player
	r.Apply(p, s.now)
	s.emit(r.Cue)
	s.addPopup(r.Text, p.X, p.Y-r.TextRise, r.Tone)
	s.collected[o.Type]++
}

func (s *Sim) emit(c Cue) {
	s.events = append(s.events, Event{Kind: EventCue, Cue: c})
}

func (s *Sim) addPopup(text string, x, y float64, tone Tone) {
	s.popups = append(s.popups, Popup{
		ID:        uuid.NewString(),
		Text:      text,
		X:         x,
		Y:         y,
		Tone:      tone,
		CreatedAt: s.now,
	})
}

func (s *Sim) prunePopups() {
	ttl := time.Duration(s.cfg.Session.PopupSeconds * float64(time.Second))
	kept := s.popups[:0]
	for _, p := range s.popups {
		if s.now.Sub(p.CreatedAt) <= ttl {
			kept = append(kept, p)
		}
	}
	clear(s.popups[len(kept):])
	s.popups = kept
}

func (s *Sim) result() StepResult {
	r := StepResult{Status: s.status, Events: s.events}
	if s.status.Terminal() && !s.reported {
		r.Outcome = s.outcome
		s.reported = true
	}
	return r
}

// Status returns the current state.
func (s *Sim) Status() Status {
	return s.status
}

// Outcome returns how the session ended, or OutcomeNone.
func (s *Sim) Outcome() Outcome {
	return s.outcome
}

// Phase returns the current phase.
func (s *Sim) Phase() Phase {
	return s.phase
}

// Theme returns the phase theme name (day, dusk, night).
func (s *Sim) Theme() string {
	return s.tuning().theme
}

// Now returns the session clock.
func (s *Sim) Now() time.Time {
	return s.now
}

// Elapsed returns the running seconds so far.
func (s *Sim) Elapsed() float64 {
	return s.elapsed
}

// TimeLeft returns the seconds until the deadline, never negative.
func (s *Sim) TimeLeft() float64 {
	return max(s.cfg.Session.TotalSeconds-s.elapsed, 0)
}

// Skipped reports whether the session started without a ready tracker.
func (s *Sim) Skipped() bool {
	return s.skipped
}

// Player returns a copy of the player state.
func (s *Sim) Player() PlayerState {
	p := s.store.Player
	p.Effects = append([]ActiveEffect(nil), p.Effects...)
	return p
}

// Collected returns how many items of each type were caught.
func (s *Sim) Collected() map[ItemType]int {
	out := make(map[ItemType]int)
	for i, n := range s.collected {
		if n > 0 {
			out[ItemType(i)] = n
		}
	}
	return out
}

// TotalCollected returns the number of items caught.
func (s *Sim) TotalCollected() int {
	total := 0
	for _, n := range s.collected {
		total += n
	}
	return total
}

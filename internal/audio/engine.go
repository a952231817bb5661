package audio

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/game"
)

// ErrNoOutput is returned when there is no speaker to play on.
var ErrNoOutput = errors.New("audio: no output device")

// Output is the process-wide speaker. A nil *Output is valid and never
// plays anything, which is what remote sessions use.
type Output struct {
	once   sync.Once
	err    error
	ready  atomic.Bool
	mixer  *beep.Mixer
	logger *log.Logger
}

// NewOutput creates an output. The speaker is opened on first use.
func NewOutput(logger *log.Logger) *Output {
	return &Output{mixer: &beep.Mixer{}, logger: logger}
}

// Open initializes the speaker once. Later calls return the first result.
func (o *Output) Open() error {
	if o == nil {
		return ErrNoOutput
	}
	o.once.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			o.err = errors.Join(ErrNoOutput, err)
			if o.logger != nil {
				o.logger.Warn("audio unavailable, running silent", "err", err)
			}
			return
		}
		speaker.Play(o.mixer)
		o.ready.Store(true)
	})
	return o.err
}

// Ready reports whether the speaker is open.
func (o *Output) Ready() bool {
	return o != nil && o.ready.Load()
}

// Add mixes s into the output. It reports false when the speaker is not
// open.
func (o *Output) Add(s beep.Streamer) bool {
	if !o.Ready() {
		return false
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Close stops everything and releases the device.
func (o *Output) Close() {
	if !o.Ready() {
		return
	}
	o.ready.Store(false)
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Engine plays sound cues. It never blocks the caller and never fails:
// without a speaker it stays silent.
type Engine struct {
	out     *Output
	enabled atomic.Bool
	volume  atomic.Uint64 // math.Float64bits of the cue volume
	silent  atomic.Bool
}

// NewEngine creates an engine playing on out with the given settings.
func NewEngine(out *Output, cfg config.AudioConfig) *Engine {
	e := &Engine{out: out}
	e.enabled.Store(cfg.Enabled)
	e.SetVolume(cfg.CueVolume)
	return e
}

// Start opens the output. On failure the engine switches to silent mode and
// the error is returned for display only.
func (e *Engine) Start() error {
	if !e.enabled.Load() {
		return nil
	}
	if err := e.out.Open(); err != nil {
		e.silent.Store(true)
		return err
	}
	return nil
}

// Silent reports whether the engine gave up on the speaker.
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// SetEnabled turns cues on or off. Turning them on opens the output if
// that has not been tried yet.
func (e *Engine) SetEnabled(on bool) {
	e.enabled.Store(on)
	if on && !e.silent.Load() && !e.out.Ready() {
		_ = e.Start()
	}
}

// Enabled reports whether cues are on.
func (e *Engine) Enabled() bool {
	return e.enabled.Load()
}

// SetVolume sets the cue volume, clamped to [0, 1].
func (e *Engine) SetVolume(v float64) {
	e.volume.Store(floatBits(clampVolume(v)))
}

// Volume returns the cue volume.
func (e *Engine) Volume() float64 {
	return floatFrom(e.volume.Load())
}

// Play starts the cue and returns immediately. It reports whether the cue
// was handed to the speaker.
func (e *Engine) Play(c game.Cue) bool {
	if !e.enabled.Load() || e.silent.Load() || !e.out.Ready() {
		return false
	}
	v, ok := CueVoice(c)
	if !ok {
		return false
	}
	return e.out.Add(newVolume(v.Streamer(sampleRate), e.Volume()))
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, 1)
}

func floatBits(v float64) uint64 { return math.Float64bits(v) }

func floatFrom(b uint64) float64 { return math.Float64frombits(b) }

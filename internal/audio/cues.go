// Package audio plays the game's sound cues and background music through
// the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/deadline-rush/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// gain floor for exponential fades; a fade can never reach zero.
const fadeFloor = 0.001

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// sample returns the wave value at phase p in [0, 1).
func (w Wave) sample(p float64) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*p - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// step switches the pitch at a fixed offset into the sound.
type step struct {
	At   time.Duration
	Freq float64
}

// Voice describes a single oscillator sound.
type Voice struct {
	Wave  Wave
	Freq  float64
	To    float64 // sweep target, 0 holds Freq
	Sweep time.Duration
	// ExpSweep sweeps the pitch exponentially instead of linearly.
	ExpSweep bool
	Steps    []step // replaces the sweep when set
	Length   time.Duration
	Gain     float64
	// ExpFade fades the gain exponentially down to fadeFloor instead of
	// linearly.
	ExpFade bool
}

// FreqAt returns the pitch t into the sound. Zero means silence.
func (v Voice) FreqAt(t time.Duration) float64 {
	if len(v.Steps) > 0 {
		f := v.Freq
		for _, s := range v.Steps {
			if t >= s.At {
				f = s.Freq
			}
		}
		return f
	}
	if v.To == 0 || v.Sweep <= 0 {
		return v.Freq
	}
	if t >= v.Sweep {
		return v.To
	}
	k := float64(t) / float64(v.Sweep)
	if v.ExpSweep {
		return v.Freq * math.Pow(v.To/v.Freq, k)
	}
	return v.Freq + (v.To-v.Freq)*k
}

// GainAt returns the amplitude t into the sound.
func (v Voice) GainAt(t time.Duration) float64 {
	if t >= v.Length {
		return 0
	}
	k := float64(t) / float64(v.Length)
	if v.ExpFade {
		return v.Gain * math.Pow(fadeFloor, k)
	}
	return v.Gain * (1 + (fadeFloor-1)*k)
}

// Streamer renders the voice at rate.
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	return &oscillator{voice: v, rate: rate, total: rate.N(v.Length)}
}

type oscillator struct {
	voice Voice
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		t := o.rate.D(o.pos)
		freq := o.voice.FreqAt(t)
		val := 0.0
		if freq > 0 {
			val = o.voice.GainAt(t) * o.voice.Wave.sample(o.phase)
			o.phase += freq / float64(o.rate)
			o.phase -= math.Floor(o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

const (
	cueGain     = 0.5
	stingerGain = 1.0
)

var cues = [game.CueCount]Voice{
	game.CueProgress: {
		Wave: WaveSine, Freq: 523.25, To: 1046.5, Sweep: 100 * time.Millisecond, ExpSweep: true,
		Length: 400 * time.Millisecond, Gain: cueGain, ExpFade: true,
	},
	game.CueVitalityGain: {
		Wave: WaveTriangle, Freq: 300, To: 500, Sweep: 200 * time.Millisecond,
		Length: 200 * time.Millisecond, Gain: cueGain,
	},
	game.CueVitalityLoss: {
		Wave: WaveSaw, Freq: 150, To: 50, Sweep: 400 * time.Millisecond, ExpSweep: true,
		Length: 400 * time.Millisecond, Gain: cueGain,
	},
	game.CueAlert: {
		Wave: WaveSquare, Freq: 880,
		Steps:  []step{{100 * time.Millisecond, 0}, {150 * time.Millisecond, 880}},
		Length: 400 * time.Millisecond, Gain: cueGain, ExpFade: true,
	},
	game.CueCountdownTick: {
		Wave: WaveSine, Freq: 440,
		Length: 100 * time.Millisecond, Gain: cueGain, ExpFade: true,
	},
	game.CueCountdownGo: {
		Wave: WaveSquare, Freq: 880,
		Length: 400 * time.Millisecond, Gain: cueGain, ExpFade: true,
	},
	game.CueFail: {
		Wave: WaveSaw, Freq: 200, To: 50, Sweep: time.Second,
		Length: time.Second, Gain: stingerGain,
	},
	game.CueSuccess: {
		Wave: WaveTriangle, Freq: 523.25,
		Steps: []step{
			{100 * time.Millisecond, 659.25},
			{200 * time.Millisecond, 783.99},
			{300 * time.Millisecond, 1046.5},
		},
		Length: 1500 * time.Millisecond, Gain: stingerGain, ExpFade: true,
	},
	game.CueTimeout: {
		Wave: WaveSquare, Freq: 100,
		Length: 300 * time.Millisecond, Gain: stingerGain, ExpFade: true,
	},
}

// CueVoice returns the voice for a cue.
func CueVoice(c game.Cue) (Voice, bool) {
	if c < 0 || c >= game.CueCount {
		return Voice{}, false
	}
	return cues[c], true
}

// newVolume scales s by a linear volume in [0, 1].
// math.Log2(0) is -Inf, so zero is handled with Silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/deadline-rush/internal/game"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestEveryCueHasAVoice(t *testing.T) {
	for c := game.Cue(0); c < game.CueCount; c++ {
		v, ok := CueVoice(c)
		if !ok || v.Length <= 0 || v.Gain <= 0 {
			t.Errorf("CueVoice(%v) = %+v, %v", c, v, ok)
			continue
		}

		total, peak := drain(v.Streamer(sampleRate))
		if want := sampleRate.N(v.Length); total != want {
			t.Errorf("%v streamed %d samples, expected %d", c, total, want)
		}
		if peak > 1 || peak == 0 {
			t.Errorf("%v peak = %v, expected in (0, 1]", c, peak)
		}
	}

	if _, ok := CueVoice(game.CueCount); ok {
		t.Error("CueVoice(CueCount) ok = true, expected false")
	}
}

func TestVoiceFreqAt(t *testing.T) {
	progress, _ := CueVoice(game.CueProgress)
	gain, _ := CueVoice(game.CueVitalityGain)
	alert, _ := CueVoice(game.CueAlert)
	success, _ := CueVoice(game.CueSuccess)

	tests := []struct {
		name string
		v    Voice
		at   time.Duration
		want float64
	}{
		{"progress start", progress, 0, 523.25},
		{"progress swept", progress, 100 * time.Millisecond, 1046.5},
		{"progress held", progress, 300 * time.Millisecond, 1046.5},
		{"vitality linear midpoint", gain, 100 * time.Millisecond, 400},
		{"alert on", alert, 50 * time.Millisecond, 880},
		{"alert gap", alert, 120 * time.Millisecond, 0},
		{"alert again", alert, 150 * time.Millisecond, 880},
		{"arpeggio first", success, 50 * time.Millisecond, 523.25},
		{"arpeggio third", success, 250 * time.Millisecond, 783.99},
		{"arpeggio top", success, time.Second, 1046.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.FreqAt(tc.at); math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("FreqAt(%v) = %v, expected %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestVoiceGainAt(t *testing.T) {
	v := Voice{Gain: 0.5, Length: time.Second}
	if got := v.GainAt(0); got != 0.5 {
		t.Errorf("GainAt(0) = %v, expected 0.5", got)
	}
	if got := v.GainAt(500 * time.Millisecond); math.Abs(got-0.5*(1+fadeFloor)/2) > 1e-9 {
		t.Errorf("linear GainAt(0.5s) = %v", got)
	}
	if got := v.GainAt(time.Second); got != 0 {
		t.Errorf("GainAt(end) = %v, expected 0", got)
	}

	v.ExpFade = true
	if got := v.GainAt(500 * time.Millisecond); math.Abs(got-0.5*math.Sqrt(fadeFloor)) > 1e-9 {
		t.Errorf("exponential GainAt(0.5s) = %v, expected %v", got, 0.5*math.Sqrt(fadeFloor))
	}
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		wave  Wave
		phase float64
		want  float64
	}{
		{WaveSine, 0.25, 1},
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveSaw, 0, -1},
		{WaveSaw, 0.75, 0.5},
		{WaveTriangle, 0.5, 1},
		{WaveTriangle, 0, -1},
	}

	for _, tc := range tests {
		if got := tc.wave.sample(tc.phase); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Wave(%d).sample(%v) = %v, expected %v", tc.wave, tc.phase, got, tc.want)
		}
	}
}

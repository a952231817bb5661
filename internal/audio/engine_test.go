package audio

import (
	"errors"
	"testing"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/game"
)

func TestNilOutput(t *testing.T) {
	var out *Output
	if out.Ready() {
		t.Error("Ready() = true for a nil output")
	}
	if err := out.Open(); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Open() = %v, expected ErrNoOutput", err)
	}
	if out.Add(nil) {
		t.Error("Add() = true for a nil output")
	}
	out.Close()
}

func TestEngineWithoutSpeakerIsSilent(t *testing.T) {
	e := NewEngine(nil, config.AudioConfig{Enabled: true, CueVolume: 0.5})

	if err := e.Start(); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Start() = %v, expected ErrNoOutput", err)
	}
	if !e.Silent() {
		t.Error("Silent() = false after a failed start")
	}
	for c := game.Cue(0); c < game.CueCount; c++ {
		if e.Play(c) {
			t.Errorf("Play(%v) = true without a speaker", c)
		}
	}
}

func TestEngineDisabled(t *testing.T) {
	e := NewEngine(nil, config.AudioConfig{Enabled: false})

	if err := e.Start(); err != nil {
		t.Errorf("Start() = %v, expected nil when disabled", err)
	}
	if e.Silent() {
		t.Error("Silent() = true, expected false when never started")
	}
	if e.Play(game.CueProgress) {
		t.Error("Play() = true while disabled")
	}

	e.SetEnabled(true)
	if !e.Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}
	if !e.Silent() {
		t.Error("Silent() = false after enabling without a speaker")
	}
}

func TestEngineVolumeClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.3, 0.3},
		{-1, 0},
		{7, 1},
	}

	e := NewEngine(nil, config.AudioConfig{})
	for _, tc := range tests {
		e.SetVolume(tc.in)
		if got := e.Volume(); got != tc.want {
			t.Errorf("SetVolume(%v); Volume() = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

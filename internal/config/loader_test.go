package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	got := embeddedDefault()
	want := DefaultConfig()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("embedded defaults = %+v, expected %+v", got, want)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.TotalSeconds = 0
	cfg.Player.Size = -1
	cfg.Audio.MusicVolume = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, expected errors")
	}
	for _, want := range []string{"session.total_seconds", "player.size", "audio volumes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, expected it to mention %s", err, want)
		}
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("session:\n  total_seconds: 90\nphases:\n  late:\n    decay: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.TotalSeconds != 90 {
		t.Errorf("TotalSeconds = %v, expected 90", cfg.Session.TotalSeconds)
	}
	if cfg.Phases.Late.Decay != 6 {
		t.Errorf("Late.Decay = %v, expected 6", cfg.Phases.Late.Decay)
	}
	// Untouched settings keep their defaults
	if cfg.Session.WarmupSeconds != 3 {
		t.Errorf("WarmupSeconds = %v, expected 3", cfg.Session.WarmupSeconds)
	}
	if cfg.Phases.Late.SpawnInterval != 0.8 {
		t.Errorf("Late.SpawnInterval = %v, expected 0.8", cfg.Phases.Late.SpawnInterval)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("session: [not, a, map"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed file should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("session:\n  total_seconds: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load() of invalid settings should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAudioEnabled, "false")
	t.Setenv(EnvMusic, "/tmp/track.mp3")
	t.Setenv(EnvMusicVolume, "150")

	cfg := DefaultConfig()
	cfg.Audio.MusicEnabled = false
	ApplyEnv(&cfg)

	if cfg.Audio.Enabled {
		t.Error("Audio.Enabled = true, expected false")
	}
	if cfg.Audio.MusicPath != "/tmp/track.mp3" || !cfg.Audio.MusicEnabled {
		t.Errorf("music = %q/%v, expected /tmp/track.mp3/true", cfg.Audio.MusicPath, cfg.Audio.MusicEnabled)
	}
	if cfg.Audio.MusicVolume != 1 {
		t.Errorf("MusicVolume = %v, expected 1 (clamped)", cfg.Audio.MusicVolume)
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvAudioEnabled, "maybe")
	t.Setenv(EnvMusicVolume, "loud")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if !cfg.Audio.Enabled {
		t.Error("Audio.Enabled changed by unparseable value")
	}
	if cfg.Audio.MusicVolume != 0.8 {
		t.Errorf("MusicVolume = %v, expected 0.8", cfg.Audio.MusicVolume)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/music/a.wav"); got != filepath.Join(home, "music/a.wav") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/a.wav"); got != "/abs/a.wav" {
		t.Errorf("ExpandHome() = %q, expected unchanged", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "DEADLINE_DOTENV_NEW=from-file\nDEADLINE_DOTENV_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("DEADLINE_DOTENV_SET", "from-env")
	t.Setenv("DEADLINE_DOTENV_NEW", "")
	os.Unsetenv("DEADLINE_DOTENV_NEW")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv("DEADLINE_DOTENV_NEW"); got != "from-file" {
		t.Errorf("DEADLINE_DOTENV_NEW = %q, expected from-file", got)
	}
	if got := os.Getenv("DEADLINE_DOTENV_SET"); got != "from-env" {
		t.Errorf("DEADLINE_DOTENV_SET = %q, expected the existing value", got)
	}
}

func TestLoadDotEnvDrivesAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DEADLINE_MUSIC_VOLUME=25\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(EnvMusicVolume, "")
	os.Unsetenv(EnvMusicVolume)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.Audio.MusicVolume != 0.25 {
		t.Errorf("MusicVolume = %v, expected 0.25", cfg.Audio.MusicVolume)
	}
}

func TestDotEnvPaths(t *testing.T) {
	paths := DotEnvPaths()
	if len(paths) == 0 || paths[0] != ".env" {
		t.Errorf("DotEnvPaths() = %v, expected .env first", paths)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides for audio settings.
const (
	EnvAudioEnabled = "DEADLINE_AUDIO_ENABLED"
	EnvMusic        = "DEADLINE_MUSIC"        // path to a wav or mp3 file
	EnvMusicVolume  = "DEADLINE_MUSIC_VOLUME" // 0-100
)

const configFile = "deadline.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.deadline/configs/deadline.yaml ->
// ./configs/deadline.yaml -> embedded default. Files only need to name the
// settings they change; everything else keeps its default.
// Environment overrides are applied last.
func Load(customPath string) (GameConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(customPath string) (GameConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if next, ok := overlay(cfg, userCfgPath); ok {
			return next, nil
		}
	}

	// Try local configs directory
	if next, ok := overlay(cfg, filepath.Join("configs", configFile)); ok {
		return next, nil
	}

	return cfg, nil
}

// overlay parses the file at path over base. Unreadable or malformed files
// are skipped so a broken user file never blocks the game.
func overlay(base GameConfig, path string) (GameConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, false
	}
	return base, true
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded
// defaults if the embed is unusable.
func embeddedDefault() GameConfig {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// ApplyEnv overrides audio settings from the environment.
// Unparseable values are ignored.
func ApplyEnv(cfg *GameConfig) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	if path := os.Getenv(EnvMusic); path != "" {
		cfg.Audio.MusicPath = ExpandHome(path)
		cfg.Audio.MusicEnabled = true
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvMusicVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Audio.MusicVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}
}

// Dir returns the per-user data directory (~/.deadline), or empty if home is
// unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".deadline")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

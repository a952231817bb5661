// Package config provides YAML-based game configuration loading and the
// phase schedule that drives pacing over a session.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains every tunable of a session.
type GameConfig struct {
	Session SessionConfig `yaml:"session"`
	Player  PlayerConfig  `yaml:"player"`
	Items   ItemsConfig   `yaml:"items"`
	Phases  PhasesConfig  `yaml:"phases"`
	Audio   AudioConfig   `yaml:"audio"`
}

// SessionConfig defines the clock of one session.
type SessionConfig struct {
	TotalSeconds  float64 `yaml:"total_seconds"`  // Running time before the deadline passes
	WarmupSeconds float64 `yaml:"warmup_seconds"` // Countdown before the clock starts
	GoSeconds     float64 `yaml:"go_seconds"`     // How long the "GO!" label stays up
	SkipAfter     float64 `yaml:"skip_after"`     // Loading time before a skip is offered
	PopupSeconds  float64 `yaml:"popup_seconds"`  // Floating message lifetime
}

// PlayerConfig defines the avatar.
type PlayerConfig struct {
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	Size           float64 `yaml:"size"`             // Diameter in arena percent
	Smoothing      float64 `yaml:"smoothing"`        // Fraction of the gap closed per tick
	MinSpeedFactor float64 `yaml:"min_speed_factor"` // Speed factor at zero vitality
	LowVitality    float64 `yaml:"low_vitality"`     // Threshold for the warning and rescue spawns
}

// ItemsConfig defines spawned objects.
type ItemsConfig struct {
	BaseSize       float64  `yaml:"base_size"`
	LargeScale     float64  `yaml:"large_scale"`
	Large          []string `yaml:"large"` // Item types drawn at LargeScale
	ObstacleWidth  float64  `yaml:"obstacle_width"`
	ObstacleHeight float64  `yaml:"obstacle_height"`
	ObstacleMin    float64  `yaml:"obstacle_min"`  // Lowest top-left coordinate of an obstacle
	ObstacleSpan   float64  `yaml:"obstacle_span"` // Range added on top of ObstacleMin
	EdgeOffset     float64  `yaml:"edge_offset"`   // Distance outside the arena items start at
	EdgeMin        float64  `yaml:"edge_min"`
	EdgeMax        float64  `yaml:"edge_max"`
	AimMin         float64  `yaml:"aim_min"` // Non-tracking items aim inside [AimMin, AimMax]^2
	AimMax         float64  `yaml:"aim_max"`
	DespawnMin     float64  `yaml:"despawn_min"`
	DespawnMax     float64  `yaml:"despawn_max"`
	ObstaclePush   float64  `yaml:"obstacle_push"`
	RescueItem     string   `yaml:"rescue_item"`
	RescueChance   float64  `yaml:"rescue_chance"`
}

// PhasesConfig splits a session into early, mid and late phases.
type PhasesConfig struct {
	MidAt  float64     `yaml:"mid_at"`  // Running seconds after which mid starts
	LateAt float64     `yaml:"late_at"` // Running seconds after which late starts
	Early  PhaseConfig `yaml:"early"`
	Mid    PhaseConfig `yaml:"mid"`
	Late   PhaseConfig `yaml:"late"`
}

// PhaseConfig defines pacing for one phase.
type PhaseConfig struct {
	Theme         string         `yaml:"theme"`
	Expression    string         `yaml:"expression"` // Default face for the phase
	Decay         float64        `yaml:"decay"`      // Vitality lost per second
	SpawnInterval float64        `yaml:"spawn_interval"`
	ItemSpeed     float64        `yaml:"item_speed"` // Arena percent per second
	Weights       []WeightConfig `yaml:"weights"`
	Tracking      []string       `yaml:"tracking"` // Item types that aim at the player
}

// WeightConfig is one row of a spawn table.
type WeightConfig struct {
	Item   string  `yaml:"item"`
	Weight float64 `yaml:"weight"`
}

// AudioConfig defines cue and music settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CueVolume    float64 `yaml:"cue_volume"`
	MusicEnabled bool    `yaml:"music_enabled"`
	MusicVolume  float64 `yaml:"music_volume"`
	MusicPath    string  `yaml:"music_path"`
}

// Validate reports every setting that would break a session.
func (c GameConfig) Validate() error {
	var errs []error

	if c.Session.TotalSeconds <= 0 {
		errs = append(errs, errors.New("session.total_seconds must be positive"))
	}
	if c.Session.WarmupSeconds < 0 || c.Session.SkipAfter < 0 || c.Session.PopupSeconds < 0 {
		errs = append(errs, errors.New("session timers must not be negative"))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, errors.New("player.size must be positive"))
	}
	if c.Player.Smoothing <= 0 || c.Player.Smoothing > 1 {
		errs = append(errs, errors.New("player.smoothing must be in (0, 1]"))
	}
	if c.Phases.LateAt < c.Phases.MidAt {
		errs = append(errs, errors.New("phases.late_at must not precede phases.mid_at"))
	}
	if c.Items.DespawnMin >= c.Items.DespawnMax {
		errs = append(errs, errors.New("items.despawn_min must be below items.despawn_max"))
	}

	for name, p := range map[string]PhaseConfig{"early": c.Phases.Early, "mid": c.Phases.Mid, "late": c.Phases.Late} {
		if p.SpawnInterval <= 0 {
			errs = append(errs, fmt.Errorf("phases.%s.spawn_interval must be positive", name))
		}
		if p.Decay < 0 {
			errs = append(errs, fmt.Errorf("phases.%s.decay must not be negative", name))
		}
		if len(p.Weights) == 0 {
			errs = append(errs, fmt.Errorf("phases.%s.weights must not be empty", name))
		}
		for _, w := range p.Weights {
			if w.Weight <= 0 {
				errs = append(errs, fmt.Errorf("phases.%s.weights: %s has non-positive weight", name, w.Item))
			}
		}
	}

	if c.Audio.CueVolume < 0 || c.Audio.CueVolume > 1 || c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		errs = append(errs, errors.New("audio volumes must be in [0, 1]"))
	}

	return errors.Join(errs...)
}

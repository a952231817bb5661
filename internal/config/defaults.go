package config

import (
	_ "embed"
)

//go:embed defaults/deadline.yaml
var defaultGameYAML []byte

// DefaultConfig returns the built-in game configuration.
// It mirrors defaults/deadline.yaml and is used when the embedded file
// cannot be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		Session: SessionConfig{
			TotalSeconds:  60,
			WarmupSeconds: 3,
			GoSeconds:     1,
			SkipAfter:     3,
			PopupSeconds:  1.5,
		},
		Player: PlayerConfig{
			StartX:         50,
			StartY:         50,
			Size:           6,
			Smoothing:      0.1,
			MinSpeedFactor: 0.2,
			LowVitality:    30,
		},
		Items: ItemsConfig{
			BaseSize:       4,
			LargeScale:     1.5,
			Large:          []string{"dinner", "phone", "search"},
			ObstacleWidth:  25,
			ObstacleHeight: 15,
			ObstacleMin:    10,
			ObstacleSpan:   80,
			EdgeOffset:     10,
			EdgeMin:        5,
			EdgeMax:        95,
			AimMin:         30,
			AimMax:         70,
			DespawnMin:     -20,
			DespawnMax:     120,
			ObstaclePush:   2,
			RescueItem:     "snack",
			RescueChance:   0.4,
		},
		Phases: PhasesConfig{
			MidAt:  20,
			LateAt: 40,
			Early: PhaseConfig{
				Theme:         "day",
				Expression:    "calm",
				Decay:         1.5,
				SpawnInterval: 2.0,
				ItemSpeed:     12,
				Weights: []WeightConfig{
					{Item: "material", Weight: 0.4},
					{Item: "phone", Weight: 0.3},
					{Item: "snack", Weight: 0.3},
				},
			},
			Mid: PhaseConfig{
				Theme:         "dusk",
				Expression:    "sleepy",
				Decay:         3.0,
				SpawnInterval: 1.5,
				ItemSpeed:     24,
				Weights: []WeightConfig{
					{Item: "dinner", Weight: 0.2},
					{Item: "phone", Weight: 0.2},
					{Item: "material", Weight: 0.3},
					{Item: "social", Weight: 0.3},
				},
				Tracking: []string{"phone", "social"},
			},
			Late: PhaseConfig{
				Theme:         "night",
				Expression:    "panic",
				Decay:         4.5,
				SpawnInterval: 0.8,
				ItemSpeed:     36,
				Weights: []WeightConfig{
					{Item: "coffee", Weight: 0.45},
					{Item: "search", Weight: 0.25},
					{Item: "obstacle", Weight: 0.3},
				},
			},
		},
		Audio: AudioConfig{
			Enabled:      true,
			CueVolume:    0.5,
			MusicEnabled: true,
			MusicVolume:  0.8,
		},
	}
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/typemaster.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in TypeMaster configuration.
func DefaultConfig() Config {
	return Config{
		Difficulty: DifficultyEasy,
		TickRate:   60,
		Field: FieldConfig{
			Margin:      1,
			FloorOffset: 3,
		},
		Metrics: MetricsConfig{
			Window: 20 * time.Second,
		},
		Words: WordsConfig{
			Path:      "",
			Reshuffle: false,
		},
	}
}

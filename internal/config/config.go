// Package config provides the difficulty schedule and YAML/TOML-based
// settings loading for TypeMaster.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Difficulty selects which row of the schedule table is consulted.
// The set is closed: adding a level requires a new schedule table in difficulty.go.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// AllDifficulties lists every level in cycle order.
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// String returns the display name of the level.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Next returns the following level, wrapping Hard back to Easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyNormal
	case DifficultyNormal:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// ParseDifficulty converts a case-insensitive name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyEasy, fmt.Errorf("%w %q (want easy, normal or hard)", ErrUnknownDifficulty, s)
	}
}

// Key returns the lowercase name used in settings files and storage.
func (d Difficulty) Key() string {
	return strings.ToLower(d.String())
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so the level can be
// read from YAML, TOML and environment variables by name.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Config contains all settings for a TypeMaster session.
type Config struct {
	Difficulty Difficulty    `yaml:"difficulty" toml:"difficulty" env:"TYPEMASTER_DIFFICULTY"`
	TickRate   int           `yaml:"tick_rate" toml:"tick_rate" env:"TYPEMASTER_FPS"`
	Field      FieldConfig   `yaml:"field" toml:"field"`
	Metrics    MetricsConfig `yaml:"metrics" toml:"metrics"`
	Words      WordsConfig   `yaml:"words" toml:"words"`
}

// FieldConfig defines play field geometry that the shell derives from the terminal.
type FieldConfig struct {
	Margin      int `yaml:"margin" toml:"margin"`             // Minimum columns between a word and the side border
	FloorOffset int `yaml:"floor_offset" toml:"floor_offset"` // Rows between the floor line and the bottom edge
}

// MetricsConfig defines the speed readout cadence.
type MetricsConfig struct {
	Window time.Duration `yaml:"window" toml:"window" env:"TYPEMASTER_METRICS_WINDOW"`
}

// WordsConfig defines where the word pool comes from.
type WordsConfig struct {
	Path      string `yaml:"path" toml:"path" env:"TYPEMASTER_WORDS"`
	Reshuffle bool   `yaml:"reshuffle" toml:"reshuffle" env:"TYPEMASTER_RESHUFFLE"` // Reshuffle when the pool wraps instead of repeating
}

// Validate checks that the settings can drive a session.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Field.Margin < 0 {
		return fmt.Errorf("config: field.margin must not be negative, got %d", c.Field.Margin)
	}
	if c.Field.FloorOffset < 1 {
		return fmt.Errorf("config: field.floor_offset must be at least 1, got %d", c.Field.FloorOffset)
	}
	if c.Metrics.Window < time.Second {
		return fmt.Errorf("config: metrics.window must be at least 1s, got %s", c.Metrics.Window)
	}
	if time.Minute%c.Metrics.Window != 0 {
		return fmt.Errorf("config: metrics.window must divide one minute evenly, got %s", c.Metrics.Window)
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
	default:
		return fmt.Errorf("%w %d", ErrUnknownDifficulty, int(c.Difficulty))
	}
	return nil
}

// FloorRow returns the row at which a descending word ends the session
// for a field of the given height.
func (c Config) FloorRow(height int) int {
	return height - c.Field.FloorOffset
}

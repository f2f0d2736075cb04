package config

import (
	"errors"
	"fmt"
)

// ErrInvalidControl is returned for a control pair that cannot drive the frame clock.
var ErrInvalidControl = errors.New("config: invalid control pair")

// ControlPair holds the two knobs the difficulty curve turns.
type ControlPair struct {
	FallInterval int // Frames between row advances
	RowModulus   int // Head row periodicity that gates extra spawns
}

// String formats the pair as (fall, modulus).
func (p ControlPair) String() string {
	return fmt.Sprintf("(%d,%d)", p.FallInterval, p.RowModulus)
}

// Validate reports whether the pair is usable; RowModulus is used as a modulus.
func (p ControlPair) Validate() error {
	if p.FallInterval <= 0 || p.RowModulus <= 0 {
		return fmt.Errorf("%w %s", ErrInvalidControl, p)
	}
	return nil
}

// Milestones are the typed-character counts at which the control pair is re-evaluated.
var Milestones = []int{0, 100, 200, 300, 500, 800, 1500, 2000, 3000, 4000, 5000}

// FastestControl is the asymptotic maximum difficulty, used for any
// (level, milestone) combination the tables do not list.
var FastestControl = ControlPair{FallInterval: 8, RowModulus: 3}

var (
	easySchedule = map[int]ControlPair{
		0: {50, 5}, 100: {45, 5}, 200: {40, 5}, 300: {40, 4}, 500: {35, 4},
		800: {30, 3}, 1500: {25, 3}, 2000: {20, 3}, 3000: {15, 3}, 4000: {14, 3}, 5000: {12, 3},
	}
	normalSchedule = map[int]ControlPair{
		0: {40, 5}, 100: {35, 5}, 200: {30, 5}, 300: {25, 4}, 500: {20, 4},
		800: {20, 3}, 1500: {18, 3}, 2000: {16, 3}, 3000: {14, 3}, 4000: {12, 3}, 5000: {10, 3},
	}
	hardSchedule = map[int]ControlPair{
		0: {30, 5}, 100: {25, 5}, 200: {20, 5}, 300: {20, 4}, 500: {15, 4},
		800: {15, 3}, 1500: {14, 3}, 2000: {12, 3}, 3000: {10, 3}, 4000: {9, 3}, 5000: {8, 3},
	}
)

// IsMilestone reports whether typedChars is one of the schedule thresholds.
func IsMilestone(typedChars int) bool {
	for _, m := range Milestones {
		if m == typedChars {
			return true
		}
	}
	return false
}

// scheduleFor returns the table for a level, or nil for levels outside the closed set.
func scheduleFor(level Difficulty) map[int]ControlPair {
	switch level {
	case DifficultyEasy:
		return easySchedule
	case DifficultyNormal:
		return normalSchedule
	case DifficultyHard:
		return hardSchedule
	default:
		return nil
	}
}

// Schedule looks up the control pair for a level at a typed-character count.
// The second result is false when typedChars is not a milestone, in which case
// the caller keeps its current pair. Unlisted combinations resolve to FastestControl.
func Schedule(level Difficulty, typedChars int) (ControlPair, bool) {
	if !IsMilestone(typedChars) {
		return ControlPair{}, false
	}
	pair, ok := scheduleFor(level)[typedChars]
	if !ok {
		return FastestControl, true
	}
	return pair, true
}

// InitialControl returns the pair installed at session start for a level.
func InitialControl(level Difficulty) ControlPair {
	pair, _ := Schedule(level, 0)
	return pair
}

// Package typemaster implements the falling-word typing game simulation.
// Words spawn at the top of the field and fall at a rate set by the
// difficulty schedule; typing a word's leading character consumes it.
// The engine is driven one tick at a time and never touches the terminal
// or the filesystem.
package typemaster

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/core"
)

// Configuration errors returned by New.
var (
	ErrEmptyWordList  = errors.New("typemaster: word list is empty")
	ErrEmptyWord      = errors.New("typemaster: word list contains an empty word")
	ErrFieldTooNarrow = errors.New("typemaster: play field is narrower than the widest word")
	ErrFieldTooShort  = errors.New("typemaster: floor row leaves no room for words to fall")
	ErrNegativeMargin = errors.New("typemaster: margin must not be negative")
	ErrMetricsWindow  = errors.New("typemaster: metrics window must be at least 1s and divide one minute evenly")
)

// State is the engine lifecycle state.
type State int

const (
	StateRunning State = iota
	StateEnded
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// EndReason explains why a session ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonPlayerQuit
	ReasonWordReachedFloor
)

// String returns a short label, also used as the stored end reason.
func (r EndReason) String() string {
	switch r {
	case ReasonPlayerQuit:
		return "quit"
	case ReasonWordReachedFloor:
		return "floor"
	default:
		return "none"
	}
}

// Options configures a session.
type Options struct {
	Words         []string
	Difficulty    config.Difficulty
	FieldWidth    int           // Columns including both borders
	FloorRow      int           // Row at which the head word ends the session
	Margin        int           // Minimum columns between a word and the side edges
	MetricsWindow time.Duration // Speed readout cadence, DefaultMetricsWindow if zero
	Reshuffle     bool          // Reshuffle the pool on wraparound instead of repeating it
	Seed          int64
}

// OptionsFrom builds session options from loaded settings and the runtime screen.
func OptionsFrom(cfg config.Config, rt core.RuntimeConfig, words []string) Options {
	return Options{
		Words:         words,
		Difficulty:    cfg.Difficulty,
		FieldWidth:    rt.ScreenW,
		FloorRow:      cfg.FloorRow(rt.ScreenH),
		Margin:        cfg.Field.Margin,
		MetricsWindow: cfg.Metrics.Window,
		Reshuffle:     cfg.Words.Reshuffle,
		Seed:          rt.Seed,
	}
}

// HeadView describes the word the player is typing.
type HeadView struct {
	Char rune // Next expected character
	X, Y int  // Position of that character
}

// Snapshot is the per-tick view handed to the shell for rendering and for
// updating the highscore it owns.
type Snapshot struct {
	State      State
	Reason     EndReason
	Difficulty config.Difficulty
	Control    config.ControlPair
	TypedChars int
	CPM        int
	WPM        int
	Words      []Word
	Head       HeadView
	HasHead    bool
}

// Running reports whether the session is still in progress.
func (s Snapshot) Running() bool {
	return s.State == StateRunning
}

// Engine owns one play session. It is single-threaded: the caller's loop
// drives it through Tick and discards it once it has ended.
type Engine struct {
	supply   *WordSupply
	queue    *ActiveQueue
	clock    FrameClock
	metrics  *MetricsTracker
	level    config.Difficulty
	control  config.ControlPair
	floorRow int
	state    State
	reason   EndReason
}

// New validates the options and starts a session with the first word spawned.
func New(opts Options) (*Engine, error) {
	if opts.Margin < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeMargin, opts.Margin)
	}
	if w := opts.MetricsWindow; w != 0 && (w < time.Second || time.Minute%w != 0) {
		return nil, fmt.Errorf("%w: got %s", ErrMetricsWindow, w)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	supply, err := NewWordSupply(opts.Words, rng, opts.Reshuffle)
	if err != nil {
		return nil, err
	}

	queue := NewActiveQueue(rng, opts.FieldWidth, opts.Margin)
	if widest := supply.Widest(); !queue.Fits(widest) {
		return nil, fmt.Errorf("%w: width %d, widest word %q, margin %d",
			ErrFieldTooNarrow, opts.FieldWidth, widest, opts.Margin)
	}
	if opts.FloorRow <= SpawnRow {
		return nil, fmt.Errorf("%w: floor row %d", ErrFieldTooShort, opts.FloorRow)
	}

	control := config.InitialControl(opts.Difficulty)
	if err := control.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		supply:   supply,
		queue:    queue,
		metrics:  NewMetricsTracker(opts.MetricsWindow),
		level:    opts.Difficulty,
		control:  control,
		floorRow: opts.FloorRow,
		state:    StateRunning,
	}
	e.spawn()
	return e, nil
}

// spawn places the next word from the supply.
func (e *Engine) spawn() {
	e.queue.Spawn(e.supply.Next())
}

// Tick advances the session by one frame.
// dt is the wall time since the previous tick. The input carries at most one
// typed character and the quit intent.
func (e *Engine) Tick(in core.InputFrame, dt time.Duration) Snapshot {
	if e.state == StateEnded {
		return e.Snapshot()
	}

	if in.Has(core.ActionQuit) {
		e.end(ReasonPlayerQuit)
		return e.Snapshot()
	}

	// 1. Speed readout window
	e.metrics.Advance(dt)

	// 2. Frame clock and row advance
	due := e.clock.Due(e.control.FallInterval)
	if due {
		e.queue.Advance()
	}

	// 3. Spawn triggers. Rows only change on a due tick, so the modulus
	// branch fires at most once per row the head passes through.
	if head, ok := e.queue.Head(); !ok {
		e.spawn()
	} else if due && head.Y%e.control.RowModulus == 0 {
		e.spawn()
	}
	e.clock.Step(e.control.FallInterval)

	// 4. Keystroke
	if r, ok := in.Typed(); ok {
		e.typeChar(r)
	}

	// 5. Floor detection
	if e.queue.HeadPastFloor(e.floorRow) {
		e.end(ReasonWordReachedFloor)
	}

	return e.Snapshot()
}

// typeChar applies one keystroke to the head word.
func (e *Engine) typeChar(r rune) {
	consumed, depleted := e.queue.Consume(r)
	if !consumed {
		return
	}

	e.metrics.Record()
	if depleted {
		e.spawn()
	}

	if pair, ok := config.Schedule(e.level, e.metrics.TypedChars()); ok {
		e.control = pair
	}
}

// Quit ends the session on behalf of the player.
func (e *Engine) Quit() Snapshot {
	if e.state == StateRunning {
		e.end(ReasonPlayerQuit)
	}
	return e.Snapshot()
}

func (e *Engine) end(reason EndReason) {
	e.state = StateEnded
	e.reason = reason
}

// Snapshot returns the current view without advancing the session.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		State:      e.state,
		Reason:     e.reason,
		Difficulty: e.level,
		Control:    e.control,
		TypedChars: e.metrics.TypedChars(),
		CPM:        e.metrics.CPM(),
		WPM:        e.metrics.WPM(),
		Words:      e.queue.Words(),
	}

	if head, ok := e.queue.Head(); ok {
		if r, ok := head.Leading(); ok {
			snap.Head = HeadView{Char: r, X: head.X, Y: head.Y}
			snap.HasHead = true
		}
	}
	return snap
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Control returns the installed control pair.
func (e *Engine) Control() config.ControlPair {
	return e.control
}

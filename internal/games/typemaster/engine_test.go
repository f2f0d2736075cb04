package typemaster

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/core"
)

const frame = time.Second / 60

func testOptions(words ...string) Options {
	return Options{
		Words:         words,
		Difficulty:    config.DifficultyEasy,
		FieldWidth:    40,
		FloorRow:      27,
		Margin:        1,
		MetricsWindow: 20 * time.Second,
		Seed:          12345,
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func typed(r rune) core.InputFrame {
	in := core.NewInputFrame()
	in.Type(r)
	return in
}

// typeHead feeds the head word's next expected character.
func typeHead(t *testing.T, e *Engine) Snapshot {
	t.Helper()
	snap := e.Snapshot()
	if !snap.HasHead {
		t.Fatal("no head word while running")
	}
	return e.Tick(typed(snap.Head.Char), frame)
}

func TestNewRejectsConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"empty list", func(o *Options) { o.Words = nil }, ErrEmptyWordList},
		{"empty word", func(o *Options) { o.Words = []string{"cat", ""} }, ErrEmptyWord},
		{"narrow field", func(o *Options) { o.FieldWidth = 4 }, ErrFieldTooNarrow},
		{"short field", func(o *Options) { o.FloorRow = 1 }, ErrFieldTooShort},
		{"negative margin", func(o *Options) { o.Margin = -3 }, ErrNegativeMargin},
		{"uneven window", func(o *Options) { o.MetricsWindow = 45 * time.Second }, ErrMetricsWindow},
		{"window over a minute", func(o *Options) { o.MetricsWindow = 2 * time.Minute }, ErrMetricsWindow},
		{"sub-second window", func(o *Options) { o.MetricsWindow = time.Second / 2 }, ErrMetricsWindow},
		{"negative window", func(o *Options) { o.MetricsWindow = -time.Second }, ErrMetricsWindow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions("cat", "dog")
			tc.mutate(&opts)
			if _, err := New(opts); !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewAcceptsBoundaryOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"default window", func(o *Options) { o.MetricsWindow = 0 }},
		{"one minute window", func(o *Options) { o.MetricsWindow = time.Minute }},
		{"one second window", func(o *Options) { o.MetricsWindow = time.Second }},
		{"zero margin", func(o *Options) { o.Margin = 0 }},
		{"exact fit", func(o *Options) { o.FieldWidth = 5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions("cat", "dog")
			tc.mutate(&opts)
			e, err := New(opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			for _, w := range e.Snapshot().Words {
				if w.X < opts.Margin || w.X+3 > opts.FieldWidth-opts.Margin {
					t.Errorf("word %q at x=%d outside the margins of a %d-wide field", w.Text, w.X, opts.FieldWidth)
				}
			}
		})
	}
}

func TestNewSpawnsFirstWord(t *testing.T) {
	e := newTestEngine(t, testOptions("cat", "dog"))
	snap := e.Snapshot()

	if !snap.Running() {
		t.Fatal("new engine should be running")
	}
	if len(snap.Words) != 1 {
		t.Fatalf("expected one word at session start, got %d", len(snap.Words))
	}
	w := snap.Words[0]
	if w.X < 1 || w.X > 36 || w.Y != 1 {
		t.Errorf("first word at (%d, %d), expected x in [1,36], y=1", w.X, w.Y)
	}
	if snap.Control != (config.ControlPair{FallInterval: 50, RowModulus: 5}) {
		t.Errorf("initial control = %s, expected (50,5)", snap.Control)
	}
}

func TestTypingWholeWordSpawnsNext(t *testing.T) {
	e := newTestEngine(t, testOptions("cat", "dog"))
	first := e.Snapshot().Words[0].Text

	var snap Snapshot
	for range first {
		snap = typeHead(t, e)
	}

	if snap.TypedChars != 3 {
		t.Errorf("TypedChars = %d, expected 3", snap.TypedChars)
	}
	if len(snap.Words) != 1 {
		t.Fatalf("expected exactly the replacement word, got %v", snap.Words)
	}
	if snap.Words[0].Text == first || snap.Words[0].Y != SpawnRow {
		t.Errorf("replacement = %+v, expected the other word at the spawn row", snap.Words[0])
	}
}

func TestWrongKeystrokeIsIgnored(t *testing.T) {
	e := newTestEngine(t, testOptions("cat"))

	snap := e.Tick(typed('z'), frame)
	if snap.TypedChars != 0 {
		t.Errorf("TypedChars = %d after wrong key, expected 0", snap.TypedChars)
	}
	if snap.Words[0].Text != "cat" {
		t.Errorf("head changed after wrong key: %q", snap.Words[0].Text)
	}
}

func TestTypedCharsIncrementsByOne(t *testing.T) {
	e := newTestEngine(t, testOptions("alpha", "beta", "gamma"))

	prev := 0
	for i := 0; i < 200; i++ {
		var snap Snapshot
		if i%4 == 3 {
			snap = e.Tick(typed('#'), frame)
		} else {
			snap = typeHead(t, e)
		}
		want := prev
		if i%4 != 3 {
			want++
		}
		if snap.TypedChars != want {
			t.Fatalf("tick %d: TypedChars = %d, expected %d", i, snap.TypedChars, want)
		}
		prev = snap.TypedChars
	}
}

func TestControlSwitchesAtMilestone(t *testing.T) {
	e := newTestEngine(t, testOptions("cat", "dog"))

	for i := 0; i < 99; i++ {
		typeHead(t, e)
	}
	if got := e.Control(); got != (config.ControlPair{FallInterval: 50, RowModulus: 5}) {
		t.Fatalf("control at 99 = %s, expected (50,5)", got)
	}

	snap := typeHead(t, e)
	if snap.TypedChars != 100 {
		t.Fatalf("setup: TypedChars = %d", snap.TypedChars)
	}
	if snap.Control != (config.ControlPair{FallInterval: 45, RowModulus: 5}) {
		t.Errorf("control at 100 = %s, expected (45,5)", snap.Control)
	}

	// Between milestones the pair is retained
	for i := 0; i < 50; i++ {
		snap = typeHead(t, e)
	}
	if snap.Control != (config.ControlPair{FallInterval: 45, RowModulus: 5}) {
		t.Errorf("control at 150 = %s, expected (45,5)", snap.Control)
	}
}

func TestHeadNeverEmptyWhileRunning(t *testing.T) {
	opts := testOptions("a", "be", "sea", "deep")
	opts.FloorRow = 1000
	e := newTestEngine(t, opts)

	for i := 0; i < 2000; i++ {
		var snap Snapshot
		if i%2 == 0 {
			snap = typeHead(t, e)
		} else {
			snap = e.Tick(core.NewInputFrame(), frame)
		}
		if snap.Running() && (!snap.HasHead || len(snap.Words) == 0 || snap.Words[0].Text == "") {
			t.Fatalf("tick %d: empty head while running", i)
		}
	}
}

func TestModulusSpawnFiresOncePerRow(t *testing.T) {
	opts := testOptions("cat", "dog")
	opts.FloorRow = 100
	e := newTestEngine(t, opts)

	counts := make(map[int]int) // head row -> queue length observed
	idle := core.NewInputFrame()
	for i := 0; i < 51*11; i++ {
		snap := e.Tick(idle, frame)
		head := snap.Words[0]
		if n, ok := counts[head.Y]; !ok || len(snap.Words) > n {
			counts[head.Y] = len(snap.Words)
		}
	}

	// One extra word each time the head reaches a multiple of 5, never at start
	expected := map[int]int{1: 1, 2: 1, 4: 1, 5: 2, 6: 2, 9: 2, 10: 3, 11: 3}
	for row, want := range expected {
		if counts[row] != want {
			t.Errorf("at head row %d: %d words, expected %d", row, counts[row], want)
		}
	}
}

func TestWordReachingFloorEndsSession(t *testing.T) {
	opts := testOptions("cat")
	opts.FloorRow = 3
	e := newTestEngine(t, opts)

	idle := core.NewInputFrame()
	var snap Snapshot
	ticks := 0
	for snap = e.Snapshot(); snap.Running() && ticks < 1000; ticks++ {
		snap = e.Tick(idle, frame)
	}

	if snap.State != StateEnded || snap.Reason != ReasonWordReachedFloor {
		t.Fatalf("state = %s/%s, expected Ended/floor", snap.State, snap.Reason)
	}
	// Two row advances at 51 ticks each
	if ticks != 102 {
		t.Errorf("ended after %d ticks, expected 102", ticks)
	}

	// No transition out of Ended
	after := e.Tick(typed('c'), frame)
	if after.State != StateEnded || after.TypedChars != snap.TypedChars {
		t.Error("ended engine must ignore further ticks")
	}
}

func TestQuitEndsImmediately(t *testing.T) {
	e := newTestEngine(t, testOptions("cat"))
	typeHead(t, e)

	in := typed('a')
	in.Set(core.ActionQuit)
	snap := e.Tick(in, frame)

	if snap.State != StateEnded || snap.Reason != ReasonPlayerQuit {
		t.Fatalf("state = %s/%s, expected Ended/quit", snap.State, snap.Reason)
	}
	if snap.TypedChars != 1 {
		t.Errorf("keystroke in the quit tick should not count, TypedChars = %d", snap.TypedChars)
	}

	if e.Quit().Reason != ReasonPlayerQuit {
		t.Error("Quit on an ended engine should keep the first end reason")
	}
}

func TestSpeedReadoutThroughTick(t *testing.T) {
	opts := testOptions("cat", "dog")
	opts.FloorRow = 1000
	e := newTestEngine(t, opts)

	for i := 0; i < 40; i++ {
		typeHead(t, e)
	}
	snap := e.Tick(core.NewInputFrame(), 20*time.Second-40*frame)
	if snap.CPM != 120 || snap.WPM != 24 {
		t.Errorf("cpm/wpm = %d/%d, expected 120/24", snap.CPM, snap.WPM)
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, testOptions("alpha", "beta", "gamma", "delta"))
		var snap Snapshot
		for i := 0; i < 300 && e.State() == StateRunning; i++ {
			if i%3 == 0 {
				snap = typeHead(t, e)
			} else {
				snap = e.Tick(core.NewInputFrame(), frame)
			}
		}
		return snap
	}

	a, b := run(), run()
	if a.TypedChars != b.TypedChars || len(a.Words) != len(b.Words) {
		t.Fatalf("runs diverged: %d/%d chars, %d/%d words", a.TypedChars, b.TypedChars, len(a.Words), len(b.Words))
	}
	for i := range a.Words {
		if a.Words[i] != b.Words[i] {
			t.Errorf("word %d differs: %+v vs %+v", i, a.Words[i], b.Words[i])
		}
	}
}

func TestOptionsFrom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Difficulty = config.DifficultyHard
	rt := core.RuntimeConfig{ScreenW: 90, ScreenH: 30, TickRate: 60, Seed: 9}

	opts := OptionsFrom(cfg, rt, []string{"cat"})
	if opts.FieldWidth != 90 || opts.FloorRow != 27 || opts.Margin != 1 {
		t.Errorf("geometry = %d/%d/%d", opts.FieldWidth, opts.FloorRow, opts.Margin)
	}
	if opts.Difficulty != config.DifficultyHard || opts.Seed != 9 {
		t.Errorf("unexpected options %+v", opts)
	}
}

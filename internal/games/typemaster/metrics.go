package typemaster

import "time"

// DefaultMetricsWindow is how often the speed readout is recomputed.
const DefaultMetricsWindow = 20 * time.Second

// charsPerWord is the conventional word length for wpm.
const charsPerWord = 5

// MetricsTracker counts typed characters and derives a stepped speed readout.
// cpm and wpm only change when a full window has elapsed.
type MetricsTracker struct {
	window      time.Duration
	elapsed     time.Duration
	typedChars  int
	windowStart int
	cpm         int
	wpm         int
}

// NewMetricsTracker creates a tracker with the given window.
// Non-positive windows fall back to DefaultMetricsWindow.
func NewMetricsTracker(window time.Duration) *MetricsTracker {
	if window <= 0 {
		window = DefaultMetricsWindow
	}
	return &MetricsTracker{window: window}
}

// Record counts one correctly typed character.
func (m *MetricsTracker) Record() {
	m.typedChars++
}

// Advance adds elapsed wall time to the current window. When the window is
// full it recomputes cpm/wpm, restarts the window and returns true.
func (m *MetricsTracker) Advance(dt time.Duration) bool {
	if dt > 0 {
		m.elapsed += dt
	}
	if m.elapsed < m.window {
		return false
	}

	windowsPerMinute := int(time.Minute / m.window)
	m.cpm = (m.typedChars - m.windowStart) * windowsPerMinute
	m.wpm = m.cpm / charsPerWord
	m.windowStart = m.typedChars
	m.elapsed = 0
	return true
}

// TypedChars returns the cumulative count for the session.
func (m *MetricsTracker) TypedChars() int { return m.typedChars }

// CPM returns characters per minute from the last full window.
func (m *MetricsTracker) CPM() int { return m.cpm }

// WPM returns words per minute from the last full window.
func (m *MetricsTracker) WPM() int { return m.wpm }

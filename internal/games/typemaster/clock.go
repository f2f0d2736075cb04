package typemaster

// FrameClock counts ticks from 0 to the fall interval and wraps.
// Words move down on the tick where the count equals the interval.
type FrameClock struct {
	frame int
}

// Due reports whether this tick moves words for the given interval.
func (c *FrameClock) Due(fallInterval int) bool {
	return c.frame == fallInterval
}

// Step advances the clock, wrapping to zero once it reaches the interval.
// A shrinking interval that leaves the count above it wraps on the next step.
func (c *FrameClock) Step(fallInterval int) {
	if c.frame >= fallInterval {
		c.frame = 0
		return
	}
	c.frame++
}

// Frame returns the current count.
func (c *FrameClock) Frame() int {
	return c.frame
}

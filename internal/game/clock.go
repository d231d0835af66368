package game

// Clock is the start/stop handle of the one-second ticker. Every acquisition
// gets a new generation; ticks scheduled under an older generation are stale
// and must be dropped.
type Clock struct {
	gen     uint64
	running bool
}

// Running reports whether a ticker currently holds the clock.
func (c *Clock) Running() bool {
	return c.running
}

// Generation returns the current generation.
func (c *Clock) Generation() uint64 {
	return c.gen
}

// Owns reports whether a tick scheduled under gen is still current.
func (c *Clock) Owns(gen uint64) bool {
	return c.running && gen == c.gen
}

func (c *Clock) acquire() uint64 {
	c.gen++
	c.running = true
	return c.gen
}

func (c *Clock) release() {
	if !c.running {
		return
	}
	c.running = false
	c.gen++
}

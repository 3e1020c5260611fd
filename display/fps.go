package display

import "time"

// FPSCounter measures the time between frames.
type FPSCounter struct {
	now   func() time.Time
	last  time.Time
	delta time.Duration
	fps   float64
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{now: time.Now}
}

// Tick marks a frame. The first call only starts the clock.
func (c *FPSCounter) Tick() {
	t := c.now()
	if !c.last.IsZero() {
		c.delta = t.Sub(c.last)
		if c.delta > 0 {
			c.fps = 1 / c.delta.Seconds()
		}
	}
	c.last = t
}

// Delta is the duration of the last frame in seconds.
func (c *FPSCounter) Delta() float64 { return c.delta.Seconds() }

func (c *FPSCounter) FPS() float64 { return c.fps }

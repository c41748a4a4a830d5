package hal

import "time"

// FrameClock measures the time between frames. It is not safe for
// concurrent use; each drawing goroutine owns one.
type FrameClock struct {
	now func() time.Time

	first  time.Time
	last   time.Time
	frames uint64
	dt     time.Duration
	fps    float64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{now: time.Now}
}

// Tick marks the start of a frame and returns the time since the previous
// one. The first call returns zero.
func (c *FrameClock) Tick() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.first, c.last = now, now
		c.frames = 1
		return 0
	}
	c.dt = now.Sub(c.last)
	c.last = now
	c.frames++

	if c.dt > 0 {
		inst := float64(time.Second) / float64(c.dt)
		if c.fps == 0 {
			c.fps = inst
		} else {
			c.fps += (inst - c.fps) / 8
		}
	}
	return c.dt
}

// Delta is the duration returned by the last Tick.
func (c *FrameClock) Delta() time.Duration { return c.dt }

// FPS is a smoothed frames-per-second estimate.
func (c *FrameClock) FPS() float64 { return c.fps }

// Frames counts Tick calls.
func (c *FrameClock) Frames() uint64 { return c.frames }

// Elapsed is the time from the first Tick to the last.
func (c *FrameClock) Elapsed() time.Duration { return c.last.Sub(c.first) }

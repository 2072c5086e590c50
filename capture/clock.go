package capture

import "time"

// Clock supplies real (unpaused) time to the refresh task.
type Clock interface {
	Now() time.Time
}

// RealClock reads the monotonic system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

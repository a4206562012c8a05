package clock

import (
	"time"

	"lendvault/core"
)

type systemClock struct{}

// System wall clock
func System() core.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed clock stopped at t, settable
type Fixed struct {
	T time.Time
}

// Now returns the fixed time
func (c *Fixed) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

package testutil

import (
	"sync"
	"time"
)

// DefaultEpoch is the first instant a FixedClock returns by default.
var DefaultEpoch = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

// FixedClock is a deterministic clock for tests.
//
// Each call to Now returns the previous instant plus one second, so REV
// stamps are predictable and strictly increasing.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	start time.Time
	ticks int64
}

// NewFixedClock creates a clock whose first Now is start.
// A zero start uses DefaultEpoch.
func NewFixedClock(start time.Time) *FixedClock {
	if start.IsZero() {
		start = DefaultEpoch
	}
	return &FixedClock{start: start.UTC()}
}

// Now returns the next instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.ticks) * time.Second)
	c.ticks++
	return t
}

// Calls returns how many times Now has been called.
func (c *FixedClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset rewinds the clock so the next Now returns the start instant again.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}

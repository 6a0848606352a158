// Package clock provides the timestamp service used across the quantum core.
//
// Stamps are formatted UTC wall-clock strings and are guaranteed to be
// monotonically non-decreasing for ordering purposes, even if the underlying
// system clock steps backwards.
package clock

import (
	"sync"
	"time"
)

// StampFormat is the wall-clock format used in audit records and state metadata.
const StampFormat = "2006-01-02 15:04:05"

// Clock provides timestamps to the quantum components. Constructed once at
// process start and passed by reference into each component.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
	// Stamp returns a formatted timestamp, monotonically non-decreasing
	// across calls on the same instance.
	Stamp() string
}

// SystemClock is the production Clock backed by the OS wall clock.
type SystemClock struct {
	mu   sync.Mutex
	last time.Time
}

// System returns a new system-backed clock.
func System() *SystemClock {
	return &SystemClock{}
}

// Now returns the current UTC time.
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Stamp returns the current formatted timestamp. If the wall clock reads
// earlier than a previously issued stamp, the previous reading is reused so
// stamps never go backwards.
func (c *SystemClock) Stamp() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now.Format(StampFormat)
}

// ManualClock is a Clock for tests, advanced explicitly.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// Manual returns a clock frozen at the given time.
func Manual(start time.Time) *ManualClock {
	return &ManualClock{now: start.UTC()}
}

// Now returns the frozen time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Stamp returns the frozen time formatted.
func (c *ManualClock) Stamp() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Format(StampFormat)
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

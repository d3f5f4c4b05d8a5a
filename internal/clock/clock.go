// Package clock abstracts time so run durations are testable.
//
// The engine timestamps each run and reports how long it took. Nothing else
// in the farm depends on time, so the interface stays at Now and Since;
// FakeClock lets tests pin both.
package clock

import "time"

// Clock supplies the current time and elapsed durations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FakeClock implements Clock with a fixed time that only moves when told to.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a new FakeClock pinned at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the pinned time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Since returns the elapsed time relative to the pinned time.
func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.current.Sub(t)
}

// Set repins the clock at t.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the pinned time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

package engine

import "time"

// Ticks is the engine's time unit: a monotonically increasing millisecond
// counter that wraps around after ~49.7 days of uptime.
//
// All durations in this package are expressed in Ticks, and all elapsed-time
// math goes through Elapsed/Before so that wraparound is handled uniformly.
type Ticks uint32

// Elapsed returns how many ticks have passed since `since`.
//
// Unsigned subtraction is wraparound-safe: even when the counter has wrapped
// between `since` and `now`, the difference is the true elapsed duration as
// long as it is below half the counter range.
func Elapsed(now, since Ticks) Ticks {
	return now - since
}

// Before reports whether `now` has not yet reached `deadline`.
//
// The signed-difference trick keeps the comparison correct across counter
// wraparound (the same check the device uses for its post-boot input
// suppression window).
func Before(now, deadline Ticks) bool {
	return int32(now-deadline) < 0
}

// Clock supplies the current tick count.
//
// Implemented by WallClock (production) and ManualClock (tests).
type Clock interface {
	Now() Ticks
}

// WallClock derives ticks from wall time elapsed since construction.
// Truncation to uint32 provides the expected wraparound behavior.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a clock whose tick zero is "now".
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created, wrapped to Ticks.
func (c *WallClock) Now() Ticks {
	return Ticks(time.Since(c.start).Milliseconds())
}

// ManualClock is a hand-advanced clock for deterministic tests.
type ManualClock struct {
	now Ticks
}

// NewManualClock creates a manual clock starting at a specific tick.
// Starting near the uint32 ceiling exercises wraparound paths.
func NewManualClock(start Ticks) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current tick without advancing.
func (c *ManualClock) Now() Ticks {
	return c.now
}

// Advance moves the clock forward by d ticks.
func (c *ManualClock) Advance(d Ticks) Ticks {
	c.now += d
	return c.now
}

// Set jumps the clock to an absolute tick value.
func (c *ManualClock) Set(t Ticks) {
	c.now = t
}

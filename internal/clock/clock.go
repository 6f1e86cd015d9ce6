// Package clock drives the simulation with bounded, strictly positive time steps.
package clock

import (
	"math"
	"time"
)

const (
	// DefaultTickRate is assumed when no usable tick rate is configured.
	DefaultTickRate = 60
	// DefaultMaxDelta caps a single step so a hitch cannot tunnel bodies through platforms.
	DefaultMaxDelta = time.Second / 30
)

// Clock converts wall-clock tick timestamps into simulation deltas.
type Clock struct {
	step     float64
	maxDelta float64
	last     time.Time
	elapsed  float64
	ticks    uint64
}

// New creates a clock for the given tick rate.
// A non-positive tickRate falls back to DefaultTickRate; a non-positive
// maxDelta falls back to DefaultMaxDelta.
func New(tickRate int, maxDelta time.Duration) *Clock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	step := 1.0 / float64(tickRate)
	return &Clock{
		step:     step,
		maxDelta: math.Max(step, maxDelta.Seconds()),
	}
}

// Fixed returns the nominal step in seconds.
func (c *Clock) Fixed() float64 {
	return c.step
}

// Tick returns the delta since the previous tick in seconds.
// The first tick, a repeated timestamp or a timestamp that went backwards all
// yield the nominal step; long gaps are capped at the max delta.
func (c *Clock) Tick(now time.Time) float64 {
	dt := c.step
	if !c.last.IsZero() {
		if d := now.Sub(c.last).Seconds(); d > 0 {
			dt = math.Min(d, c.maxDelta)
		}
	}
	c.last = now
	c.Advance(dt)
	return dt
}

// Advance records a step of dt seconds taken outside Tick (fixed-step callers).
func (c *Clock) Advance(dt float64) {
	c.elapsed += dt
	c.ticks++
}

// Elapsed returns the accumulated simulated time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Ticks returns how many steps have been taken.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Reset forgets the last timestamp and the accumulated time.
func (c *Clock) Reset() {
	c.last = time.Time{}
	c.elapsed = 0
	c.ticks = 0
}

// Phase returns the position inside a repeating period as a fraction in [0, 1).
// A non-positive period is treated as "never cycles" and returns 0.
func Phase(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	p := math.Mod(elapsed, period) / period
	if p < 0 {
		p++
	}
	return p
}

// Active reports whether a periodic effect with the given duty cycle is "on".
// The effect is on for the first duty fraction of every period.
func Active(elapsed, period, duty float64) bool {
	if period <= 0 {
		return true
	}
	return Phase(elapsed, period) < duty
}

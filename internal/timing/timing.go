package timing

import "time"

// FixedStep is the simulation timestep, in seconds. Zoom smoothing runs at
// this cadence regardless of display refresh rate.
const FixedStep float32 = 1.0 / 60.0

// Clock measures wall-clock frame deltas and accumulates them for fixed-step
// consumption (the classic semi-fixed-timestep accumulator).
type Clock struct {
	last        time.Time
	accumulator float32
}

// NewClock returns a clock anchored at now; the first Tick yields the time
// elapsed since this call.
func NewClock(now time.Time) *Clock {
	return &Clock{last: now}
}

// Tick records a new frame boundary and returns the wall-clock delta since
// the previous one, in seconds. The delta is also added to the accumulator.
func (c *Clock) Tick(now time.Time) float32 {
	dt := float32(now.Sub(c.last).Seconds())
	if dt < 0 {
		dt = 0
	}
	c.last = now
	c.accumulator += dt
	return dt
}

// ConsumeStep drains one whole FixedStep from the accumulator, reporting
// whether a step was available. Callers loop until it returns false.
func (c *Clock) ConsumeStep() bool {
	if c.accumulator < FixedStep {
		return false
	}
	c.accumulator -= FixedStep
	return true
}

// Accumulated returns the unconsumed simulation time, in seconds.
func (c *Clock) Accumulated() float32 {
	return c.accumulator
}

package race

import (
	"fmt"
	"time"
)

// Clock is the simulated-time cursor for a race. It advances by wall-clock
// deltas scaled by the speed multiplier, and only while running. Simulated
// time is monotonically non-decreasing except through Seek, which records
// the rewind so the engine can recount laps from scratch.
type Clock struct {
	simTime float64 // seconds
	speed   float64
	running bool
	rewound bool
}

// NewClock creates a paused clock at t=0 with the given speed multiplier.
func NewClock(speed float64) (*Clock, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidSpeed, speed)
	}
	return &Clock{speed: speed}, nil
}

// Tick advances simulated time by wallDelta scaled by the speed multiplier.
// A paused clock ignores ticks entirely, so wall time spent paused never
// leaks into the simulation.
func (c *Clock) Tick(wallDelta time.Duration) {
	if !c.running {
		return
	}
	c.simTime += wallDelta.Seconds() * c.speed
}

func (c *Clock) Play()  { c.running = true }
func (c *Clock) Pause() { c.running = false }

// SetSpeed changes the speed multiplier. Non-positive values are rejected
// and leave the clock untouched.
func (c *Clock) SetSpeed(multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidSpeed, multiplier)
	}
	c.speed = multiplier
	return nil
}

// Seek moves the cursor to an absolute simulated time, forward or backward.
// A backward seek is flagged as a rewind discontinuity; incremental lap
// accounting cannot detect it, so the engine must recompute on the next tick.
func (c *Clock) Seek(to float64) error {
	if to < 0 {
		return fmt.Errorf("%w, got %g", ErrNegativeSeek, to)
	}
	if to < c.simTime {
		c.rewound = true
	}
	c.simTime = to
	return nil
}

func (c *Clock) Now() float64   { return c.simTime }
func (c *Clock) Speed() float64 { return c.speed }
func (c *Clock) Running() bool  { return c.running }

// takeRewind reports and clears the pending rewind flag.
func (c *Clock) takeRewind() bool {
	r := c.rewound
	c.rewound = false
	return r
}

package race

import (
	"fmt"
	"sort"
	"time"

	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
)

// State is the engine's position in the race lifecycle:
// NotStarted -> Running <-> Paused -> Finished.
type State int

const (
	NotStarted State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "not started"
	}
}

// car is engine-private per-car state, owned exclusively by the engine and
// mutated only during a tick.
type car struct {
	id     telemetry.CarID
	interp *interpolator
}

// Engine orchestrates a race: it owns the clock, the car collection and the
// track geometry, and turns each tick into an immutable Frame.
//
// The model is single-threaded and host-driven: the renderer calls Tick once
// per display frame, then reads CurrentFrame. Playback controls are safe
// between ticks; calling them from inside a tick (e.g. a render callback) is
// rejected with ErrTickInProgress.
type Engine struct {
	clock *Clock
	geo   *track.Geometry
	cars  []*car

	state    State
	frame    Frame
	ticking  bool
	warnings []Warning
}

// NewEngine builds an engine over loaded telemetry. Cars without samples are
// excluded with a warning; an empty grid is ErrNoActiveCars. The engine
// starts in NotStarted at t=0 with the given speed multiplier.
func NewEngine(geo *track.Geometry, set *telemetry.Set, speed float64) (*Engine, error) {
	clock, err := NewClock(speed)
	if err != nil {
		return nil, err
	}

	e := &Engine{clock: clock, geo: geo}
	for _, id := range set.Cars() {
		samples := set.Samples(id)
		if len(samples) == 0 {
			e.warnings = append(e.warnings, Warning{
				Kind:    WarnCarExcluded,
				Message: fmt.Sprintf("car %q has no samples", id),
			})
			continue
		}
		e.cars = append(e.cars, &car{id: id, interp: newInterpolator(samples)})
	}
	if len(e.cars) == 0 {
		return nil, ErrNoActiveCars
	}

	e.frame = e.buildFrame()
	return e, nil
}

// Play starts or resumes the race.
func (e *Engine) Play() error {
	if e.ticking {
		return ErrTickInProgress
	}
	if e.state == NotStarted || e.state == Paused {
		e.state = Running
	}
	if e.state == Running {
		e.clock.Play()
	}
	return nil
}

// Pause suspends the race; wall time spent paused does not advance it.
func (e *Engine) Pause() error {
	if e.ticking {
		return ErrTickInProgress
	}
	if e.state == Running {
		e.state = Paused
	}
	e.clock.Pause()
	return nil
}

// SetSpeed changes the playback rate. Invalid values leave the race untouched.
func (e *Engine) SetSpeed(multiplier float64) error {
	if e.ticking {
		return ErrTickInProgress
	}
	return e.clock.SetSpeed(multiplier)
}

// Seek jumps to an absolute simulated time. The next tick rebuilds every
// car's lap count from scratch, so backward seeks cannot corrupt standings;
// the rewind is additionally surfaced as a warning.
func (e *Engine) Seek(to float64) error {
	if e.ticking {
		return ErrTickInProgress
	}
	return e.clock.Seek(to)
}

// Reset rewinds the race to the grid: t=0, paused, NotStarted.
func (e *Engine) Reset() error {
	if e.ticking {
		return ErrTickInProgress
	}
	e.clock.Pause()
	if err := e.clock.Seek(0); err != nil {
		return err
	}
	e.clock.takeRewind() // a reset is not a discontinuity worth reporting
	e.state = NotStarted
	e.frame = e.buildFrame()
	return nil
}

// Tick advances the clock by wallDelta and produces the frame for the new
// simulated time. It is synchronous and atomic from the caller's view: the
// returned frame is complete, and CurrentFrame returns it until the next
// Tick. Ticking a paused or finished race still rebuilds the frame so seeks
// made while paused take effect.
func (e *Engine) Tick(wallDelta time.Duration) Frame {
	e.ticking = true
	defer func() { e.ticking = false }()

	e.clock.Tick(wallDelta)
	if e.clock.takeRewind() {
		e.warnings = append(e.warnings, Warning{
			Kind:    WarnClockRewind,
			SimTime: e.clock.Now(),
			Message: fmt.Sprintf("rewind to t=%.3fs, laps recounted", e.clock.Now()),
		})
	}

	e.frame = e.buildFrame()
	e.transition()
	e.frame.State = e.state
	return e.frame
}

// CurrentFrame returns the frame produced by the most recent tick. It is
// valid until the next Tick call.
func (e *Engine) CurrentFrame() Frame { return e.frame }

func (e *Engine) State() State { return e.state }

// Clock exposes read-only clock values for display.
func (e *Engine) SimTime() float64 { return e.clock.Now() }
func (e *Engine) Speed() float64   { return e.clock.Speed() }

// FinalTime is the simulated time at which the last car's telemetry ends.
func (e *Engine) FinalTime() float64 {
	var max float64
	for _, c := range e.cars {
		if ft := c.interp.finalTime(); ft > max {
			max = ft
		}
	}
	return max
}

// DrainWarnings returns accumulated recoverable conditions and clears them.
func (e *Engine) DrainWarnings() []Warning {
	w := e.warnings
	e.warnings = nil
	return w
}

// buildFrame recomputes every car from the clock's simulated time. Lap
// counts come from cumulative distance, not incremental deltas, so the same
// simulated time always yields the same frame regardless of how it was
// reached.
func (e *Engine) buildFrame() Frame {
	t := e.clock.Now()
	cars := make([]CarFrame, 0, len(e.cars))
	for _, c := range e.cars {
		frac, lap, finished := c.interp.positionAt(t)
		status := StatusActive
		if finished {
			status = StatusFinished
		}
		cars = append(cars, CarFrame{
			ID:       c.id,
			LED:      e.geo.IndexForFraction(frac),
			Lap:      lap,
			Fraction: frac,
			Status:   status,
		})
	}

	// Classification: laps then fraction, descending; car id breaks exact
	// ties so repeated ticks over unchanged inputs stay stable.
	sort.SliceStable(cars, func(i, j int) bool {
		if cars[i].Lap != cars[j].Lap {
			return cars[i].Lap > cars[j].Lap
		}
		if cars[i].Fraction != cars[j].Fraction {
			return cars[i].Fraction > cars[j].Fraction
		}
		return cars[i].ID < cars[j].ID
	})
	for i := range cars {
		cars[i].Position = i + 1
	}

	return Frame{
		SimTime: t,
		Speed:   e.clock.Speed(),
		State:   e.state,
		Cars:    cars,
	}
}

// transition applies race-level state changes after a frame is built.
func (e *Engine) transition() {
	allFinished := true
	for _, c := range e.frame.Cars {
		if c.Status != StatusFinished {
			allFinished = false
			break
		}
	}

	switch {
	case e.state == Running && allFinished:
		e.state = Finished
		e.clock.Pause()
	case e.state == Finished && !allFinished:
		// A seek pulled the race back before the flag; hold paused until
		// the host presses play again.
		e.state = Paused
	}
}

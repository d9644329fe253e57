package race

import "github.com/f1led/circuitled/internal/telemetry"

// Status of a car within a frame.
type Status int

const (
	StatusActive Status = iota
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "finished"
	default:
		return "active"
	}
}

// CarFrame is one car's rendering-relevant state for a single tick.
type CarFrame struct {
	ID       telemetry.CarID
	LED      int     // slot index on the track geometry
	Lap      int     // completed start/finish crossings
	Fraction float64 // position within the current lap, [0,1)
	Position int     // race classification, 1-based
	Status   Status
}

// Frame is an immutable snapshot of the whole grid for one tick. The
// renderer reads it and never mutates it; a fresh Frame is assembled on
// every tick.
type Frame struct {
	SimTime float64
	Speed   float64
	State   State
	Cars    []CarFrame // in classification order
}

// Car returns the frame entry for a car, false if it is not in the frame.
func (f Frame) Car(id telemetry.CarID) (CarFrame, bool) {
	for _, c := range f.Cars {
		if c.ID == id {
			return c, true
		}
	}
	return CarFrame{}, false
}

// Leader returns the first classified car, false for an empty frame.
func (f Frame) Leader() (CarFrame, bool) {
	if len(f.Cars) == 0 {
		return CarFrame{}, false
	}
	return f.Cars[0], true
}

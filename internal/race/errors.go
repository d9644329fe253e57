package race

import "errors"

// Domain errors for race simulation operations.
var (
	// ErrInvalidSpeed indicates a non-positive speed multiplier was requested.
	ErrInvalidSpeed = errors.New("race: speed multiplier must be positive")

	// ErrNegativeSeek indicates a seek target before the race start.
	ErrNegativeSeek = errors.New("race: seek target must be non-negative")

	// ErrNoActiveCars indicates the telemetry contained no car with usable samples.
	ErrNoActiveCars = errors.New("race: no active cars")

	// ErrTickInProgress indicates a playback control was invoked mid-tick.
	ErrTickInProgress = errors.New("race: tick in progress")
)

// Warning kinds raised by the engine. These are recoverable conditions the
// host may display; none of them stop the race.
const (
	WarnClockRewind = "clock_rewind"
	WarnCarExcluded = "car_excluded"
)

// Warning is a recoverable engine condition, drained by the host between ticks.
type Warning struct {
	Kind    string
	SimTime float64
	Message string
}

func (w Warning) String() string { return w.Kind + ": " + w.Message }

package race

import (
	"math"
	"sort"

	"github.com/f1led/circuitled/internal/telemetry"
)

// interpolator converts simulated time into a car's cumulative track
// distance, measured in laps. Distance is the lap count plus the fraction
// within the current lap, so position and lap accounting both fall out of
// one monotone function: floor(d) is the lap, d-floor(d) the fraction.
//
// Working in cumulative distance rather than raw fractions makes lap
// crossings exact under any speed multiplier: a query jumping several laps
// ahead reports every crossing in one floor() difference, and a rewound
// clock simply lands on a smaller distance. No wrap-direction heuristics.
type interpolator struct {
	samples []telemetry.Sample
	cum     []float64 // cumulative distance at each sample, laps
}

// newInterpolator requires at least one sample, sorted by timestamp.
// Consecutive samples whose fraction decreases are taken as a start/finish
// crossing; samples are assumed dense enough that a car never completes a
// whole lap between two of them.
func newInterpolator(samples []telemetry.Sample) *interpolator {
	cum := make([]float64, len(samples))
	cum[0] = samples[0].Fraction
	for i := 1; i < len(samples); i++ {
		df := samples[i].Fraction - samples[i-1].Fraction
		if df < 0 {
			df += 1.0
		}
		cum[i] = cum[i-1] + df
	}
	return &interpolator{samples: samples, cum: cum}
}

// distanceAt returns the cumulative distance at time t and whether the car
// has passed its final sample.
//
// Before the first sample the car sits on the grid: distance is clamped to
// the first sample, never extrapolated backward. At or beyond the last
// sample the car is finished and holds its final distance. In between, the
// bracketing pair is found by binary search and distance is interpolated
// linearly by time ratio.
func (ip *interpolator) distanceAt(t float64) (d float64, finished bool) {
	first := ip.samples[0]
	last := ip.samples[len(ip.samples)-1]

	if t < first.Timestamp {
		return ip.cum[0], false
	}
	if t >= last.Timestamp {
		return ip.cum[len(ip.cum)-1], true
	}

	// Index of the first sample with timestamp > t; the bracket is [i-1, i].
	i := sort.Search(len(ip.samples), func(i int) bool {
		return ip.samples[i].Timestamp > t
	})
	lo, hi := ip.samples[i-1], ip.samples[i]
	ratio := (t - lo.Timestamp) / (hi.Timestamp - lo.Timestamp)
	return ip.cum[i-1] + (ip.cum[i]-ip.cum[i-1])*ratio, false
}

// positionAt splits distanceAt into the lap counter and the track fraction.
func (ip *interpolator) positionAt(t float64) (fraction float64, lap int, finished bool) {
	d, finished := ip.distanceAt(t)
	whole := math.Floor(d)
	return d - whole, int(whole), finished
}

// finalTime is the timestamp of the last recorded sample.
func (ip *interpolator) finalTime() float64 {
	return ip.samples[len(ip.samples)-1].Timestamp
}

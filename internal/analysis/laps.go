// Package analysis derives lap statistics from loaded telemetry.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/f1led/circuitled/internal/telemetry"
)

// Summary aggregates one car's lap times.
type Summary struct {
	Car      telemetry.CarID
	Laps     int
	Times    []float64 // seconds per completed lap
	Best     float64
	Mean     float64
	StdDev   float64
	TotalSim float64 // simulated time covered by the car's telemetry
}

// LapTimes extracts completed-lap durations from a sorted sample sequence.
// Crossing times are interpolated at whole cumulative distances, the same
// distance model the race engine uses for lap counting.
func LapTimes(samples []telemetry.Sample) []float64 {
	if len(samples) < 2 {
		return nil
	}

	cum := make([]float64, len(samples))
	cum[0] = samples[0].Fraction
	for i := 1; i < len(samples); i++ {
		df := samples[i].Fraction - samples[i-1].Fraction
		if df < 0 {
			df += 1.0
		}
		cum[i] = cum[i-1] + df
	}

	var crossings []float64
	next := math.Floor(cum[0]) + 1
	for i := 1; i < len(samples); i++ {
		for cum[i] >= next {
			// time at which cumulative distance hit the lap boundary
			span := cum[i] - cum[i-1]
			t := samples[i].Timestamp
			if span > 0 {
				ratio := (next - cum[i-1]) / span
				t = samples[i-1].Timestamp + (samples[i].Timestamp-samples[i-1].Timestamp)*ratio
			}
			crossings = append(crossings, t)
			next++
		}
	}

	if len(crossings) < 1 {
		return nil
	}
	times := make([]float64, 0, len(crossings))
	prev := samples[0].Timestamp
	for _, c := range crossings {
		times = append(times, c-prev)
		prev = c
	}
	return times
}

// Summarize computes lap statistics for a car.
func Summarize(id telemetry.CarID, samples []telemetry.Sample) Summary {
	s := Summary{Car: id}
	if len(samples) > 0 {
		s.TotalSim = samples[len(samples)-1].Timestamp - samples[0].Timestamp
	}
	s.Times = LapTimes(samples)
	s.Laps = len(s.Times)
	if s.Laps == 0 {
		return s
	}

	s.Best = s.Times[0]
	for _, t := range s.Times {
		if t < s.Best {
			s.Best = t
		}
	}
	s.Mean = stat.Mean(s.Times, nil)
	if s.Laps > 1 {
		s.StdDev = stat.StdDev(s.Times, nil)
	}
	return s
}

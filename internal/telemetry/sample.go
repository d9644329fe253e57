// Package telemetry parses recorded per-car timing samples into the typed,
// sorted sequences the race engine interpolates over.
package telemetry

import (
	"fmt"
	"math"
)

// CarID identifies a car by its entry name (driver name or race number).
type CarID string

// Sample is one timing record for a car: where it was on the lap at a given
// offset of simulated time.
type Sample struct {
	Timestamp float64 // seconds since race start, non-negative
	Fraction  float64 // position along one lap, [0,1)
}

// Set holds the parsed telemetry for a whole race grid. Samples per car are
// sorted by timestamp with duplicate timestamps collapsed (last row wins).
type Set struct {
	cars  map[CarID][]Sample
	order []CarID
}

// Cars returns car ids in grid order (order of first appearance in the input).
func (s *Set) Cars() []CarID {
	out := make([]CarID, len(s.order))
	copy(out, s.order)
	return out
}

// Samples returns the sorted sample sequence for a car, nil if unknown.
func (s *Set) Samples(id CarID) []Sample {
	return s.cars[id]
}

func (s *Set) Len() int { return len(s.order) }

// WarningKind classifies recoverable conditions raised while loading.
type WarningKind string

const (
	MalformedRecord WarningKind = "malformed_record"
	CarExcluded     WarningKind = "car_excluded"
)

// Warning is a recoverable load condition surfaced to the caller. Warnings
// are never fatal; the race continues with whatever rows survived.
type Warning struct {
	Kind   WarningKind
	Car    CarID
	Source string
	Line   int
	Reason string
}

func (w Warning) String() string {
	switch w.Kind {
	case CarExcluded:
		return fmt.Sprintf("%s: car %q excluded: %s", w.Source, w.Car, w.Reason)
	default:
		return fmt.Sprintf("%s:%d: row skipped: %s", w.Source, w.Line, w.Reason)
	}
}

// mod1 reduces f into [0,1). Fractions like 1.0 at the finish line wrap to
// 0.0, which keeps the cumulative lap accounting downstream consistent.
func mod1(f float64) float64 {
	f = math.Mod(f, 1.0)
	if f < 0 {
		f += 1.0
	}
	return f
}

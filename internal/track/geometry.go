// Package track models a circuit as an ordered, closed ring of LED slots.
//
// A Geometry is built once from a fixed layout and is immutable afterwards:
// every slot carries its cumulative arc-length coordinate in [0,1) plus the
// 2D point the renderer draws it at. The engine only ever uses the pure
// fraction-to-index mapping; the coordinates exist for display.
package track

import (
	"errors"
	"math"
)

// ErrNoSlots indicates a geometry was requested with a non-positive LED count.
var ErrNoSlots = errors.New("track: led count must be positive")

// Slot is one discrete illuminated position along the circuit.
type Slot struct {
	Fraction float64 // cumulative arc-length coordinate, [0,1)
	X, Y     float64
}

// Geometry is an immutable ring of LED slots.
type Geometry struct {
	layout string
	slots  []Slot
}

// New resamples layout to ledCount evenly spaced slots along its arc length.
func New(layout Layout, ledCount int) (*Geometry, error) {
	if ledCount <= 0 {
		return nil, ErrNoSlots
	}
	if len(layout.Points) < 2 {
		return nil, errors.New("track: layout needs at least two points")
	}

	arc := cumulativeArc(layout.Points)
	total := arc[len(arc)-1]
	slots := make([]Slot, ledCount)
	for i := range slots {
		f := float64(i) / float64(ledCount)
		x, y := pointAtArc(layout.Points, arc, f*total)
		slots[i] = Slot{Fraction: f, X: x, Y: y}
	}
	return &Geometry{layout: layout.ID, slots: slots}, nil
}

// LayoutID returns the id of the layout this geometry was built from.
func (g *Geometry) LayoutID() string { return g.layout }

func (g *Geometry) SlotCount() int { return len(g.slots) }

// Slot returns the slot at index i.
func (g *Geometry) Slot(i int) Slot { return g.slots[i] }

// IndexForFraction maps a track fraction to its LED slot. Values outside
// [0,1) are reduced modulo 1.0 first, which handles a car crossing the
// start/finish line.
func (g *Geometry) IndexForFraction(f float64) int {
	f = math.Mod(f, 1.0)
	if f < 0 {
		f += 1.0
	}
	idx := int(f * float64(len(g.slots)))
	if idx >= len(g.slots) { // only reachable through float rounding at f just below 1
		idx = len(g.slots) - 1
	}
	return idx
}

// Bounds returns the bounding box of the slot coordinates.
func (g *Geometry) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range g.slots {
		minX = math.Min(minX, s.X)
		minY = math.Min(minY, s.Y)
		maxX = math.Max(maxX, s.X)
		maxY = math.Max(maxY, s.Y)
	}
	return minX, minY, maxX, maxY
}

// cumulativeArc computes the running arc length along the closed ring of
// points, including the segment that closes the loop back to the start.
func cumulativeArc(pts []Point) []float64 {
	arc := make([]float64, len(pts)+1)
	for i := 1; i < len(pts); i++ {
		arc[i] = arc[i-1] + dist(pts[i-1], pts[i])
	}
	arc[len(pts)] = arc[len(pts)-1] + dist(pts[len(pts)-1], pts[0])
	return arc
}

// pointAtArc linearly interpolates the layout position at arc-length target,
// treating the point list as a closed loop.
func pointAtArc(pts []Point, arc []float64, target float64) (float64, float64) {
	for i := 1; i < len(arc); i++ {
		if arc[i] < target {
			continue
		}
		a := pts[i-1]
		b := pts[i%len(pts)]
		seg := arc[i] - arc[i-1]
		if seg == 0 {
			return a.X, a.Y
		}
		t := (target - arc[i-1]) / seg
		return a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t
	}
	return pts[0].X, pts[0].Y
}

func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

package track

import (
	"fmt"
	"math"
	"sort"
)

// Point is a 2D layout coordinate in arbitrary board units.
type Point struct {
	X, Y float64
}

// Layout is the fixed shape of a circuit: an ordered, closed ring of board
// coordinates tracing the LED strip.
type Layout struct {
	ID     string
	Name   string
	Points []Point
}

// builtin layouts, keyed by id. The grand-prix shape is a hand-traced point
// table; the others are generated parametrically.
var layouts = map[string]Layout{
	"oval": {
		ID:     "oval",
		Name:   "Speedway Oval",
		Points: ellipse(48, 100, 60),
	},
	"ring": {
		ID:     "ring",
		Name:   "Test Ring",
		Points: ellipse(48, 80, 80),
	},
	"gp": {
		ID:   "gp",
		Name: "Grand Prix Circuit",
		Points: []Point{
			{0, 0}, {18, 0}, {36, 2}, {52, 8}, {64, 18}, {70, 30},
			{68, 42}, {60, 50}, {48, 54}, {38, 60}, {34, 70}, {38, 80},
			{48, 86}, {60, 88}, {72, 86}, {80, 78}, {82, 66}, {86, 56},
			{94, 52}, {104, 54}, {110, 62}, {112, 74}, {108, 86}, {98, 94},
			{84, 98}, {68, 100}, {50, 100}, {34, 98}, {20, 92}, {10, 82},
			{4, 70}, {2, 56}, {0, 42}, {-2, 28}, {-2, 14}, {-1, 5},
		},
	},
}

// Layouts returns the builtin layouts sorted by id.
func Layouts() []Layout {
	out := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LayoutByID looks up a builtin layout.
func LayoutByID(id string) (Layout, error) {
	l, ok := layouts[id]
	if !ok {
		return Layout{}, fmt.Errorf("track: unknown layout %q", id)
	}
	return l, nil
}

func ellipse(n int, rx, ry float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: rx * math.Cos(a), Y: ry * math.Sin(a)}
	}
	return pts
}

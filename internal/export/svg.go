// Package export writes still images of the circuit state.
package export

import (
	"fmt"
	"strings"

	"github.com/f1led/circuitled/internal/race"
	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
)

const (
	svgSize   = 800.0
	svgMargin = 40.0
)

// CircuitSVG renders the track's LED ring with the frame's car positions lit.
// Unoccupied slots are drawn dim, occupied ones in the car's color, matching
// the live animation. colors maps car ids to hex colors; unmapped cars fall
// back to white.
func CircuitSVG(geo *track.Geometry, frame race.Frame, colors map[telemetry.CarID]string) string {
	minX, minY, maxX, maxY := geo.Bounds()
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := (svgSize - 2*svgMargin) / spanX
	if s := (svgSize - 2*svgMargin) / spanY; s < scale {
		scale = s
	}

	project := func(s track.Slot) (float64, float64) {
		x := svgMargin + (s.X-minX)*scale
		// SVG y grows downward; board coordinates grow upward.
		y := svgSize - svgMargin - (s.Y-minY)*scale
		return x, y
	}

	occupied := make(map[int]string, len(frame.Cars))
	for _, c := range frame.Cars {
		if _, taken := occupied[c.LED]; taken {
			continue
		}
		color, ok := colors[c.ID]
		if !ok {
			color = "#ffffff"
		}
		occupied[c.LED] = color
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgSize, svgSize, svgSize, svgSize))

	for i := 0; i < geo.SlotCount(); i++ {
		x, y := project(geo.Slot(i))
		color, lit := occupied[i]
		r := 3.0
		if lit {
			r = 6.0
		} else {
			color = "#2a2a2a"
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, r, color))
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="24" fill="#cccccc" font-family="monospace" font-size="14">t=%.1fs %s</text>
`, svgMargin, frame.SimTime, frame.State))
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Package report renders race summaries as standalone HTML charts.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/f1led/circuitled/internal/race"
	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
)

// WriteProgress renders each car's race distance (laps + lap fraction) over
// simulated time as a line chart. The race is replayed headlessly through
// the engine at 1x so the chart matches exactly what the animation shows.
func WriteProgress(w io.Writer, geo *track.Geometry, set *telemetry.Set, points int) error {
	if points < 2 {
		points = 2
	}
	eng, err := race.NewEngine(geo, set, 1.0)
	if err != nil {
		return err
	}
	if err := eng.Play(); err != nil {
		return err
	}

	step := eng.FinalTime() / float64(points-1)
	if step <= 0 {
		return fmt.Errorf("report: telemetry covers no simulated time")
	}

	labels := make([]string, 0, points)
	series := make(map[telemetry.CarID][]opts.LineData, set.Len())
	for i := 0; i < points; i++ {
		var frame race.Frame
		if i == 0 {
			frame = eng.CurrentFrame()
		} else {
			frame = eng.Tick(time.Duration(step * float64(time.Second)))
		}
		labels = append(labels, fmt.Sprintf("%.0fs", frame.SimTime))
		for _, c := range frame.Cars {
			series[c.ID] = append(series[c.ID], opts.LineData{
				Value: float64(c.Lap) + c.Fraction,
			})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Race Progress", Theme: "dark",
			Width: "1200px", Height: "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Race progress",
			Subtitle: fmt.Sprintf("layout=%s cars=%d", geo.LayoutID(), set.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "simulated time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "distance (laps)"}),
	)

	line.SetXAxis(labels)
	for _, id := range set.Cars() {
		line.AddSeries(string(id), series[id])
	}
	return line.Render(w)
}

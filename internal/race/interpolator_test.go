package race

import (
	"math"
	"testing"

	"github.com/f1led/circuitled/internal/telemetry"
)

// samples as the loader produces them: sorted, fractions reduced into [0,1).
func threeSampleCar() *interpolator {
	return newInterpolator([]telemetry.Sample{
		{Timestamp: 0, Fraction: 0.0},
		{Timestamp: 10, Fraction: 0.5},
		{Timestamp: 20, Fraction: 0.0}, // raw 1.0, wrapped at the line
	})
}

func TestPositionAtInterpolatesByTimeRatio(t *testing.T) {
	ip := threeSampleCar()

	frac, lap, finished := ip.positionAt(5)
	if math.Abs(frac-0.25) > 1e-12 {
		t.Errorf("t=5: fraction %f, want 0.25", frac)
	}
	if lap != 0 || finished {
		t.Errorf("t=5: lap=%d finished=%v, want lap 0 active", lap, finished)
	}
}

func TestPositionClampsBeforeFirstSample(t *testing.T) {
	ip := newInterpolator([]telemetry.Sample{
		{Timestamp: 5, Fraction: 0.3},
		{Timestamp: 15, Fraction: 0.8},
	})

	frac, lap, finished := ip.positionAt(0)
	if frac != 0.3 || lap != 0 || finished {
		t.Errorf("before start: got (%f, %d, %v), want (0.3, 0, false)", frac, lap, finished)
	}
}

func TestLapCountsExactlyOnceAtTheFlag(t *testing.T) {
	ip := threeSampleCar()

	frac, lap, finished := ip.positionAt(20)
	if frac != 0.0 || lap != 1 || !finished {
		t.Fatalf("t=20: got (%f, %d, %v), want (0.0, 1, true)", frac, lap, finished)
	}

	// holding past the final sample must not count the lap again
	frac, lap, finished = ip.positionAt(25)
	if frac != 0.0 || lap != 1 || !finished {
		t.Errorf("t=25: got (%f, %d, %v), want (0.0, 1, true)", frac, lap, finished)
	}
}

func TestSingleSampleCarHoldsPosition(t *testing.T) {
	ip := newInterpolator([]telemetry.Sample{{Timestamp: 3, Fraction: 0.4}})

	for _, tm := range []float64{0, 3, 100} {
		frac, lap, _ := ip.positionAt(tm)
		if frac != 0.4 || lap != 0 {
			t.Errorf("t=%f: got (%f, %d), want (0.4, 0)", tm, frac, lap)
		}
	}
}

func TestMultiLapJumpReportsEveryCrossing(t *testing.T) {
	// five laps recorded at four samples per lap
	var samples []telemetry.Sample
	for i := 0; i <= 20; i++ {
		samples = append(samples, telemetry.Sample{
			Timestamp: float64(i),
			Fraction:  math.Mod(float64(i)*0.25, 1.0),
		})
	}
	ip := newInterpolator(samples)

	_, lapBefore, _ := ip.positionAt(1)
	_, lapAfter, _ := ip.positionAt(17)
	if delta := lapAfter - lapBefore; delta != 4 {
		t.Errorf("jump from t=1 to t=17: lap delta %d, want 4", delta)
	}
}

func TestDistanceIsMonotoneForNonDecreasingTime(t *testing.T) {
	ip := threeSampleCar()

	prev := math.Inf(-1)
	for tm := -2.0; tm < 30; tm += 0.05 {
		d, _ := ip.distanceAt(tm)
		if d < prev {
			t.Fatalf("distance decreased at t=%f: %f -> %f", tm, prev, d)
		}
		prev = d
	}
}

package race_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/f1led/circuitled/internal/race"
	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
)

func loadSet(csv string) *telemetry.Set {
	set, _, err := telemetry.Load(strings.NewReader(csv), "test")
	Expect(err).NotTo(HaveOccurred())
	return set
}

func tenSlotGeometry() *track.Geometry {
	layout, err := track.LayoutByID("oval")
	Expect(err).NotTo(HaveOccurred())
	geo, err := track.New(layout, 10)
	Expect(err).NotTo(HaveOccurred())
	return geo
}

// one car covering one lap in 20 seconds
const soloCSV = `solo,0,0.0
solo,10,0.5
solo,20,1.0
`

var _ = Describe("Engine", func() {
	var (
		geo *track.Geometry
		eng *race.Engine
	)

	BeforeEach(func() {
		geo = tenSlotGeometry()
		var err error
		eng, err = race.NewEngine(geo, loadSet(soloCSV), 1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("lifecycle", func() {
		It("starts on the grid with a valid frame", func() {
			Expect(eng.State()).To(Equal(race.NotStarted))
			frame := eng.CurrentFrame()
			Expect(frame.SimTime).To(BeZero())
			Expect(frame.Cars).To(HaveLen(1))
			Expect(frame.Cars[0].Position).To(Equal(1))
		})

		It("runs, pauses and resumes", func() {
			Expect(eng.Play()).To(Succeed())
			Expect(eng.State()).To(Equal(race.Running))

			Expect(eng.Pause()).To(Succeed())
			Expect(eng.State()).To(Equal(race.Paused))

			before := eng.SimTime()
			eng.Tick(5 * time.Second)
			Expect(eng.SimTime()).To(Equal(before), "paused tick must not advance")

			Expect(eng.Play()).To(Succeed())
			eng.Tick(5 * time.Second)
			Expect(eng.SimTime()).To(Equal(before + 5.0))
		})

		It("finishes when every car is held at its final sample", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(25 * time.Second)
			Expect(eng.State()).To(Equal(race.Finished))

			frame := eng.CurrentFrame()
			Expect(frame.Cars[0].Status).To(Equal(race.StatusFinished))
			Expect(frame.Cars[0].Lap).To(Equal(1), "flag crossing counts exactly once")

			eng.Tick(5 * time.Second)
			Expect(eng.CurrentFrame().Cars[0].Lap).To(Equal(1), "held car must not re-count")
		})

		It("resets back to the grid", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(12 * time.Second)

			Expect(eng.Reset()).To(Succeed())
			Expect(eng.State()).To(Equal(race.NotStarted))
			Expect(eng.SimTime()).To(BeZero())
			Expect(eng.DrainWarnings()).To(BeEmpty(), "a reset is not a rewind discontinuity")
		})
	})

	Describe("frames", func() {
		It("maps interpolated fractions onto LED slots", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(5 * time.Second)

			frame := eng.CurrentFrame()
			car := frame.Cars[0]
			Expect(car.Fraction).To(BeNumerically("~", 0.25, 1e-9))
			Expect(car.LED).To(Equal(2))
		})

		It("is deterministic across backward and forward seeks", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(7 * time.Second)
			reference := eng.Tick(0)

			Expect(eng.Seek(18)).To(Succeed())
			eng.Tick(0)
			Expect(eng.Seek(7)).To(Succeed())
			replayed := eng.Tick(0)

			Expect(replayed.SimTime).To(Equal(reference.SimTime))
			Expect(replayed.Cars).To(Equal(reference.Cars))
		})

		It("reports a rewind discontinuity after a backward seek", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(15 * time.Second)
			eng.DrainWarnings()

			Expect(eng.Seek(3)).To(Succeed())
			eng.Tick(0)

			warnings := eng.DrainWarnings()
			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0].Kind).To(Equal(race.WarnClockRewind))
		})
	})

	Describe("playback controls", func() {
		It("rejects a non-positive speed and keeps prior state", func() {
			Expect(eng.Play()).To(Succeed())
			eng.Tick(2 * time.Second)
			timeBefore := eng.SimTime()
			speedBefore := eng.Speed()

			Expect(eng.SetSpeed(-1.0)).To(MatchError(race.ErrInvalidSpeed))
			Expect(eng.Speed()).To(Equal(speedBefore))
			Expect(eng.SimTime()).To(Equal(timeBefore))
		})

		It("scales simulated time by the multiplier", func() {
			Expect(eng.SetSpeed(4.0)).To(Succeed())
			Expect(eng.Play()).To(Succeed())
			eng.Tick(time.Second)
			Expect(eng.SimTime()).To(Equal(4.0))
		})
	})

	Describe("classification", func() {
		const duelCSV = `aaa,0,0.0
aaa,10,0.5
aaa,30,1.5
bbb,0,0.0
bbb,10,0.5
bbb,30,1.5
ccc,0,0.0
ccc,10,0.4
ccc,30,1.4
`

		It("orders by laps then fraction, car id breaking exact ties", func() {
			duel, err := race.NewEngine(geo, loadSet(duelCSV), 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(duel.Play()).To(Succeed())

			first := duel.Tick(10 * time.Second)
			ids := []telemetry.CarID{first.Cars[0].ID, first.Cars[1].ID, first.Cars[2].ID}
			Expect(ids).To(Equal([]telemetry.CarID{"aaa", "bbb", "ccc"}))

			// unchanged inputs keep the tie order stable across ticks
			second := duel.Tick(0)
			Expect(second.Cars).To(Equal(first.Cars))
		})

		It("promotes the faster car once fractions diverge", func() {
			duel, err := race.NewEngine(geo, loadSet(duelCSV), 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(duel.Play()).To(Succeed())

			frame := duel.Tick(10 * time.Second)
			last, ok := frame.Car("ccc")
			Expect(ok).To(BeTrue())
			Expect(last.Position).To(Equal(3))
		})
	})
})

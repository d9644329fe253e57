package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f1led/circuitled/internal/analysis"
	"github.com/f1led/circuitled/internal/config"
	"github.com/f1led/circuitled/internal/export"
	"github.com/f1led/circuitled/internal/logging"
	"github.com/f1led/circuitled/internal/race"
	"github.com/f1led/circuitled/internal/report"
	"github.com/f1led/circuitled/internal/store"
	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
	"github.com/f1led/circuitled/internal/viz"
)

var (
	ledCount   int
	speed      float64
	layoutID   string
	fps        int
	dataDir    string
	configFile string
	preset     string
	debug      bool
	carFilter  string
	outFile    string
	points     int
	snapTime   float64
)

// main registers the circuitled command tree. The race command is the main
// entry point; the rest inspect telemetry or saved results.
func main() {
	rootCmd := &cobra.Command{
		Use:   "circuitled",
		Short: "LED circuit replay of recorded races",
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	raceCmd := &cobra.Command{
		Use:   "race [telemetry-dir]",
		Short: "replay a race as a moving-light animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runRace,
	}
	raceCmd.Flags().IntVar(&ledCount, "leds", config.DefaultLEDCount, "LED slots along the track")
	raceCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial playback multiplier")
	raceCmd.Flags().StringVar(&layoutID, "track", config.DefaultLayout, "track layout id")
	raceCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	raceCmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "results directory")
	raceCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	raceCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	lapsCmd := &cobra.Command{
		Use:   "laps [telemetry-dir]",
		Short: "lap time statistics per car",
		Args:  cobra.ExactArgs(1),
		RunE:  runLaps,
	}
	lapsCmd.Flags().StringVar(&carFilter, "car", "", "plot lap times for one car")

	tracksCmd := &cobra.Command{
		Use:   "tracks",
		Short: "list builtin track layouts",
		RunE:  runTracks,
	}

	reportCmd := &cobra.Command{
		Use:   "report [telemetry-dir]",
		Short: "write an HTML race-progress chart",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().IntVar(&ledCount, "leds", config.DefaultLEDCount, "LED slots along the track")
	reportCmd.Flags().StringVar(&layoutID, "track", config.DefaultLayout, "track layout id")
	reportCmd.Flags().StringVarP(&outFile, "out", "o", "race.html", "output file")
	reportCmd.Flags().IntVar(&points, "points", 200, "chart sample points")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [telemetry-dir]",
		Short: "write an SVG still of the circuit at a simulated time",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ledCount, "leds", config.DefaultLEDCount, "LED slots along the track")
	snapshotCmd.Flags().StringVar(&layoutID, "track", config.DefaultLayout, "track layout id")
	snapshotCmd.Flags().Float64VarP(&snapTime, "time", "t", 0, "simulated time of the snapshot")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "circuit.svg", "output file")

	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "list saved race results",
		RunE:  runResults,
	}
	resultsCmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "results directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(raceCmd, lapsCmd, tracksCmd, reportCmd, snapshotCmd, resultsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}
	if cmd.Flags().Changed("leds") {
		cfg.LEDCount = ledCount
	}
	if cmd.Flags().Changed("speed") {
		cfg.InitialSpeed = speed
	}
	if cmd.Flags().Changed("track") {
		cfg.TrackLayout = layoutID
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func loadRace(dir string, logger *zap.Logger) (*telemetry.Set, error) {
	set, warnings, err := telemetry.LoadDir(dir)
	for _, w := range warnings {
		logger.Warn(w.String())
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

func buildGeometry(cfg *config.Config) (*track.Geometry, error) {
	layout, err := track.LayoutByID(cfg.TrackLayout)
	if err != nil {
		return nil, err
	}
	return track.New(layout, cfg.LEDCount)
}

func runRace(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	set, err := loadRace(args[0], logger)
	if err != nil {
		return err
	}
	geo, err := buildGeometry(cfg)
	if err != nil {
		return err
	}
	eng, err := race.NewEngine(geo, set, cfg.InitialSpeed)
	if err != nil {
		return err
	}

	m := viz.NewModel(eng, geo, set.Cars(), cfg.Colors, cfg.FPS)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}

	// Persist the classification if the race ran to the flag.
	if eng.State() == race.Finished {
		st := store.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveResult(cfg.TrackLayout, cfg.LEDCount, eng.CurrentFrame())
		if err != nil {
			return err
		}
		logger.Info("race result saved", zap.String("run", runID))
	}
	return nil
}

func runLaps(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	set, err := loadRace(args[0], logger)
	if err != nil {
		return err
	}

	if carFilter != "" {
		summary := analysis.Summarize(telemetry.CarID(carFilter), set.Samples(telemetry.CarID(carFilter)))
		if summary.Laps == 0 {
			return fmt.Errorf("no completed laps for car %q", carFilter)
		}
		graph := asciigraph.Plot(summary.Times,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s lap times (s)", carFilter)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAR\tLAPS\tBEST\tMEAN\tSTDDEV")
	for _, id := range set.Cars() {
		s := analysis.Summarize(id, set.Samples(id))
		fmt.Fprintf(w, "%s\t%d\t%.3fs\t%.3fs\t%.3fs\n", s.Car, s.Laps, s.Best, s.Mean, s.StdDev)
	}
	return w.Flush()
}

func runTracks(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOINTS")
	for _, l := range track.Layouts() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", l.ID, l.Name, len(l.Points))
	}
	return w.Flush()
}

func runReport(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	set, err := loadRace(args[0], logger)
	if err != nil {
		return err
	}
	geo, err := buildGeometry(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.WriteProgress(f, geo, set, points); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	set, err := loadRace(args[0], logger)
	if err != nil {
		return err
	}
	geo, err := buildGeometry(cfg)
	if err != nil {
		return err
	}
	eng, err := race.NewEngine(geo, set, 1.0)
	if err != nil {
		return err
	}
	if err := eng.Seek(snapTime); err != nil {
		return err
	}
	frame := eng.Tick(0)

	colors := viz.CarColors(set.Cars(), cfg.Colors)
	svg := export.CircuitSVG(geo, frame, colors)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%.1fs)\n", outFile, snapTime)
	return nil
}

func runResults(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved results")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tLAYOUT\tLEDS\tCARS\tRACE TIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Layout,
			run.LEDCount,
			run.Cars,
			run.SimTime,
		)
	}
	return w.Flush()
}

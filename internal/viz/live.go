package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f1led/circuitled/internal/race"
	"github.com/f1led/circuitled/internal/telemetry"
	"github.com/f1led/circuitled/internal/track"
)

const (
	canvasWidth  = 64
	canvasHeight = 22
	seekStep     = 10.0 // seconds of simulated time per arrow press
	maxSpeed     = 64.0
	minSpeed     = 0.25
	maxWarnings  = 3
)

type TickMsg time.Time

// Model is the bubbletea race view. It owns the host tick loop: every frame
// message it feeds the wall-clock delta into the engine and redraws the
// frame the engine produced.
type Model struct {
	eng    *race.Engine
	geo    *track.Geometry
	canvas *Canvas

	fps      int
	lastTick time.Time
	colors   map[telemetry.CarID]string
	warnings []string
	showHelp bool
}

// CarColors assigns every car its display color: palette by grid order,
// overridden by pinned entries from the config file.
func CarColors(gridOrder []telemetry.CarID, pinned map[string]string) map[telemetry.CarID]string {
	colors := make(map[telemetry.CarID]string, len(gridOrder))
	for i, id := range gridOrder {
		if hex, ok := pinned[string(id)]; ok && hex != "" {
			colors[id] = hex
			continue
		}
		colors[id] = PaletteColor(i)
	}
	return colors
}

// NewModel wires a race view. gridOrder fixes each car's palette color for
// the whole race; pinned entries (from the config file) override the palette.
func NewModel(eng *race.Engine, geo *track.Geometry, gridOrder []telemetry.CarID, pinned map[string]string, fps int) Model {
	colors := CarColors(gridOrder, pinned)
	if fps <= 0 {
		fps = 30
	}
	return Model{
		eng:      eng,
		geo:      geo,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		fps:      fps,
		lastTick: time.Now(),
		colors:   colors,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key input and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.eng.State() == race.Running {
				m.eng.Pause()
			} else {
				m.eng.Play()
			}
		case "r":
			m.eng.Reset()
			m.warnings = nil
		case "up", "+", "=":
			m.setSpeed(m.eng.Speed() * 2)
		case "down", "-", "_":
			m.setSpeed(m.eng.Speed() / 2)
		case "right":
			m.eng.Seek(m.eng.SimTime() + seekStep)
		case "left":
			to := m.eng.SimTime() - seekStep
			if to < 0 {
				to = 0
			}
			m.eng.Seek(to)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		delta := time.Since(m.lastTick)
		m.lastTick = time.Now()
		if delta > 250*time.Millisecond {
			// terminal was suspended; don't jump the race
			delta = 250 * time.Millisecond
		}
		m.eng.Tick(delta)
		for _, w := range m.eng.DrainWarnings() {
			m.warnings = append(m.warnings, w.String())
		}
		if len(m.warnings) > maxWarnings {
			m.warnings = m.warnings[len(m.warnings)-maxWarnings:]
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) setSpeed(v float64) {
	if v > maxSpeed {
		v = maxSpeed
	}
	if v < minSpeed {
		v = minSpeed
	}
	m.eng.SetSpeed(v)
}

// View renders the circuit canvas and the standings panel side by side.
func (m Model) View() string {
	frame := m.eng.CurrentFrame()
	m.draw(frame)

	var s strings.Builder
	s.WriteString(headerStyle.Render("CIRCUITLED") + "\n")
	s.WriteString(m.statusLine(frame) + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", frame.SimTime)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%gx", frame.Speed)) + "\n")
	s.WriteString(labelStyle.Render("Track") + valueStyle.Render(m.geo.LayoutID()) + "\n")
	s.WriteString("\nSTANDINGS\n")
	for _, c := range frame.Cars {
		markStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors[c.ID]))
		line := fmt.Sprintf("%2d %s %-14s L%-3d", c.Position, markStyle.Render("●"), c.ID, c.Lap)
		if c.Status == race.StatusFinished {
			line += " 🏁"
		}
		s.WriteString(line + "\n")
	}
	for _, w := range m.warnings {
		s.WriteString(warnStyle.Render("! "+w) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Play/Pause R:Restart Q:Quit\n↑↓:Speed ←→:Seek ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		panelStyle.Render(s.String()),
	)
	if m.showHelp {
		return helpOverlay + "\n" + main
	}
	return main
}

func (m Model) statusLine(frame race.Frame) string {
	switch frame.State {
	case race.Running:
		return statusRunning.Render("RUNNING")
	case race.Finished:
		return statusFinished.Render("FINISHED")
	case race.Paused:
		return statusPaused.Render("PAUSED")
	default:
		return statusPaused.Render("ON THE GRID")
	}
}

// draw paints the track outline in braille and the cars as colored markers.
func (m Model) draw(frame race.Frame) {
	m.canvas.Clear()

	px, py := m.projector()
	n := m.geo.SlotCount()
	for i := 0; i < n; i++ {
		a := m.geo.Slot(i)
		b := m.geo.Slot((i + 1) % n)
		m.canvas.DrawLine(px(a), py(a), px(b), py(b))
	}
	for _, c := range frame.Cars {
		slot := m.geo.Slot(c.LED)
		m.canvas.Mark(px(slot)/2, py(slot)/4, '●', m.colors[c.ID])
	}
}

// projector maps board coordinates into braille sub-pixel space with a
// one-cell margin, preserving aspect ratio.
func (m Model) projector() (func(track.Slot) int, func(track.Slot) int) {
	minX, minY, maxX, maxY := m.geo.Bounds()
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	subW := float64((m.canvas.Width - 2) * 2)
	subH := float64((m.canvas.Height - 2) * 4)
	scale := subW / spanX
	if s := subH / spanY; s < scale {
		scale = s
	}

	px := func(s track.Slot) int {
		return 2 + int((s.X-minX)*scale)
	}
	py := func(s track.Slot) int {
		// terminal rows grow downward
		return 4 + int(subH) - int((s.Y-minY)*scale)
	}
	return px, py
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play / pause the race    ║
║  R        - Restart from the grid    ║
║  Up/+     - Double playback speed    ║
║  Down/-   - Halve playback speed     ║
║  Left     - Seek back 10s            ║
║  Right    - Seek forward 10s         ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

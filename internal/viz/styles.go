package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusFinished = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
)

// gridPalette assigns each grid slot a fixed color, one per car of a full
// 20-car field.
var gridPalette = []string{
	"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff",
	"#00ffff", "#800000", "#008000", "#000080", "#808000",
	"#800080", "#008080", "#c0c0c0", "#808080", "#ffa500",
	"#ff1493", "#4b0082", "#ffd700", "#00bfff", "#ff69b4",
}

// PaletteColor returns the hex color for grid slot i, cycling past the field size.
func PaletteColor(i int) string {
	return gridPalette[((i%len(gridPalette))+len(gridPalette))%len(gridPalette)]
}

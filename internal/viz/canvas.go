package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a terminal drawing surface. The track outline is drawn in
// braille sub-pixels; cars are colored cell markers layered on top.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	marks         [][]mark
	styleCache    map[string]lipgloss.Style
}

type mark struct {
	ch    rune
	color string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:      w,
		Height:     h,
		grid:       make([][]rune, h),
		marks:      make([][]mark, h),
		styleCache: make(map[string]lipgloss.Style),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.marks[i] = make([]mark, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a braille sub-pixel. The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark places a colored marker at a cell, covering any braille drawing there.
func (c *Canvas) Mark(col, row int, ch rune, color string) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.marks[row][col] = mark{ch: ch, color: color}
}

// Clear resets both layers.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.marks[i][j] = mark{}
		}
	}
}

// DrawLine draws a braille line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.grid {
		for col := range c.grid[row] {
			if m := c.marks[row][col]; m.ch != 0 {
				b.WriteString(c.style(m.color).Render(string(m.ch)))
				continue
			}
			r := c.grid[row][col]
			if r == 0x2800 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(trackStyle.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) style(color string) lipgloss.Style {
	s, ok := c.styleCache[color]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		c.styleCache[color] = s
	}
	return s
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

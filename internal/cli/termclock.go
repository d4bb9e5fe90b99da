package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/face"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/clock/widget"
)

// termClock draws a clock face as a grid of terminal cells. A cell is about
// twice as tall as it is wide, so the grid is twice as many columns wide as
// it is rows high and the face stays round.
type termClock struct {
	rows int
	// left and top are the cell position of the grid on screen.
	left, top int
}

func (tc termClock) cols() int { return 2 * tc.rows }

// toViewBox maps the center of grid cell (col, row) to face coordinates.
func (tc termClock) toViewBox(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * clock.ViewBox / float64(tc.cols()),
		(float64(row) + 0.5) * clock.ViewBox / float64(tc.rows)
}

// cellAt maps face coordinates to the grid cell containing them.
func (tc termClock) cellAt(vx, vy float64) (col, row int) {
	col = int(vx * float64(tc.cols()) / clock.ViewBox)
	row = int(vy * float64(tc.rows) / clock.ViewBox)
	return min(max(col, 0), tc.cols()-1), min(max(row, 0), tc.rows-1)
}

// surface returns the widget surface of the grid on screen. Widget
// coordinates are columns horizontally and half rows vertically, so the
// surface is square like the face.
func (tc termClock) surface() widget.Fixed {
	return widget.Fixed{
		Left:   float64(tc.left),
		Top:    2 * float64(tc.top),
		Width:  float64(tc.cols()),
		Height: 2 * float64(tc.rows),
	}
}

// pointer converts a mouse position in screen cells to a widget event.
func (tc termClock) pointer(x, y int) *widget.PointerEvent {
	return &widget.PointerEvent{Kind: widget.Mouse, X: float64(x) + 0.5, Y: 2 * (float64(y) + 0.5)}
}

// screenCell returns the screen cell showing face coordinates (vx, vy).
func (tc termClock) screenCell(vx, vy float64) (x, y int) {
	col, row := tc.cellAt(vx, vy)
	return tc.left + col, tc.top + row
}

type termCell struct {
	glyph string
	color string
}

// render draws t in the colors of th. When editable, the handles of both
// hands are drawn and active is highlighted.
func (tc termClock) render(t clock.Time, th theme.Theme, editable bool, active clock.Hand) string {
	rows, cols := tc.rows, tc.cols()
	grid := make([][]termCell, rows)
	for r := range grid {
		grid[r] = make([]termCell, cols)
	}
	set := func(col, row int, glyph, color string) {
		if row >= 0 && row < rows && col >= 0 && col < cols {
			grid[row][col] = termCell{glyph, color}
		}
	}

	// cell height in face units; cells are half as wide
	step := clock.ViewBox / float64(rows)

	// ring
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			vx, vy := tc.toViewBox(col, row)
			if d := math.Hypot(vx-clock.Center, vy-clock.Center); d >= 92 && d <= 98+step/4 {
				set(col, row, "░", th.Colors.OuterRing)
			}
		}
	}

	// hour markers, numerals
	for n := 1; n <= 12; n++ {
		deg := float64(n) * 30
		col, row := tc.cellAt(clock.Polar(clock.Center, clock.Center, 84, deg))
		set(col, row, "•", th.Colors.HourMarker)

		label := th.Numeral(n)
		col, row = tc.cellAt(clock.Polar(clock.Center, clock.Center, 66, deg))
		start := col - len(label)/2
		for i, ch := range label {
			set(start+i, row, string(ch), th.Colors.Numbers)
		}
	}

	// hands, hour on top
	tc.drawHand(set, clock.HandMinute, clock.MinuteHandDegrees(t.Minute), th, editable, active == clock.HandMinute, step)
	tc.drawHand(set, clock.HandHour, clock.HourHandDegrees(t.Hour, t.Minute), th, editable, active == clock.HandHour, step)

	col, row := tc.cellAt(clock.Center, clock.Center)
	set(col, row, "●", th.Colors.CenterOuter)

	var b strings.Builder
	for r, line := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range line {
			if cell.glyph == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cellStyle(cell.color).Render(cell.glyph))
		}
	}
	return b.String()
}

func (tc termClock) drawHand(set func(col, row int, glyph, color string), h clock.Hand, deg float64, th theme.Theme, editable, active bool, step float64) {
	spec := face.Spec(h)
	color, glyph, width := th.Colors.MinuteHand, "▪", 0.35*step
	handle := th.Colors.HandleMinute
	if h == clock.HandHour {
		color, glyph, width = th.Colors.HourHand, "█", 0.5*step
		handle = th.Colors.HandleHour
	}
	if active {
		color = handle
	}

	tipX, tipY := clock.Polar(clock.Center, clock.Center, spec.Length, deg)
	for row := 0; row < tc.rows; row++ {
		for col := 0; col < tc.cols(); col++ {
			vx, vy := tc.toViewBox(col, row)
			if clock.SegmentDistance(vx, vy, clock.Center, clock.Center, tipX, tipY) <= width {
				set(col, row, glyph, color)
			}
		}
	}
	if editable {
		col, row := tc.cellAt(clock.Polar(clock.Center, clock.Center, spec.HandleDistance, deg))
		set(col, row, "◉", handle)
	}
}

// cellStyle colors a cell. Only hex colors are used; the rgba shadow colors
// of the SVG themes have no terminal equivalent.
func cellStyle(color string) lipgloss.Style {
	if strings.HasPrefix(color, "#") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return lipgloss.NewStyle()
}

package decor

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

// Dial labels in sector order, starting at 12 o'clock.
var (
	hourLabels   = [12]int{12, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	hour24Labels = [12]int{0, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}
)

func renderLearning(buf *bytes.Buffer, d theme.Learning) {
	r := d.Radii

	fmt.Fprintf(buf, `    <circle cx="%.0f" cy="%.0f" r="%.2f" fill="white"/>`+"\n", cx, cy, r.Outer)

	// Minute ring background, one tinted arc per hour sector
	for i, s := range d.Sectors {
		start, end := float64(i)*30, float64(i+1)*30
		fmt.Fprintf(buf, `    <path class="minute-ring" d="%s" fill="%s"/>`+"\n", ArcPath(cx, cy, r.MinuteInner, r.Outer, start, end), s.Light)
	}

	for i := 0; i < 60; i++ {
		deg := float64(i) * 6
		x, y := clock.Polar(cx, cy, r.MinuteLabel, deg)
		fmt.Fprintf(buf, `    <rect class="minute-box" x="%.2f" y="%.2f" width="9" height="10" rx="2" fill="white" transform="rotate(%.0f, %.2f, %.2f)"/>`+"\n",
			x-4.5, y-5, deg, x, y)
	}
	for i := 0; i < 60; i++ {
		x, y := clock.Polar(cx, cy, r.MinuteLabel, float64(i)*6)
		fmt.Fprintf(buf, `    <text class="minute-label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Arial, sans-serif" font-size="6" font-weight="bold" fill="%s">%d</text>`+"\n",
			x, y, d.Sectors[i/5].Dark, i)
	}

	// Two-toned hour segments: light outer tint, dark inner shade
	split := r.SegmentSplit()
	for i, s := range d.Sectors {
		start, end := float64(i)*30, float64(i+1)*30
		buf.WriteString(`    <g class="hour-segment">` + "\n")
		fmt.Fprintf(buf, `      <path d="%s" fill="%s"/>`+"\n", ArcPath(cx, cy, split, r.MinuteInner, start, end), s.Light)
		fmt.Fprintf(buf, `      <path d="%s" fill="%s"/>`+"\n", ArcPath(cx, cy, r.HourInner, split, start, end), s.Dark)
		buf.WriteString("    </g>\n")
	}

	fmt.Fprintf(buf, `    <circle cx="%.0f" cy="%.0f" r="%.2f" fill="white"/>`+"\n", cx, cy, r.Hub)

	for i, n := range hourLabels {
		x, y := clock.Polar(cx, cy, r.HourNumeral, float64(i)*30)
		fmt.Fprintf(buf, `    <text class="hour-label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="white">%d</text>`+"\n",
			x, y, n)
	}
	for i, n := range hour24Labels {
		x, y := clock.Polar(cx, cy, r.Hour24Numeral, float64(i)*30)
		fmt.Fprintf(buf, `    <text class="hour24-label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="Arial, sans-serif" font-size="9" font-weight="normal" fill="%s">%d</text>`+"\n",
			x, y, d.Sectors[i].Dark, n)
	}
}

// ArcPath returns the SVG path of the annular sector between radii inner and
// outer, spanning clock angles start to end clockwise.
func ArcPath(cx, cy, inner, outer, start, end float64) string {
	x1, y1 := clock.Polar(cx, cy, inner, start)
	x2, y2 := clock.Polar(cx, cy, outer, start)
	x3, y3 := clock.Polar(cx, cy, outer, end)
	x4, y4 := clock.Polar(cx, cy, inner, end)
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 0 %.2f %.2f Z",
		x1, y1, x2, y2, outer, outer, x3, y3, x4, y4, inner, inner, x1, y1)
}

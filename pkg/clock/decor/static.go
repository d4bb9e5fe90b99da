package decor

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

func renderTower(buf *bytes.Buffer, d theme.Tower) {
	if d.Stones > 0 {
		step := 360.0 / float64(d.Stones)
		for i := 0; i < d.Stones; i++ {
			x, y := clock.Polar(cx, cy, d.StoneRadius, float64(i)*step)
			fmt.Fprintf(buf, `    <rect class="stone" x="%.2f" y="%.2f" width="8" height="6" rx="1" fill="%s" opacity="0.3"/>`+"\n",
				x-4, y-3, d.StoneColor)
		}
	}

	// Gothic spires at 12 and 6 o'clock
	fmt.Fprintf(buf, `    <path class="spire" d="M100 8 L103 14 L100 12 L97 14 Z" fill="%s"/>`+"\n", d.SpireColor)
	fmt.Fprintf(buf, `    <path class="spire" d="M100 192 L103 186 L100 188 L97 186 Z" fill="%s"/>`+"\n", d.SpireColor)

	fmt.Fprintf(buf, `    <circle class="knob" cx="100" cy="6" r="3" fill="%s"/>`+"\n", d.KnobColor)
	fmt.Fprintf(buf, `    <circle class="knob" cx="100" cy="194" r="3" fill="%s"/>`+"\n", d.KnobColor)
}

func renderCuckoo(buf *bytes.Buffer, d theme.Cuckoo) {
	grain := [...]struct{ x, y, rx, ry float64 }{
		{70, 50, 15, 3},
		{130, 70, 12, 2},
		{80, 140, 18, 3},
	}
	for _, g := range grain {
		fmt.Fprintf(buf, `    <ellipse class="grain" cx="%.0f" cy="%.0f" rx="%.0f" ry="%.0f" fill="%s" opacity="0.2"/>`+"\n",
			g.x, g.y, g.rx, g.ry, d.GrainColor)
	}

	// Leaves over 12 o'clock
	buf.WriteString(`    <g class="leaves" transform="translate(100, 12)">` + "\n")
	fmt.Fprintf(buf, `      <ellipse cx="-12" cy="0" rx="6" ry="3" fill="%s" transform="rotate(-30, -12, 0)"/>`+"\n", d.LeafColor)
	fmt.Fprintf(buf, `      <ellipse cx="12" cy="0" rx="6" ry="3" fill="%s" transform="rotate(30, 12, 0)"/>`+"\n", d.LeafColor)
	fmt.Fprintf(buf, `      <ellipse cx="0" cy="-4" rx="5" ry="3" fill="%s"/>`+"\n", d.LeafHighlight)
	buf.WriteString("    </g>\n")

	// Birds at 9 and 3 o'clock, the right one mirrored
	for _, transform := range []string{"translate(22, 100)", "translate(178, 100) scale(-1, 1)"} {
		fmt.Fprintf(buf, `    <g class="bird" transform="%s">`+"\n", transform)
		fmt.Fprintf(buf, `      <ellipse cx="0" cy="0" rx="4" ry="3" fill="%s"/>`+"\n", d.BirdColor)
		fmt.Fprintf(buf, `      <circle cx="-3" cy="-1" r="2" fill="%s"/>`+"\n", d.BirdColor)
		fmt.Fprintf(buf, `      <path d="M-5 -1 L-8 0 L-5 1" fill="%s"/>`+"\n", d.BeakColor)
		buf.WriteString("    </g>\n")
	}

	// Acorns below 6 o'clock
	for _, x := range []int{85, 115} {
		fmt.Fprintf(buf, `    <g class="acorn" transform="translate(%d, 188)">`+"\n", x)
		fmt.Fprintf(buf, `      <ellipse cx="0" cy="0" rx="4" ry="5" fill="%s"/>`+"\n", d.AcornColor)
		fmt.Fprintf(buf, `      <rect x="-3" y="-7" width="6" height="3" rx="1" fill="%s"/>`+"\n", d.AcornCap)
		buf.WriteString("    </g>\n")
	}
}

func renderWatch(buf *bytes.Buffer, d theme.Watch) {
	buf.WriteString(`    <ellipse class="glare" cx="60" cy="40" rx="20" ry="10" fill="white" opacity="0.15" transform="rotate(-45, 60, 40)"/>` + "\n")

	// Crown at 3 o'clock
	buf.WriteString(`    <g class="crown" transform="translate(194, 100)">` + "\n")
	fmt.Fprintf(buf, `      <rect x="0" y="-4" width="6" height="8" rx="1" fill="%s"/>`+"\n", d.CrownColor)
	fmt.Fprintf(buf, `      <rect x="2" y="-6" width="4" height="12" rx="1" fill="%s"/>`+"\n", d.CrownCap)
	for _, x := range []int{3, 5} {
		fmt.Fprintf(buf, `      <line x1="%d" y1="-5" x2="%d" y2="5" stroke="%s" stroke-width="0.5"/>`+"\n", x, x, d.RidgeColor)
	}
	buf.WriteString("    </g>\n")

	if d.Brand != "" {
		fmt.Fprintf(buf, `    <text class="brand" x="100" y="65" text-anchor="middle" font-size="6" font-weight="bold" fill="%s" letter-spacing="1">%s</text>`+"\n",
			d.BrandColor, EscapeXML(d.Brand))
	}

	fmt.Fprintf(buf, `    <rect class="date-window" x="125" y="96" width="14" height="10" rx="1" fill="white" stroke="%s" stroke-width="0.5"/>`+"\n", d.DateFrame)
}

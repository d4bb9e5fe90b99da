// Package decor renders the per-theme ornament layer of a clock face.
//
// [Render] writes an SVG group for a [theme.Decoration]. The output depends
// only on the decoration record: it never sees the time shown by the hands.
// Static variants (tower, cuckoo, watch) draw fixed shapes; the learning
// variant computes a complete teaching face by sampling 12 or 60 equally
// spaced angles at fixed radii.
//
// [Defs] writes the patterns and gradients the ornaments and ring fills
// reference, and [ReplacesFace] tells a face renderer whether the stock
// ring, face, markers and numerals should be suppressed.
package decor

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

const cx, cy = clock.Center, clock.Center

// Pattern and gradient ids referenced by RingFill.
const (
	WoodPatternID = "woodPattern"
	MetalShineID  = "metalShine"
)

// Render writes the decoration layer for d. A nil decoration writes nothing.
func Render(buf *bytes.Buffer, d theme.Decoration) {
	if d == nil {
		return
	}
	buf.WriteString(`  <g class="decorations">` + "\n")
	switch d := d.(type) {
	case theme.Tower:
		renderTower(buf, d)
	case theme.Cuckoo:
		renderCuckoo(buf, d)
	case theme.Watch:
		renderWatch(buf, d)
	case theme.Learning:
		renderLearning(buf, d)
	}
	buf.WriteString("  </g>\n")
}

// Defs writes the <defs> entries used by d.
func Defs(buf *bytes.Buffer, d theme.Decoration) {
	switch d := d.(type) {
	case theme.Cuckoo:
		fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="10" height="10">`+"\n", WoodPatternID)
		buf.WriteString(`      <rect width="10" height="10" fill="#5d4037"/>` + "\n")
		fmt.Fprintf(buf, `      <path d="M0 5 Q 5 3, 10 5" stroke="%s" stroke-width="0.5" fill="none" opacity="0.3"/>`+"\n", d.PatternStroke)
		buf.WriteString("    </pattern>\n")
	case theme.Watch:
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+"\n", MetalShineID)
		fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", d.Metal[0])
		fmt.Fprintf(buf, `      <stop offset="50%%" stop-color="%s"/>`+"\n", d.Metal[1])
		fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", d.Metal[2])
		buf.WriteString("    </linearGradient>\n")
	}
}

// RingFill returns the fill for the outer ring, or fallback when the
// decoration has no special ring material.
func RingFill(d theme.Decoration, fallback string) string {
	switch d.(type) {
	case theme.Cuckoo:
		return "url(#" + WoodPatternID + ")"
	case theme.Watch:
		return "url(#" + MetalShineID + ")"
	}
	return fallback
}

// ReplacesFace reports whether d draws its own face in place of the stock
// ring, face gradient, minute markers and numerals.
func ReplacesFace(d theme.Decoration) bool {
	_, ok := d.(theme.Learning)
	return ok
}

// DateAnchor returns where the day of month is typeset inside the watch
// date window. ok is false for decorations without one.
func DateAnchor(d theme.Decoration) (x, y float64, ok bool) {
	if _, isWatch := d.(theme.Watch); isWatch {
		return 132, 103, true
	}
	return 0, 0, false
}

// EscapeXML escapes s for use in SVG text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Package face renders complete analog clock faces as SVG.
//
// # Overview
//
// [RenderSVG] composes the stock face (outer ring, gradient face, minute
// markers, numerals), the theme's decoration layer from package decor, both
// hands and the center cap. Learning themes replace the stock face entirely
// with their decoration.
//
// Basic usage:
//
//	svg := face.RenderSVG(clock.Time{Hour: 10, Minute: 30},
//	    face.WithTheme(theme.Lookup(theme.IDTower)),
//	    face.WithSize(320),
//	    face.WithEditable(),
//	)
//
// # Hands
//
// Each hand is drawn as a group: a soft shadow offset by one unit, the
// visible stroke, a wide transparent hit line for easier grabbing, and (when
// editable) a handle disc recolored while the hand is being dragged. The hour
// hand group is drawn last so it sits on top. [Spec] exposes the geometry so
// interaction code can hit-test the same shapes.
package face

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/decor"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

// DefaultSize is the rendered width and height in pixels.
const DefaultSize = 280

const c = clock.Center

// HandSpec is the geometry of one hand in viewBox units.
type HandSpec struct {
	Length         float64 // from the hub to the tip
	Width          float64 // visible stroke width
	ActiveWidth    float64 // visible stroke width while dragged
	ShadowWidth    float64
	HitWidth       float64 // width of the invisible grab region
	HandleDistance float64 // distance of the handle disc from the hub
	HandleRadius   float64
}

var (
	hourSpec = HandSpec{
		Length: 62, Width: 6, ActiveWidth: 8, ShadowWidth: 8,
		HitWidth: 24, HandleDistance: 30, HandleRadius: 12,
	}
	minuteSpec = HandSpec{
		Length: 82, Width: 4, ActiveWidth: 5, ShadowWidth: 5,
		HitWidth: 20, HandleDistance: 45, HandleRadius: 10,
	}
)

// Spec returns the geometry of hand h.
func Spec(h clock.Hand) HandSpec {
	if h == clock.HandHour {
		return hourSpec
	}
	return minuteSpec
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme    theme.Theme
	size     int
	editable bool
	active   clock.Hand
	day      int
}

// WithTheme sets the palette and decoration. The default is theme.Default.
func WithTheme(th theme.Theme) SVGOption { return func(r *svgRenderer) { r.theme = th } }

// WithSize sets the width and height in pixels. Non-positive sizes use
// DefaultSize.
func WithSize(px int) SVGOption { return func(r *svgRenderer) { r.size = px } }

// WithEditable draws the drag handles of both hands.
func WithEditable() SVGOption { return func(r *svgRenderer) { r.editable = true } }

// WithActiveHand highlights h as the hand being dragged.
func WithActiveHand(h clock.Hand) SVGOption { return func(r *svgRenderer) { r.active = h } }

// WithDate shows day (1–31) in the date window of themes that have one.
func WithDate(day int) SVGOption { return func(r *svgRenderer) { r.day = day } }

// RenderSVG renders t as a complete SVG document.
func RenderSVG(t clock.Time, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	th := r.theme

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%d" height="%d" class="clock clock-%s">`+"\n",
		clock.ViewBox, clock.ViewBox, r.size, r.size, th.ID)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", t)

	renderDefs(&buf, th)

	replaced := decor.ReplacesFace(th.Decoration)
	if !replaced {
		renderRing(&buf, th)
	}
	decor.Render(&buf, th.Decoration)
	if !replaced {
		renderMarkers(&buf, th)
		renderNumerals(&buf, th)
	}
	if r.day > 0 {
		renderDate(&buf, th, r.day)
	}

	r.renderHand(&buf, clock.HandMinute, clock.MinuteHandDegrees(t.Minute))
	r.renderHand(&buf, clock.HandHour, clock.HourHandDegrees(t.Hour, t.Minute))
	renderCenter(&buf, th)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: theme.Lookup(theme.Default), size: DefaultSize}
	for _, opt := range opts {
		opt(&r)
	}
	if r.size <= 0 {
		r.size = DefaultSize
	}
	if r.theme.ID == "" {
		r.theme = theme.Lookup(theme.Default)
	}
	return r
}

func renderDefs(buf *bytes.Buffer, th theme.Theme) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <linearGradient id="clockFace-%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+"\n", th.ID)
	fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", th.Colors.FaceGradientStart)
	fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", th.Colors.FaceGradientEnd)
	buf.WriteString("    </linearGradient>\n")
	decor.Defs(buf, th.Decoration)
	buf.WriteString("  </defs>\n")
}

func renderRing(buf *bytes.Buffer, th theme.Theme) {
	fmt.Fprintf(buf, `  <circle class="ring" cx="100" cy="100" r="98" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		decor.RingFill(th.Decoration, th.Colors.OuterRing), th.Colors.OuterRingStroke)
	fmt.Fprintf(buf, `  <circle class="face" cx="100" cy="100" r="90" fill="url(#clockFace-%s)"/>`+"\n", th.ID)
}

func renderMarkers(buf *bytes.Buffer, th theme.Theme) {
	buf.WriteString(`  <g class="markers">` + "\n")
	for i := 0; i < 60; i++ {
		inner, width, color := 83.0, 1.5, th.Colors.MinuteMarker
		if i%5 == 0 {
			inner, width, color = 78, 3, th.Colors.HourMarker
		}
		deg := float64(i) * 6
		x1, y1 := clock.Polar(c, c, inner, deg)
		x2, y2 := clock.Polar(c, c, 88, deg)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
			x1, y1, x2, y2, color, num(width))
	}
	buf.WriteString("  </g>\n")
}

func renderNumerals(buf *bytes.Buffer, th theme.Theme) {
	radius := 65.0
	if th.RomanNumerals {
		radius = 62
	}
	f := th.Numerals
	buf.WriteString(`  <g class="numerals">` + "\n")
	for n := 1; n <= 12; n++ {
		x, y := clock.Polar(c, c, radius, float64(n)*30)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" font-weight="%s" fill="%s">%s</text>`+"\n",
			x, y, decor.EscapeXML(f.Family), num(f.Size), f.Weight, th.Colors.Numbers, th.Numeral(n))
	}
	buf.WriteString("  </g>\n")
}

func renderDate(buf *bytes.Buffer, th theme.Theme, day int) {
	x, y, ok := decor.DateAnchor(th.Decoration)
	if !ok {
		return
	}
	color := th.Colors.Numbers
	if w, isWatch := th.Decoration.(theme.Watch); isWatch {
		color = w.DateColor
	}
	fmt.Fprintf(buf, `  <text class="date" x="%s" y="%s" text-anchor="middle" font-size="6" font-weight="bold" fill="%s">%d</text>`+"\n",
		num(x), num(y), color, day)
}

func (r *svgRenderer) renderHand(buf *bytes.Buffer, h clock.Hand, deg float64) {
	spec := Spec(h)
	stroke, handle := r.theme.Colors.MinuteHand, r.theme.Colors.HandleMinute
	if h == clock.HandHour {
		stroke, handle = r.theme.Colors.HourHand, r.theme.Colors.HandleHour
	}
	active := r.active == h
	width := spec.Width
	if active {
		width = spec.ActiveWidth
	}

	rot := fmt.Sprintf("rotate(%s, 100, 100)", num(deg))
	tipY := num(c - spec.Length)

	class := "hand hand-" + h.String()
	if active {
		class += " active"
	}
	fmt.Fprintf(buf, `  <g class="%s" data-hand="%s">`+"\n", class, h)
	fmt.Fprintf(buf, `    <line class="hand-shadow" x1="100" y1="100" x2="100" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" transform="%s translate(1, 1)"/>`+"\n",
		tipY, r.theme.Colors.HandShadow, num(spec.ShadowWidth), rot)
	fmt.Fprintf(buf, `    <line class="hand-stroke" x1="100" y1="100" x2="100" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" transform="%s"/>`+"\n",
		tipY, stroke, num(width), rot)

	cursor := ""
	if r.editable {
		cursor = ` style="cursor: grab"`
	}
	fmt.Fprintf(buf, `    <line class="hand-hit" x1="100" y1="100" x2="100" y2="%s" stroke="transparent" stroke-width="%s" stroke-linecap="round" transform="%s"%s/>`+"\n",
		tipY, num(spec.HitWidth), rot, cursor)

	if r.editable {
		fill := stroke
		if active {
			fill = handle
		}
		x, y := clock.Polar(c, c, spec.HandleDistance, deg)
		fmt.Fprintf(buf, `    <circle class="hand-handle" cx="%.2f" cy="%.2f" r="%s" fill="%s" stroke="white" stroke-width="2"%s/>`+"\n",
			x, y, num(spec.HandleRadius), fill, cursor)
	}
	buf.WriteString("  </g>\n")
}

func renderCenter(buf *bytes.Buffer, th theme.Theme) {
	fmt.Fprintf(buf, `  <circle class="hub" cx="100" cy="100" r="8" fill="%s"/>`+"\n", th.Colors.CenterOuter)
	fmt.Fprintf(buf, `  <circle class="hub" cx="100" cy="100" r="4" fill="%s"/>`+"\n", th.Colors.CenterInner)
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

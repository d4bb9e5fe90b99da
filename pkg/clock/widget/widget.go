package widget

import (
	"math"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/face"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

// Props are the owner-supplied inputs of a Widget.
type Props struct {
	Hour   int // 0–23
	Minute int // 0–59

	// OnHourChange receives a proposed hour on the 12-hour dial, 0–11.
	OnHourChange func(hour int)
	// OnMinuteChange receives a proposed minute, 0–59.
	OnMinuteChange func(minute int)

	Theme         theme.ID
	AllowTimeEdit bool
	Size          int // pixels; 0 means face.DefaultSize
}

// DragState is the transient interaction state of a widget.
type DragState struct {
	Active clock.Hand
}

// Widget is an interactive clock face.
type Widget struct {
	doc     *Document
	surface Surface
	props   Props
	drag    DragState
	sub     *Subscription
}

// New creates a widget rendered on surface that listens on doc while dragging.
func New(doc *Document, surface Surface, props Props) *Widget {
	return &Widget{doc: doc, surface: surface, props: props}
}

// Props returns the current props.
func (w *Widget) Props() Props { return w.props }

// SetProps replaces the props, typically after the owner accepted a change.
// A running drag ends when editing is no longer possible.
func (w *Widget) SetProps(p Props) {
	w.props = p
	if !w.CanDrag() {
		w.endDrag()
	}
}

// CanDrag reports whether hands may be dragged.
func (w *Widget) CanDrag() bool {
	return w.props.AllowTimeEdit && w.props.OnHourChange != nil && w.props.OnMinuteChange != nil
}

// Drag returns the current drag state.
func (w *Widget) Drag() DragState { return w.drag }

// Dragging reports whether a drag session is active.
func (w *Widget) Dragging() bool { return w.sub != nil }

// PointerDown begins a drag session on hand h. It reports whether a session
// was started.
func (w *Widget) PointerDown(h clock.Hand, ev *PointerEvent) bool {
	if !w.CanDrag() || h == clock.HandNone {
		return false
	}
	if ev != nil {
		ev.PreventDefault()
	}
	w.endDrag()
	w.drag.Active = h

	var sub *Subscription
	sub = subscribe(w.doc, w.handleMove, w.handleUp, func() {
		if w.sub == sub {
			w.sub = nil
			w.drag = DragState{}
		}
	})
	w.sub = sub
	return true
}

// PointerDownAt hit-tests ev and begins a drag on the hand under it.
func (w *Widget) PointerDownAt(ev *PointerEvent) bool {
	return w.PointerDown(w.HitTest(ev.X, ev.Y), ev)
}

// Close ends any drag session and releases its listeners.
func (w *Widget) Close() {
	w.endDrag()
}

func (w *Widget) endDrag() {
	if w.sub != nil {
		w.sub.Release()
	}
}

func (w *Widget) handleUp(*PointerEvent) {
	w.endDrag()
}

func (w *Widget) handleMove(ev *PointerEvent) {
	ev.PreventDefault()

	hand := w.drag.Active
	if hand == clock.HandNone || !w.CanDrag() {
		return
	}
	r, ok := w.surface.Bounds()
	if !ok {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			w.endDrag()
			panic(p)
		}
	}()

	cx, cy := r.Center()
	angle := clock.PointerAngle(cx, cy, ev.X, ev.Y)
	switch hand {
	case clock.HandHour:
		w.props.OnHourChange(clock.AngleToHour(angle))
	case clock.HandMinute:
		w.props.OnMinuteChange(clock.AngleToMinute(angle))
	}
}

// HitTest returns the hand whose grab region contains the client position
// (x, y). The hour hand is drawn on top and wins where both overlap.
func (w *Widget) HitTest(x, y float64) clock.Hand {
	r, ok := w.surface.Bounds()
	if !ok {
		return clock.HandNone
	}
	vx := (x - r.Left) * clock.ViewBox / r.Width
	vy := (y - r.Top) * clock.ViewBox / r.Height

	for _, h := range []clock.Hand{clock.HandHour, clock.HandMinute} {
		if w.hits(h, vx, vy) {
			return h
		}
	}
	return clock.HandNone
}

func (w *Widget) hits(h clock.Hand, vx, vy float64) bool {
	spec := face.Spec(h)
	deg := clock.MinuteHandDegrees(w.props.Minute)
	if h == clock.HandHour {
		deg = clock.HourHandDegrees(w.props.Hour, w.props.Minute)
	}

	if w.CanDrag() {
		hx, hy := clock.Polar(clock.Center, clock.Center, spec.HandleDistance, deg)
		if math.Hypot(vx-hx, vy-hy) <= spec.HandleRadius {
			return true
		}
	}
	tx, ty := clock.Polar(clock.Center, clock.Center, spec.Length, deg)
	return clock.SegmentDistance(vx, vy, clock.Center, clock.Center, tx, ty) <= spec.HitWidth/2
}

// Render draws the widget in its current state.
func (w *Widget) Render() []byte {
	return face.RenderSVG(clock.Time{Hour: w.props.Hour, Minute: w.props.Minute}, w.svgOptions()...)
}

func (w *Widget) svgOptions() []face.SVGOption {
	opts := []face.SVGOption{
		face.WithTheme(theme.Lookup(w.props.Theme)),
		face.WithSize(w.props.Size),
	}
	if w.CanDrag() {
		opts = append(opts, face.WithEditable(), face.WithActiveHand(w.drag.Active))
	}
	return opts
}

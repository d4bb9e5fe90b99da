// Package widget implements the interactive, drag-capable clock face.
//
// # Controlled Component
//
// A [Widget] never owns the time it shows. Its [Props] carry the hour and
// minute from the owner together with two change callbacks; dragging a hand
// reports proposed values through those callbacks on every pointer move,
// and the owner decides whether to accept them and feed them back via
// [Widget.SetProps].
//
// # Drag Sessions
//
// A pointer-down on a hand starts a drag session only when editing is
// allowed and both callbacks are set. The session acquires document-level
// listeners for mouse and touch moves and releases ([Document]) through a
// [Subscription]; the listeners exist only while the session lasts. The
// subscription is released on pointer-up anywhere in the document, on
// [Widget.Close], when a new session replaces it, and when a change
// callback panics.
//
//	doc := widget.NewDocument()
//	w := widget.New(doc, widget.Fixed{Width: 280, Height: 280}, widget.Props{
//	    Hour: 10, Minute: 30,
//	    OnHourChange:   owner.SetHour,
//	    OnMinuteChange: owner.SetMinute,
//	    AllowTimeEdit:  true,
//	})
//	defer w.Close()
//
//	w.PointerDown(clock.HandMinute, &widget.PointerEvent{X: 140, Y: 20})
//	doc.Dispatch(widget.MouseMove, &widget.PointerEvent{X: 260, Y: 140})
//	doc.Dispatch(widget.MouseUp, &widget.PointerEvent{})
//
// A Widget is driven from a single event loop and is not safe for
// concurrent use.
package widget

package widget

import "sync"

// EventType names a document-level pointer event.
type EventType string

const (
	MouseMove EventType = "mousemove"
	MouseUp   EventType = "mouseup"
	TouchMove EventType = "touchmove"
	TouchEnd  EventType = "touchend"
)

// PointerKind distinguishes mouse from touch input.
type PointerKind int

const (
	Mouse PointerKind = iota
	Touch
)

// PointerEvent is a pointer position in client coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling, such as scrolling
// on touch moves.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// Handler handles a dispatched pointer event.
type Handler func(*PointerEvent)

type entry struct {
	id int
	fn Handler
}

// Document is the document-level event target drag sessions listen on.
// It is safe for concurrent use; handlers run on the dispatching goroutine.
type Document struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventType][]entry
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{listeners: make(map[EventType][]entry)}
}

// Listen registers fn for events of type t. The returned Listener removes it.
func (d *Document) Listen(t EventType, fn Handler) *Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners[t] = append(d.listeners[t], entry{id: d.nextID, fn: fn})
	return &Listener{doc: d, typ: t, id: d.nextID}
}

// Dispatch delivers ev to every listener registered for t, in registration
// order. Listeners added or removed by a handler take effect for the next
// dispatch.
func (d *Document) Dispatch(t EventType, ev *PointerEvent) {
	d.mu.Lock()
	handlers := make([]Handler, len(d.listeners[t]))
	for i, e := range d.listeners[t] {
		handlers[i] = e.fn
	}
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// ListenerCount returns the number of listeners registered for t.
func (d *Document) ListenerCount(t EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[t])
}

func (d *Document) remove(t EventType, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.listeners[t]
	for i, e := range list {
		if e.id == id {
			d.listeners[t] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(d.listeners[t]) == 0 {
		delete(d.listeners, t)
	}
}

// Listener is a registered document listener.
type Listener struct {
	doc  *Document
	typ  EventType
	id   int
	once sync.Once
}

// Remove unregisters the listener. It is safe to call more than once.
func (l *Listener) Remove() {
	l.once.Do(func() { l.doc.remove(l.typ, l.id) })
}

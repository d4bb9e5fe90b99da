package widget

import "sync"

// Subscription owns the document listeners of one drag session.
type Subscription struct {
	listeners []*Listener
	once      sync.Once
	onRelease func()
}

// subscribe acquires move and release listeners for both mouse and touch.
func subscribe(doc *Document, move, up Handler, onRelease func()) *Subscription {
	s := &Subscription{onRelease: onRelease}
	s.listeners = []*Listener{
		doc.Listen(MouseMove, move),
		doc.Listen(MouseUp, up),
		doc.Listen(TouchMove, move),
		doc.Listen(TouchEnd, up),
	}
	return s
}

// Release removes every listener. Only the first call has an effect.
func (s *Subscription) Release() {
	s.once.Do(func() {
		for _, l := range s.listeners {
			l.Remove()
		}
		if s.onRelease != nil {
			s.onRelease()
		}
	})
}

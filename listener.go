package tui

// Handler receives an event. Returning true marks the event handled and
// stops delivery to later handlers of the same emitter.
type Handler func(Event) bool

// ListenerID identifies a registration for Off.
type ListenerID uint64

// Emitter is anything that can act as an event source. Root and Component
// implement it; widgets embed *Component to inherit it.
type Emitter interface {
	On(kind EventKind, h Handler) ListenerID
	Off(id ListenerID)
	Emit(kind EventKind, ev Event) bool
}

type listener struct {
	kind EventKind
	id   ListenerID
	fn   Handler
}

// listeners is a per-emitter table of (kind, handler) pairs. The live slice
// is never mutated in place, so a frozen snapshot stays valid while handlers
// register or remove listeners during dispatch.
type listeners struct {
	live     []listener
	frozen   []listener
	isFrozen bool
	next     ListenerID
}

func (l *listeners) on(kind EventKind, fn Handler) ListenerID {
	l.next++
	live := make([]listener, len(l.live), len(l.live)+1)
	copy(live, l.live)
	l.live = append(live, listener{kind: kind, id: l.next, fn: fn})
	return l.next
}

func (l *listeners) off(id ListenerID) {
	for i, ln := range l.live {
		if ln.id != id {
			continue
		}
		live := make([]listener, 0, len(l.live)-1)
		live = append(live, l.live[:i]...)
		l.live = append(live, l.live[i+1:]...)
		return
	}
}

// freeze pins the current table for delivery until thaw.
func (l *listeners) freeze() {
	l.frozen = l.live
	l.isFrozen = true
}

func (l *listeners) thaw() {
	l.frozen = nil
	l.isFrozen = false
}

func (l *listeners) snapshot() []listener {
	if l.isFrozen {
		return l.frozen
	}
	return l.live
}

func (l *listeners) emit(kind EventKind, ev Event) bool {
	for _, ln := range l.snapshot() {
		if ln.kind == kind && ln.fn(ev) {
			return true
		}
	}
	return false
}

func (l *listeners) clear() {
	l.live = nil
	l.frozen = nil
}

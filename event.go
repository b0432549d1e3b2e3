package tui

import "time"

// EventKind names a class of events for listener registration.
type EventKind string

const (
	EventKeyPress    EventKind = "keyPress"
	EventMousePress  EventKind = "mousePress"
	EventPaste       EventKind = "paste"
	EventValueChange EventKind = "valueChange"
	EventStateChange EventKind = "stateChange"
	EventDestroy     EventKind = "destroy"
	EventTick        EventKind = "tick"
	EventResize      EventKind = "resize"
)

// Event is implemented by every value delivered to listeners.
// Use a type switch to handle specific event types.
type Event interface {
	Kind() EventKind
}

// Paste carries the body of a bracketed paste.
type Paste struct {
	Text string
}

// Kind implements Event.
func (Paste) Kind() EventKind { return EventPaste }

// Resize is emitted when the terminal size changes.
type Resize struct {
	Columns int
	Rows    int
}

// Kind implements Event.
func (Resize) Kind() EventKind { return EventResize }

// ValueChange is emitted by components whose value changed, e.g. a slider.
type ValueChange struct {
	Value any
}

// Kind implements Event.
func (ValueChange) Kind() EventKind { return EventValueChange }

// StateChange is emitted on a component when the dispatcher moves it between states.
type StateChange struct {
	From State
	To   State
}

// Kind implements Event.
func (StateChange) Kind() EventKind { return EventStateChange }

// Destroyed is emitted on a component as it is destroyed, before its
// listeners are dropped.
type Destroyed struct{}

// Kind implements Event.
func (Destroyed) Kind() EventKind { return EventDestroy }

// Tick is yielded by the scheduler after every flushed frame.
type Tick struct {
	// Frame counts ticks starting at 1.
	Frame uint64
	// Elapsed is the time since Run started.
	Elapsed time.Duration
	// Delta is the time since the previous tick.
	Delta time.Duration
	// FPS is the smoothed flush rate.
	FPS float64
	// Skipped is how many ticks were dropped since the previous one because
	// the loop fell behind.
	Skipped int
}

// Kind implements Event.
func (Tick) Kind() EventKind { return EventTick }

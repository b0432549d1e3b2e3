package tui

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDestroyed is returned when a component is created under a parent that
// has already been destroyed.
var ErrDestroyed = errors.New("tui: component destroyed")

// DecodeError describes an input sequence the decoder discarded.
// It never leaves the decoder; it is only logged and counted.
type DecodeError struct {
	Seq    []byte
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tui: discarded input %s: %s", strconv.Quote(string(e.Seq)), e.Reason)
}

// SinkWriteError wraps a failed write to the canvas output. It is fatal to
// the scheduler.
type SinkWriteError struct {
	Err error
}

func (e *SinkWriteError) Error() string {
	return "tui: write to output: " + e.Err.Error()
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// InvalidGeometryError is returned when a component rectangle has a
// negative width or height.
type InvalidGeometryError struct {
	Rect Rect
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("tui: invalid geometry %dx%d at (%d,%d)",
		e.Rect.Width, e.Rect.Height, e.Rect.Column, e.Rect.Row)
}

package tui

import "context"

// Size is a terminal size in cells.
type Size struct {
	Columns int
	Rows    int
}

// Terminal is the platform side of the scheduler: raw mode, size queries
// and resize notifications. Output goes through the Canvas and input through
// the scheduler's reader, so neither appears here.
type Terminal interface {
	// EnterRawMode disables line buffering, echo and signal keys.
	EnterRawMode() error
	// ExitRawMode restores the mode saved by EnterRawMode.
	ExitRawMode() error
	// Size returns the current size.
	Size() (cols, rows int, err error)
	// WatchResize sends the new size on out after every change until ctx is
	// done. It blocks, so the scheduler runs it on its own goroutine.
	WatchResize(ctx context.Context, out chan<- Size) error
	// Close releases the terminal. A blocked Read on its input returns.
	Close() error
}

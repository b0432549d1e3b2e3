package tui

import (
	"context"
	"errors"
	"sync"
)

// MockTerminal is an in-memory Terminal for tests. It records raw mode
// transitions and lets tests inject resize notifications.
type MockTerminal struct {
	mu sync.Mutex

	cols, rows int
	sizeErr    error

	inRawMode  bool
	rawEnters  int
	rawExits   int
	closed     bool
	resizeChan chan Size
}

// Ensure MockTerminal implements Terminal.
var _ Terminal = (*MockTerminal)(nil)

// NewMockTerminal creates a mock terminal with the given size.
func NewMockTerminal(cols, rows int) *MockTerminal {
	return &MockTerminal{
		cols:       cols,
		rows:       rows,
		resizeChan: make(chan Size, 8),
	}
}

// EnterRawMode records the transition.
func (m *MockTerminal) EnterRawMode() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("mock terminal closed")
	}
	m.inRawMode = true
	m.rawEnters++
	return nil
}

// ExitRawMode records the transition.
func (m *MockTerminal) ExitRawMode() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inRawMode {
		m.rawExits++
	}
	m.inRawMode = false
	return nil
}

// Size returns the current size, or the error set with SetSizeError.
func (m *MockTerminal) Size() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sizeErr != nil {
		return 0, 0, m.sizeErr
	}
	return m.cols, m.rows, nil
}

// SetSizeError makes Size fail.
func (m *MockTerminal) SetSizeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizeErr = err
}

// Resize changes the size and notifies the watcher, as SIGWINCH would.
func (m *MockTerminal) Resize(cols, rows int) {
	m.mu.Lock()
	m.cols, m.rows = cols, rows
	m.mu.Unlock()
	m.resizeChan <- Size{Columns: cols, Rows: rows}
}

// WatchResize forwards sizes injected with Resize until ctx is done.
func (m *MockTerminal) WatchResize(ctx context.Context, out chan<- Size) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-m.resizeChan:
			select {
			case out <- s:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Close marks the terminal closed.
func (m *MockTerminal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// InRawMode reports whether raw mode is on.
func (m *MockTerminal) InRawMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inRawMode
}

// RawModeTransitions returns how many times raw mode was entered and exited.
func (m *MockTerminal) RawModeTransitions() (enters, exits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawEnters, m.rawExits
}

// Closed reports whether Close was called.
func (m *MockTerminal) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

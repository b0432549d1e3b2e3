//go:build !unix

package tui

import (
	"context"
	"errors"
	"io"
)

// TTY is unavailable on this platform.
type TTY struct{}

var _ Terminal = (*TTY)(nil)

// OpenTTY always fails on platforms without termios.
func OpenTTY() (*TTY, error) {
	return nil, errors.New("tui: terminal support requires a unix platform")
}

func (t *TTY) EnterRawMode() error { return nil }
func (t *TTY) ExitRawMode() error { return nil }
func (t *TTY) Size() (int, int, error) { return 0, 0, errors.New("tui: unsupported platform") }
func (t *TTY) Read([]byte) (int, error) { return 0, io.EOF }
func (t *TTY) Write(p []byte) (int, error) { return len(p), nil }
func (t *TTY) Close() error { return nil }

func (t *TTY) WatchResize(ctx context.Context, _ chan<- Size) error {
	<-ctx.Done()
	return nil
}

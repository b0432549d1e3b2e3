//go:build unix

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTimeoutMs bounds how long Read waits before rechecking Close.
const pollTimeoutMs = 100

// TTY is the unix Terminal backed by stdin and stdout. It is also the
// io.Reader for input and the io.Writer for the canvas.
type TTY struct {
	in       *os.File
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State
	closed   atomic.Bool
}

var _ Terminal = (*TTY)(nil)

// OpenTTY returns a TTY on the process's stdin and stdout.
func OpenTTY() (*TTY, error) {
	t := &TTY{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
	if !term.IsTerminal(t.inFd) {
		return nil, errors.New("tui: stdin is not a terminal")
	}
	return t, nil
}

// EnterRawMode puts stdin into raw mode and remembers the previous state.
func (t *TTY) EnterRawMode() error {
	if t.oldState != nil {
		return nil
	}
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.oldState = old
	return nil
}

// ExitRawMode restores the terminal state saved by EnterRawMode.
func (t *TTY) ExitRawMode() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Size returns the window size of stdout.
func (t *TTY) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// WatchResize forwards SIGWINCH as sizes until ctx is done.
func (t *TTY) WatchResize(ctx context.Context, out chan<- Size) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			cols, rows, err := t.Size()
			if err != nil {
				continue
			}
			select {
			case out <- Size{Columns: cols, Rows: rows}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Read reads stdin. After Close it returns io.EOF.
func (t *TTY) Read(p []byte) (int, error) {
	return t.ReadContext(context.Background(), p)
}

// ReadContext polls stdin so that a done ctx or Close can interrupt a
// pending read within pollTimeoutMs.
func (t *TTY) ReadContext(ctx context.Context, p []byte) (int, error) {
	fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
	for {
		if t.closed.Load() {
			return 0, io.EOF
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, fmt.Errorf("poll stdin: %w", err)
		}
		if n == 0 {
			continue
		}
		rn, err := unix.Read(t.inFd, p)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, fmt.Errorf("read stdin: %w", err)
		}
		if rn == 0 {
			return 0, io.EOF
		}
		return rn, nil
	}
}

// Write writes to stdout.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Close makes pending and future reads return io.EOF. It does not close
// stdin or stdout.
func (t *TTY) Close() error {
	t.closed.Store(true)
	return nil
}

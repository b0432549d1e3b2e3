package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// contextReader is implemented by readers that can abandon a read when ctx
// is done.
type contextReader interface {
	ReadContext(ctx context.Context, p []byte) (int, error)
}

// readInput moves bytes from r to out until r is exhausted or ctx is done.
// It runs on its own goroutine and never touches framework state; decoding
// happens on the tick loop. io.EOF ends it without error.
func readInput(ctx context.Context, r io.Reader, out chan<- []byte) error {
	buf := make([]byte, 1024)
	for {
		var n int
		var err error
		if cr, ok := r.(contextReader); ok {
			n, err = cr.ReadContext(ctx, buf)
		} else {
			n, err = r.Read(buf)
		}
		if n > 0 {
			select {
			case out <- bytes.Clone(buf[:n]):
			case <-ctx.Done():
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

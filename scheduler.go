package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/tuikit/internal/debug"
)

const (
	defaultEscapeTimeout = 50 * time.Millisecond
	// shutdownGrace bounds how long cleanup waits for the input reader.
	// Readers that cannot be interrupted are abandoned after it.
	shutdownGrace = 250 * time.Millisecond
)

// Scheduler drives a Root at a fixed rate. Each tick it decodes pending
// input, dispatches it, runs update and draw hooks, flushes the canvas and
// yields a Tick. All framework state is touched only by the goroutine that
// ranges over Run.
type Scheduler struct {
	root   *Root
	canvas *Canvas

	interval      time.Duration
	escapeTimeout time.Duration
	input         io.Reader
	term          Terminal
	mouse         bool
	paste         bool
	altScreen     bool

	decoder   *Decoder
	bytesCh   chan []byte
	resizeCh  chan Size
	errCh     chan error
	group     *errgroup.Group
	cancel    context.CancelFunc
	running   bool
	stopped   bool
	lastInput time.Time

	frame   uint64
	started time.Time
	last    time.Time
}

// NewScheduler creates a scheduler for root with a 60 fps default tick.
func NewScheduler(root *Root, opts ...SchedulerOption) (*Scheduler, error) {
	if root == nil || root.canvas == nil {
		return nil, errors.New("tui: scheduler needs a root with a canvas")
	}
	s := &Scheduler{
		root:          root,
		canvas:        root.canvas,
		interval:      time.Second / 60,
		escapeTimeout: defaultEscapeTimeout,
		mouse:         true,
		paste:         true,
		altScreen:     true,
		decoder:       NewDecoder(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.input == nil {
		if r, ok := s.term.(io.Reader); ok {
			s.input = r
		}
	}
	return s, nil
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Stop ends Run at the next tick boundary. It must be called from the
// goroutine ranging over Run, typically from an event handler.
func (s *Scheduler) Stop() {
	s.stopped = true
}

// Run returns the tick sequence. Ranging over it sets up the terminal,
// ticks until ctx is done, Stop is called or the loop body breaks, and then
// restores the terminal. A fatal error (a failed write to the canvas
// output, a failed input read) is yielded as the last element after cleanup.
func (s *Scheduler) Run(ctx context.Context) iter.Seq2[Tick, error] {
	return func(yield func(Tick, error) bool) {
		if err := s.start(ctx); err != nil {
			yield(Tick{}, err)
			return
		}
		defer s.shutdown()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				debug.Log("scheduler: context done: %v", ctx.Err())
				return
			case now := <-ticker.C:
				if s.stopped || ctx.Err() != nil {
					return
				}
				tick, err := s.step(now)
				if err != nil {
					debug.Log("scheduler: fatal: %v", err)
					s.shutdown()
					yield(Tick{}, err)
					return
				}
				if !yield(tick, nil) {
					return
				}
			}
		}
	}
}

// start puts the terminal into UI mode and launches the input reader and
// the resize watcher. On error it releases the terminal itself and leaves
// the scheduler stopped.
func (s *Scheduler) start(ctx context.Context) error {
	s.stopped = false
	s.frame = 0
	s.started, s.last = time.Time{}, time.Time{}
	s.decoder.Reset()
	s.bytesCh = make(chan []byte, 64)
	s.resizeCh = make(chan Size, 4)
	s.errCh = make(chan error, 1)

	if s.term != nil {
		if err := s.term.EnterRawMode(); err != nil {
			s.releaseTerminal(false)
			return err
		}
		if cols, rows, err := s.term.Size(); err == nil {
			s.canvas.Resize(cols, rows)
		} else {
			debug.Log("scheduler: size unavailable, keeping %v: %v", s.canvas.Bounds(), err)
		}
	}

	err := s.canvas.writeControl(func(e *escBuilder) {
		if s.altScreen {
			e.EnterAltScreen()
		}
		e.HideCursor()
		e.ResetStyle()
		e.ClearScreen()
		if s.mouse {
			e.EnableMouse()
		}
		if s.paste {
			e.EnableBracketedPaste()
		}
	})
	if err != nil {
		s.releaseTerminal(true)
		return err
	}
	s.running = true
	// The screen is blank now, whatever the previous frame says.
	s.canvas.Invalidate()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	g, gctx := errgroup.WithContext(runCtx)
	s.group = g
	// The goroutines keep this run's channels; a reader left blocked past
	// shutdown must not feed the next run.
	input, bytesCh, errCh, resizeCh := s.input, s.bytesCh, s.errCh, s.resizeCh
	if input != nil {
		g.Go(func() error {
			err := readInput(gctx, input, bytesCh)
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
			return err
		})
	}
	if term := s.term; term != nil {
		g.Go(func() error {
			return term.WatchResize(gctx, resizeCh)
		})
	}
	return nil
}

// step runs one tick at time now.
func (s *Scheduler) step(now time.Time) (Tick, error) {
	if s.started.IsZero() {
		s.started, s.last = now, now
	}

	events, err := s.poll(now)
	if err != nil {
		return Tick{}, err
	}
	s.root.Dispatch(events...)
	s.root.Update()
	s.root.Draw()
	if err := s.canvas.Flush(); err != nil {
		return Tick{}, err
	}

	s.frame++
	tick := Tick{
		Frame:   s.frame,
		Elapsed: now.Sub(s.started),
		Delta:   now.Sub(s.last),
		FPS:     s.canvas.FPS(),
	}
	if s.frame > 1 && s.interval > 0 {
		if skipped := int(tick.Delta/s.interval) - 1; skipped > 0 {
			tick.Skipped = skipped
			debug.Log("scheduler: dropped %d ticks", skipped)
		}
	}
	s.last = now
	s.root.Emit(EventTick, tick)
	return tick, nil
}

// poll drains input bytes and resize notifications without blocking and
// returns the decoded events. A lone ESC is released once no input has
// arrived for escapeTimeout.
func (s *Scheduler) poll(now time.Time) ([]Event, error) {
	var events []Event
drain:
	for {
		select {
		case chunk := <-s.bytesCh:
			events = append(events, s.decoder.Feed(chunk)...)
			s.lastInput = now
		case size := <-s.resizeCh:
			s.canvas.Resize(size.Columns, size.Rows)
			events = append(events, Resize{Columns: size.Columns, Rows: size.Rows})
			debug.Log("scheduler: resized to %dx%d", size.Columns, size.Rows)
		case err := <-s.errCh:
			return nil, err
		default:
			break drain
		}
	}
	if s.decoder.Pending() > 0 && now.Sub(s.lastInput) >= s.escapeTimeout {
		events = append(events, s.decoder.Idle()...)
	}
	return events, nil
}

// shutdown restores the terminal. It is best effort and idempotent.
// releaseTerminal leaves raw mode, when it was entered, and closes the
// terminal.
func (s *Scheduler) releaseTerminal(raw bool) {
	if s.term == nil {
		return
	}
	if raw {
		if err := s.term.ExitRawMode(); err != nil {
			debug.Log("scheduler: %v", err)
		}
	}
	if err := s.term.Close(); err != nil {
		debug.Log("scheduler: close terminal: %v", err)
	}
}

func (s *Scheduler) shutdown() {
	if !s.running {
		return
	}
	s.running = false
	if s.cancel != nil {
		s.cancel()
	}

	err := s.canvas.writeControl(func(e *escBuilder) {
		if s.paste {
			e.DisableBracketedPaste()
		}
		if s.mouse {
			e.DisableMouse()
		}
		e.ResetStyle()
		e.ShowCursor()
		if s.altScreen {
			e.ExitAltScreen()
		}
	})
	if err != nil {
		debug.Log("scheduler: restore terminal modes: %v", err)
	}

	s.releaseTerminal(true)

	if s.group != nil {
		done := make(chan error, 1)
		go func() { done <- s.group.Wait() }()
		select {
		case err := <-done:
			if err != nil {
				debug.Log("scheduler: background: %v", err)
			}
		case <-time.After(shutdownGrace):
			debug.Log("scheduler: input reader still blocked after %v", shutdownGrace)
		}
		s.group = nil
	}
	debug.Log("scheduler: stopped after %d frames", s.frame)
}

// String describes the scheduler for logs.
func (s *Scheduler) String() string {
	return fmt.Sprintf("Scheduler{interval=%v mouse=%v paste=%v alt=%v}", s.interval, s.mouse, s.paste, s.altScreen)
}

package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxFrames bounds every Run loop in these tests.
const maxFrames = 500

func newTestScheduler(t *testing.T, opts ...SchedulerOption) (*Scheduler, *Root, *toggleWriter, *MockTerminal) {
	t.Helper()
	c, w := newTestCanvas(10, 3)
	root := NewRoot(c)
	term := NewMockTerminal(10, 3)
	opts = append([]SchedulerOption{WithTerminal(term), WithRefreshRate(1)}, opts...)
	s, err := NewScheduler(root, opts...)
	require.NoError(t, err)
	return s, root, w, term
}

func TestNewScheduler_Options(t *testing.T) {
	type tc struct {
		opts    []SchedulerOption
		wantErr string
		check   func(t *testing.T, s *Scheduler)
	}

	badConfig := DefaultConfig()
	badConfig.QuitKeys = []string{"Hyper+q"}

	tests := map[string]tc{
		"defaults": {
			check: func(t *testing.T, s *Scheduler) {
				assert.Equal(t, time.Second/60, s.Interval())
				assert.True(t, s.mouse)
				assert.True(t, s.paste)
				assert.True(t, s.altScreen)
				assert.Equal(t, defaultEscapeTimeout, s.escapeTimeout)
			},
		},
		"frame rate": {
			opts: []SchedulerOption{WithFrameRate(30)},
			check: func(t *testing.T, s *Scheduler) {
				assert.Equal(t, time.Second/30, s.Interval())
			},
		},
		"refresh rate": {
			opts: []SchedulerOption{WithRefreshRate(25)},
			check: func(t *testing.T, s *Scheduler) {
				assert.Equal(t, 25*time.Millisecond, s.Interval())
			},
		},
		"terminal modes": {
			opts: []SchedulerOption{WithoutMouse(), WithBracketedPaste(false), WithAltScreen(false), WithEscapeTimeout(time.Second)},
			check: func(t *testing.T, s *Scheduler) {
				assert.False(t, s.mouse)
				assert.False(t, s.paste)
				assert.False(t, s.altScreen)
				assert.Equal(t, time.Second, s.escapeTimeout)
			},
		},
		"mouse back on": {
			opts: []SchedulerOption{WithoutMouse(), WithMouse()},
			check: func(t *testing.T, s *Scheduler) {
				assert.True(t, s.mouse)
			},
		},
		"config": {
			opts: []SchedulerOption{WithConfig(Config{RefreshRateMS: 40, AltScreen: true, ColorProfile: "ansi16"})},
			check: func(t *testing.T, s *Scheduler) {
				assert.Equal(t, 40*time.Millisecond, s.Interval())
				assert.False(t, s.mouse)
				assert.False(t, s.paste)
				assert.True(t, s.altScreen)
				assert.Equal(t, ProfileANSI16, s.canvas.Profile())
			},
		},
		"zero frame rate":   {opts: []SchedulerOption{WithFrameRate(0)}, wantErr: "at least 1 fps"},
		"huge frame rate":   {opts: []SchedulerOption{WithFrameRate(241)}, wantErr: "cannot exceed"},
		"zero refresh rate": {opts: []SchedulerOption{WithRefreshRate(0)}, wantErr: "at least 1ms"},
		"zero esc timeout":  {opts: []SchedulerOption{WithEscapeTimeout(0)}, wantErr: "escape timeout"},
		"invalid config":    {opts: []SchedulerOption{WithConfig(badConfig)}, wantErr: "invalid config"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := newTestRoot(t, 10, 3)
			s, err := NewScheduler(root, tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestNewScheduler_NeedsRoot(t *testing.T) {
	_, err := NewScheduler(nil)
	assert.Error(t, err)
}

func TestScheduler_RunDeliversInputAndRestoresTerminal(t *testing.T) {
	s, root, w, term := newTestScheduler(t, WithInput(strings.NewReader("a")))

	var keys []KeyPress
	root.On(EventKeyPress, func(ev Event) bool {
		keys = append(keys, ev.(KeyPress))
		return true
	})
	_, err := root.NewComponent(nil, ComponentOptions{
		Rect: NewRect(0, 0, 3, 1),
		Draw: func(c *Component, canvas *Canvas) {
			canvas.Draw(0, 0, "hi", NewStyle())
		},
	})
	require.NoError(t, err)

	var ticks []Tick
	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		ticks = append(ticks, tick)
		if len(keys) > 0 || tick.Frame >= maxFrames {
			break
		}
		assert.True(t, term.InRawMode())
	}

	assert.Equal(t, []KeyPress{{Key: KeyRune, Rune: 'a'}}, keys)
	require.NotEmpty(t, ticks)
	assert.Equal(t, uint64(1), ticks[0].Frame)
	assert.Equal(t, "hi", s.canvas.Line(0))

	out := w.buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[?1049h\x1b[?25l\x1b[0m"), "setup first: %q", out)
	assert.Contains(t, out, "\x1b[?1000h\x1b[?1002h\x1b[?1006h")
	assert.Contains(t, out, "\x1b[?2004h")
	assert.Contains(t, out, "hi")
	assert.True(t, strings.HasSuffix(out, "\x1b[?25h\x1b[?1049l"), "restore last: %q", out)

	enters, exits := term.RawModeTransitions()
	assert.Equal(t, 1, enters)
	assert.Equal(t, 1, exits)
	assert.False(t, term.InRawMode())
	assert.True(t, term.Closed())
}

func TestScheduler_RunWithoutOptionalModes(t *testing.T) {
	s, _, w, _ := newTestScheduler(t, WithoutMouse(), WithBracketedPaste(false), WithAltScreen(false))

	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		if tick.Frame >= 1 {
			break
		}
	}

	out := w.buf.String()
	assert.NotContains(t, out, "\x1b[?1049")
	assert.NotContains(t, out, "\x1b[?1000")
	assert.NotContains(t, out, "\x1b[?2004")
}

func TestScheduler_CancelEndsRunCleanly(t *testing.T) {
	s, _, _, term := newTestScheduler(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var frames uint64
	for tick, err := range s.Run(ctx) {
		require.NoError(t, err)
		frames = tick.Frame
		if tick.Frame == 3 {
			cancel()
		}
		if tick.Frame >= maxFrames {
			break
		}
	}

	assert.Equal(t, uint64(3), frames)
	assert.False(t, term.InRawMode())
}

func TestScheduler_StopFromHandler(t *testing.T) {
	s, root, _, _ := newTestScheduler(t)

	root.On(EventTick, func(ev Event) bool {
		if ev.(Tick).Frame == 2 {
			s.Stop()
		}
		return false
	})

	var frames uint64
	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		frames = tick.Frame
		if tick.Frame >= maxFrames {
			break
		}
	}
	assert.Equal(t, uint64(2), frames)
}

func TestScheduler_QuitKeyFromConfig(t *testing.T) {
	s, _, _, _ := newTestScheduler(t,
		WithConfig(DefaultConfig()),
		WithRefreshRate(1),
		WithInput(strings.NewReader("\x03")),
	)

	var last Tick
	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		last = tick
		if tick.Frame >= maxFrames {
			break
		}
	}
	assert.Less(t, last.Frame, uint64(maxFrames), "Ctrl+c should stop the scheduler")
}

func TestScheduler_SinkErrorIsFatal(t *testing.T) {
	t.Run("during setup", func(t *testing.T) {
		s, _, w, term := newTestScheduler(t)
		w.fail = true

		var errs []error
		for _, err := range s.Run(context.Background()) {
			errs = append(errs, err)
		}

		require.Len(t, errs, 1)
		var sinkErr *SinkWriteError
		assert.ErrorAs(t, errs[0], &sinkErr)
		assert.False(t, term.InRawMode())
	})

	t.Run("during a frame", func(t *testing.T) {
		s, root, w, term := newTestScheduler(t)
		n := 0
		_, err := root.NewComponent(nil, ComponentOptions{
			Rect: NewRect(0, 0, 10, 1),
			Update: func(*Component) {
				n++
			},
			Draw: func(c *Component, canvas *Canvas) {
				canvas.Draw(0, 0, strings.Repeat("#", n%10+1), NewStyle())
			},
		})
		require.NoError(t, err)

		var fatal error
		for tick, err := range s.Run(context.Background()) {
			if err != nil {
				fatal = err
				break
			}
			if tick.Frame == 2 {
				w.fail = true
			}
			if tick.Frame >= maxFrames {
				break
			}
		}

		var sinkErr *SinkWriteError
		require.ErrorAs(t, fatal, &sinkErr)
		assert.Equal(t, "broken pipe", sinkErr.Err.Error())
		enters, exits := term.RawModeTransitions()
		assert.Equal(t, 1, enters)
		assert.Equal(t, 1, exits)
	})
}

func TestScheduler_RawModeFailureWritesNothing(t *testing.T) {
	s, _, w, term := newTestScheduler(t)
	require.NoError(t, term.Close())

	var errs []error
	for _, err := range s.Run(context.Background()) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "mock terminal closed")
	assert.Zero(t, w.writes, "no mode sequences without raw mode")
	assert.Empty(t, w.buf.String())
	enters, exits := term.RawModeTransitions()
	assert.Zero(t, enters)
	assert.Zero(t, exits)
}

// gatedReader holds its first read until release is closed and then fails
// it. Later reads wait for their context.
type gatedReader struct {
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedReader) Read(p []byte) (int, error) {
	return g.ReadContext(context.Background(), p)
}

func (g *gatedReader) ReadContext(ctx context.Context, _ []byte) (int, error) {
	if g.calls.Add(1) == 1 {
		<-g.release
		return 0, errors.New("left over from the previous run")
	}
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestScheduler_BlockedReaderDoesNotReachNextRun(t *testing.T) {
	in := &gatedReader{release: make(chan struct{})}
	c, _ := newTestCanvas(10, 3)
	s, err := NewScheduler(NewRoot(c), WithInput(in), WithRefreshRate(1))
	require.NoError(t, err)

	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		if tick.Frame >= 2 {
			break
		}
	}

	// The first reader outlived its run; failing it now must not end this one.
	var last Tick
	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		if tick.Frame == 1 {
			close(in.release)
		}
		last = tick
		if tick.Frame >= 50 {
			break
		}
	}
	assert.Equal(t, uint64(50), last.Frame)
}

func TestScheduler_InputErrorIsFatal(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, WithInput(iotest.ErrReader(errors.New("tty gone"))))

	var fatal error
	for tick, err := range s.Run(context.Background()) {
		if err != nil {
			fatal = err
			break
		}
		if tick.Frame >= maxFrames {
			break
		}
	}
	require.Error(t, fatal)
	assert.Contains(t, fatal.Error(), "tty gone")
}

func TestScheduler_Resize(t *testing.T) {
	s, root, _, term := newTestScheduler(t)

	var resizes []Resize
	root.On(EventResize, func(ev Event) bool {
		resizes = append(resizes, ev.(Resize))
		return false
	})

	for tick, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		if tick.Frame == 1 {
			term.Resize(20, 6)
		}
		if len(resizes) > 0 || tick.Frame >= maxFrames {
			break
		}
	}

	assert.Equal(t, []Resize{{Columns: 20, Rows: 6}}, resizes)
	cols, rows := s.canvas.Size()
	assert.Equal(t, 20, cols)
	assert.Equal(t, 6, rows)
}

func TestScheduler_StartUsesTerminalSize(t *testing.T) {
	c, _ := newTestCanvas(10, 3)
	root := NewRoot(c)
	s, err := NewScheduler(root, WithTerminal(NewMockTerminal(30, 8)), WithRefreshRate(1))
	require.NoError(t, err)

	for _, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		break
	}
	cols, rows := c.Size()
	assert.Equal(t, 30, cols)
	assert.Equal(t, 8, rows)
}

func TestScheduler_StartKeepsSizeWhenUnavailable(t *testing.T) {
	c, _ := newTestCanvas(10, 3)
	root := NewRoot(c)
	term := NewMockTerminal(30, 8)
	term.SetSizeError(errors.New("not a tty"))
	s, err := NewScheduler(root, WithTerminal(term), WithRefreshRate(1))
	require.NoError(t, err)

	for _, err := range s.Run(context.Background()) {
		require.NoError(t, err)
		break
	}
	cols, rows := c.Size()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 3, rows)
}

// newStepScheduler returns a scheduler whose step can be driven by hand
// with explicit times, without Run.
func newStepScheduler(t *testing.T) (*Scheduler, *Root) {
	t.Helper()
	root := newTestRoot(t, 10, 3)
	s, err := NewScheduler(root, WithRefreshRate(10))
	require.NoError(t, err)
	s.bytesCh = make(chan []byte, 4)
	s.resizeCh = make(chan Size, 1)
	s.errCh = make(chan error, 1)
	return s, root
}

func TestScheduler_StepTiming(t *testing.T) {
	s, root := newStepScheduler(t)
	var emitted []Tick
	root.On(EventTick, func(ev Event) bool {
		emitted = append(emitted, ev.(Tick))
		return false
	})

	t0 := time.Unix(1000, 0)
	steps := []struct {
		at   time.Duration
		want Tick
	}{
		{at: 0, want: Tick{Frame: 1}},
		{at: 10 * time.Millisecond, want: Tick{Frame: 2, Elapsed: 10 * time.Millisecond, Delta: 10 * time.Millisecond}},
		{at: 40 * time.Millisecond, want: Tick{Frame: 3, Elapsed: 40 * time.Millisecond, Delta: 30 * time.Millisecond, Skipped: 2}},
		{at: 45 * time.Millisecond, want: Tick{Frame: 4, Elapsed: 45 * time.Millisecond, Delta: 5 * time.Millisecond}},
	}

	for _, st := range steps {
		got, err := s.step(t0.Add(st.at))
		require.NoError(t, err)
		got.FPS = 0
		assert.Equal(t, st.want, got)
	}
	assert.Len(t, emitted, len(steps))
}

func TestScheduler_LoneEscapeWaitsForTimeout(t *testing.T) {
	s, root := newStepScheduler(t)
	var keys []KeyPress
	root.On(EventKeyPress, func(ev Event) bool {
		keys = append(keys, ev.(KeyPress))
		return true
	})

	t0 := time.Unix(1000, 0)
	s.bytesCh <- []byte{0x1b}
	_, err := s.step(t0)
	require.NoError(t, err)
	assert.Empty(t, keys, "ESC may start a sequence")

	_, err = s.step(t0.Add(10 * time.Millisecond))
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = s.step(t0.Add(defaultEscapeTimeout))
	require.NoError(t, err)
	assert.Equal(t, []KeyPress{{Key: KeyEscape}}, keys)
}

func TestScheduler_EscapeSequenceAcrossTicks(t *testing.T) {
	s, root := newStepScheduler(t)
	var keys []KeyPress
	root.On(EventKeyPress, func(ev Event) bool {
		keys = append(keys, ev.(KeyPress))
		return true
	})

	t0 := time.Unix(1000, 0)
	s.bytesCh <- []byte("\x1b[")
	_, err := s.step(t0)
	require.NoError(t, err)

	s.bytesCh <- []byte("A")
	_, err = s.step(t0.Add(10 * time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, []KeyPress{{Key: KeyUp}}, keys)
}

func TestScheduler_StepReportsReaderError(t *testing.T) {
	s, _ := newStepScheduler(t)
	s.errCh <- errors.New("read input: boom")

	_, err := s.step(time.Unix(1000, 0))
	assert.EqualError(t, err, "read input: boom")
}

func TestReadInput(t *testing.T) {
	out := make(chan []byte, 4)
	err := readInput(context.Background(), iotest.OneByteReader(bytes.NewReader([]byte("ab"))), out)
	require.NoError(t, err)
	close(out)

	var got []byte
	for chunk := range out {
		got = append(got, chunk...)
	}
	assert.Equal(t, "ab", string(got))
}

func TestScheduler_String(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, WithoutMouse())
	assert.Equal(t, "Scheduler{interval=1ms mouse=false paste=true alt=true}", s.String())
}

package tui

import (
	"fmt"
	"io"
	"time"
)

// SchedulerOption is a functional option for configuring a Scheduler.
type SchedulerOption func(*Scheduler) error

// WithRefreshRate sets the tick interval in milliseconds.
func WithRefreshRate(ms int) SchedulerOption {
	return func(s *Scheduler) error {
		if ms < 1 {
			return fmt.Errorf("refresh rate must be at least 1ms, got %d", ms)
		}
		s.interval = time.Duration(ms) * time.Millisecond
		return nil
	}
}

// WithFrameRate sets the target frame rate.
// Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) SchedulerOption {
	return func(s *Scheduler) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		s.interval = time.Second / time.Duration(fps)
		return nil
	}
}

// WithInput sets the byte source for input events. Without it the
// scheduler reads from its Terminal when that is also an io.Reader, and
// otherwise reads nothing.
func WithInput(r io.Reader) SchedulerOption {
	return func(s *Scheduler) error {
		s.input = r
		return nil
	}
}

// WithTerminal sets the terminal used for raw mode, size and resize
// notifications.
func WithTerminal(t Terminal) SchedulerOption {
	return func(s *Scheduler) error {
		s.term = t
		return nil
	}
}

// WithMouse enables mouse reporting. This is the default.
func WithMouse() SchedulerOption {
	return func(s *Scheduler) error {
		s.mouse = true
		return nil
	}
}

// WithoutMouse disables mouse event reporting.
func WithoutMouse() SchedulerOption {
	return func(s *Scheduler) error {
		s.mouse = false
		return nil
	}
}

// WithBracketedPaste turns bracketed paste mode on or off. Default is on.
func WithBracketedPaste(on bool) SchedulerOption {
	return func(s *Scheduler) error {
		s.paste = on
		return nil
	}
}

// WithAltScreen turns the alternate screen buffer on or off. Default is on.
func WithAltScreen(on bool) SchedulerOption {
	return func(s *Scheduler) error {
		s.altScreen = on
		return nil
	}
}

// WithEscapeTimeout sets how long a lone ESC waits for the rest of a
// sequence before it is reported as the Escape key. Default is 50ms.
func WithEscapeTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) error {
		if d <= 0 {
			return fmt.Errorf("escape timeout must be positive, got %v", d)
		}
		s.escapeTimeout = d
		return nil
	}
}

// WithConfig applies a Config: refresh rate, terminal modes, color profile
// and quit keys, which stop the scheduler.
func WithConfig(cfg Config) SchedulerOption {
	return func(s *Scheduler) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		s.interval = cfg.Interval()
		s.mouse = cfg.Mouse
		s.paste = cfg.BracketedPaste
		s.altScreen = cfg.AltScreen

		profile, err := cfg.Profile()
		if err != nil {
			return err
		}
		s.canvas.SetProfile(profile)

		keys, err := cfg.QuitBindings()
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := s.root.Bind(OnPressStop(k, func(KeyPress) { s.Stop() })); err != nil {
				return err
			}
		}
		return nil
	}
}

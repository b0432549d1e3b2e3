package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar names the environment variable that enables logging at startup.
const EnvVar = "TUI_DEBUG"

var (
	sink    io.WriteCloser
	mu      sync.Mutex
	envOnce sync.Once
)

// Init starts logging to path through a rotating file. If path is empty,
// uses "debug.log" in the current directory. A previous sink is closed.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if sink != nil {
		sink.Close()
	}
	sink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return nil
}

// SetOutput sends log lines to w instead of a file. Passing nil disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		sink.Close()
	}
	if w == nil {
		sink = nil
		return
	}
	sink = nopCloser{w}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Close closes the log sink.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		err := sink.Close()
		sink = nil
		return err
	}
	return nil
}

// Enabled reports whether Log writes anywhere.
func Enabled() bool {
	loadEnv()
	mu.Lock()
	defer mu.Unlock()
	return sink != nil
}

func loadEnv() {
	envOnce.Do(func() {
		if path := os.Getenv(EnvVar); path != "" {
			mu.Lock()
			if sink == nil {
				_ = initLocked(path)
			}
			mu.Unlock()
		}
	})
}

// Log writes a message to the debug log with a timestamp.
// It is a no-op unless Init, SetOutput or TUI_DEBUG enabled a sink.
func Log(format string, args ...any) {
	loadEnv()
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(sink, "[%s] %s\n", timestamp, msg)
}

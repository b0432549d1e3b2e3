// Package debug provides optional file-based debug logging.
//
// When the TUI_DEBUG environment variable is set to a file path, debug
// messages are appended to that file, rotated by size. Otherwise logging is
// a no-op. The terminal itself is never written to because it is busy
// rendering the UI.
package debug

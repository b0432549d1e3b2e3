// Package widgets is a small set of components built only on the public
// contract of package tui: rectangles, themes, state and events.
package widgets

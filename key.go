package tui

import (
	"fmt"
	"strings"
	"unicode"
)

// Key represents a keyboard key.
type Key uint16

const (
	// KeyNone represents no key (zero value).
	KeyNone Key = iota

	// KeyRune represents a printable character. Check KeyPress.Rune for the character.
	// Ctrl+letter arrives as KeyRune with the lowercase letter and ModCtrl.
	KeyRune

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Modifier represents keyboard modifier flags.
type Modifier uint8

const (
	// ModNone represents no modifiers.
	ModNone Modifier = 0
	// ModCtrl represents the Ctrl modifier.
	ModCtrl Modifier = 1 << iota
	// ModAlt represents the Alt (meta) modifier.
	ModAlt
	// ModShift represents the Shift modifier.
	ModShift
)

// Has checks if the modifier set includes the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns a human-readable representation of the modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// KeyPress represents a keyboard input event.
type KeyPress struct {
	// Key is the key pressed. For printable characters, this is KeyRune.
	Key Key

	// Rune is the character for KeyRune events. Zero for special keys.
	Rune rune

	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
}

// Kind implements Event.
func (KeyPress) Kind() EventKind { return EventKeyPress }

// Ctrl reports whether Ctrl was held.
func (k KeyPress) Ctrl() bool { return k.Mod.Has(ModCtrl) }

// Meta reports whether Alt/Meta was held.
func (k KeyPress) Meta() bool { return k.Mod.Has(ModAlt) }

// Shift reports whether Shift was held.
func (k KeyPress) Shift() bool { return k.Mod.Has(ModShift) }

// IsRune returns true if this is a character event for r with no modifiers.
func (k KeyPress) IsRune(r rune) bool {
	return k.Key == KeyRune && k.Rune == r && k.Mod == ModNone
}

// Is checks if the event matches a specific key with optional modifiers.
// Example: event.Is(KeyEnter) or event.Is(KeyTab, ModShift)
func (k KeyPress) Is(key Key, mods ...Modifier) bool {
	if k.Key != key {
		return false
	}
	if len(mods) == 0 {
		return true
	}
	var combined Modifier
	for _, m := range mods {
		combined |= m
	}
	return k.Mod == combined
}

// String renders the key the way ParseKey accepts it, e.g. "Ctrl+c" or "Shift+Tab".
func (k KeyPress) String() string {
	var name string
	switch {
	case k.Key == KeyRune && k.Rune == ' ':
		name = "Space"
	case k.Key == KeyRune:
		name = string(k.Rune)
	default:
		name = k.Key.String()
	}
	if k.Mod == ModNone {
		return name
	}
	return k.Mod.String() + "+" + name
}

// ParseKey parses the notation produced by KeyPress.String: optional
// "Ctrl+", "Alt+" and "Shift+" prefixes followed by a key name or a single
// character. Matching of prefixes and key names is case-insensitive.
func ParseKey(s string) (KeyPress, error) {
	var k KeyPress
	rest := s
	for {
		i := strings.IndexByte(rest, '+')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		switch strings.ToLower(rest[:i]) {
		case "ctrl", "c":
			k.Mod |= ModCtrl
		case "alt", "meta", "m":
			k.Mod |= ModAlt
		case "shift", "s":
			k.Mod |= ModShift
		default:
			return KeyPress{}, fmt.Errorf("unknown modifier %q in key %q", rest[:i], s)
		}
		rest = rest[i+1:]
	}

	if r := []rune(rest); len(r) == 1 {
		k.Key = KeyRune
		k.Rune = r[0]
		if k.Ctrl() {
			k.Rune = unicode.ToLower(k.Rune)
		}
		return k, nil
	}
	if strings.EqualFold(rest, "space") {
		k.Key, k.Rune = KeyRune, ' '
		return k, nil
	}
	for key, name := range keyNames {
		if key > KeyRune && strings.EqualFold(name, rest) {
			k.Key = key
			return k, nil
		}
	}
	return KeyPress{}, fmt.Errorf("unknown key %q", s)
}

package tui

import "fmt"

// KeyMap is an ordered list of root-level key bindings.
type KeyMap []KeyBinding

// KeyBinding associates a key pattern with a handler.
type KeyBinding struct {
	Pattern KeyPattern
	Handler func(KeyPress)
	Stop    bool // If true, the key is consumed and never reaches the focused component
}

// KeyPattern identifies which key events match a binding.
type KeyPattern struct {
	Key           Key      // Specific key (KeyEscape, KeyF1, etc.), or 0
	Rune          rune     // Specific rune, or 0
	AnyRune       bool     // Match any printable character
	Mod           Modifier // Required modifiers (when non-zero, event must have exactly these mods)
	RequireNoMods bool     // When true, event must have no modifiers (Mod field is ignored)
}

// Matches reports whether k satisfies the pattern.
func (p KeyPattern) Matches(k KeyPress) bool {
	if p.RequireNoMods && k.Mod != 0 {
		return false
	}
	if p.Mod != 0 && k.Mod != p.Mod {
		return false
	}

	if p.AnyRune && k.Key == KeyRune {
		return true
	}
	if p.Rune != 0 && k.Rune == p.Rune && k.Key == KeyRune {
		return true
	}
	if p.Key != 0 && k.Key == p.Key {
		return true
	}
	return false
}

// OnKey creates a broadcast binding for a specific key.
// Other handlers for the same key will also fire.
func OnKey(key Key, handler func(KeyPress)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{Key: key},
		Handler: handler,
	}
}

// OnKeyStop creates a stop-propagation binding for a specific key.
func OnKeyStop(key Key, handler func(KeyPress)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{Key: key},
		Handler: handler,
		Stop:    true,
	}
}

// OnRune creates a broadcast binding for a specific printable character.
func OnRune(r rune, handler func(KeyPress)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{Rune: r},
		Handler: handler,
	}
}

// OnRuneStop creates a stop-propagation binding for a specific printable character.
func OnRuneStop(r rune, handler func(KeyPress)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{Rune: r},
		Handler: handler,
		Stop:    true,
	}
}

// OnRunes creates a broadcast binding for all printable characters.
func OnRunes(handler func(KeyPress)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{AnyRune: true},
		Handler: handler,
	}
}

// OnPressStop creates a stop-propagation binding matching exactly k,
// typically a value returned by ParseKey.
func OnPressStop(k KeyPress, handler func(KeyPress)) KeyBinding {
	p := KeyPattern{Key: k.Key, Mod: k.Mod, RequireNoMods: k.Mod == ModNone}
	if k.Key == KeyRune {
		p.Key = 0
		p.Rune = k.Rune
	}
	return KeyBinding{Pattern: p, Handler: handler, Stop: true}
}

// dispatch sends k to every matching binding in order and reports whether
// a Stop binding consumed it.
func (m KeyMap) dispatch(k KeyPress) bool {
	for _, b := range m {
		if !b.Pattern.Matches(k) {
			continue
		}
		b.Handler(k)
		if b.Stop {
			return true
		}
	}
	return false
}

// Validate checks for conflicting Stop handlers. Two Stop handlers for the
// same key pattern is an error since only the first could ever fire.
// A Stop handler plus a broadcast handler for the same pattern is fine.
func (m KeyMap) Validate() error {
	stopPatterns := make(map[KeyPattern]int)
	for i, b := range m {
		if b.Handler == nil {
			return fmt.Errorf("key binding %d for %+v has no handler", i, b.Pattern)
		}
		if !b.Stop {
			continue
		}
		if first, conflict := stopPatterns[b.Pattern]; conflict {
			return fmt.Errorf(
				"conflicting stop handlers for key pattern %+v at bindings %d and %d",
				b.Pattern, first, i,
			)
		}
		stopPatterns[b.Pattern] = i
	}
	return nil
}

package tui

// State is a component's interaction state. The dispatcher owns it;
// components only read it to pick a style.
type State uint8

const (
	StateBase State = iota
	StateFocused
	StateActive
	StateDisabled

	numStates
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBase:
		return "base"
	case StateFocused:
		return "focused"
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	}
	return "unknown"
}

// ParseState parses a state name as used in config files.
func ParseState(s string) (State, bool) {
	for st := StateBase; st < numStates; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return StateBase, false
}

// Theme maps each State to a Style. Entries that were never set fall back:
// active to focused to base, and disabled to base.
// The zero Theme renders everything in the default style.
type Theme struct {
	styles [numStates]Style
	set    [numStates]bool
}

// NewTheme returns a theme with only the base style set.
func NewTheme(base Style) Theme {
	return Theme{}.With(StateBase, base)
}

// With returns a copy of t with the style for state set.
func (t Theme) With(state State, style Style) Theme {
	if state >= numStates {
		return t
	}
	t.styles[state] = style
	t.set[state] = true
	return t
}

// Has reports whether state has an explicit entry.
func (t Theme) Has(state State) bool {
	return state < numStates && t.set[state]
}

// Style resolves the style for state through the fallback chain.
func (t Theme) Style(state State) Style {
	for {
		if t.Has(state) {
			return t.styles[state]
		}
		switch state {
		case StateActive:
			state = StateFocused
		case StateFocused, StateDisabled:
			state = StateBase
		default:
			return t.styles[StateBase]
		}
	}
}

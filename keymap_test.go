package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPattern_Matches(t *testing.T) {
	type tc struct {
		pattern KeyPattern
		key     KeyPress
		want    bool
	}

	tests := map[string]tc{
		"key matches": {
			pattern: KeyPattern{Key: KeyEnter},
			key:     KeyPress{Key: KeyEnter},
			want:    true,
		},
		"key ignores modifiers when none required": {
			pattern: KeyPattern{Key: KeyEnter},
			key:     KeyPress{Key: KeyEnter, Mod: ModAlt},
			want:    true,
		},
		"require no mods": {
			pattern: KeyPattern{Key: KeyEnter, RequireNoMods: true},
			key:     KeyPress{Key: KeyEnter, Mod: ModAlt},
			want:    false,
		},
		"exact modifiers": {
			pattern: KeyPattern{Rune: 'c', Mod: ModCtrl},
			key:     KeyPress{Key: KeyRune, Rune: 'c', Mod: ModCtrl},
			want:    true,
		},
		"wrong modifiers": {
			pattern: KeyPattern{Rune: 'c', Mod: ModCtrl},
			key:     KeyPress{Key: KeyRune, Rune: 'c', Mod: ModCtrl | ModShift},
			want:    false,
		},
		"rune mismatch": {
			pattern: KeyPattern{Rune: 'a'},
			key:     KeyPress{Key: KeyRune, Rune: 'b'},
			want:    false,
		},
		"any rune": {
			pattern: KeyPattern{AnyRune: true},
			key:     KeyPress{Key: KeyRune, Rune: 'z'},
			want:    true,
		},
		"any rune is not a special key": {
			pattern: KeyPattern{AnyRune: true},
			key:     KeyPress{Key: KeyUp},
			want:    false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Matches(tt.key))
		})
	}
}

func TestKeyMap_Dispatch(t *testing.T) {
	var calls []string
	rec := func(name string) func(KeyPress) {
		return func(KeyPress) { calls = append(calls, name) }
	}

	m := KeyMap{
		OnRune('q', rec("broadcast q")),
		OnRunes(rec("any")),
		OnRuneStop('q', rec("stop q")),
		OnRune('q', rec("after stop")),
		OnKey(KeyF1, rec("f1")),
	}
	require.NoError(t, m.Validate())

	assert.True(t, m.dispatch(KeyPress{Key: KeyRune, Rune: 'q'}))
	assert.Equal(t, []string{"broadcast q", "any", "stop q"}, calls)

	calls = nil
	assert.False(t, m.dispatch(KeyPress{Key: KeyRune, Rune: 'x'}))
	assert.Equal(t, []string{"any"}, calls)

	calls = nil
	assert.False(t, m.dispatch(KeyPress{Key: KeyF1}))
	assert.Equal(t, []string{"f1"}, calls)
}

func TestKeyMap_Validate(t *testing.T) {
	noop := func(KeyPress) {}

	type tc struct {
		m       KeyMap
		wantErr bool
	}

	tests := map[string]tc{
		"empty": {
			m: nil,
		},
		"stop and broadcast on the same key": {
			m: KeyMap{OnKeyStop(KeyEnter, noop), OnKey(KeyEnter, noop)},
		},
		"two stops on the same key": {
			m:       KeyMap{OnKeyStop(KeyEnter, noop), OnKeyStop(KeyEnter, noop)},
			wantErr: true,
		},
		"two stops on different keys": {
			m: KeyMap{OnKeyStop(KeyEnter, noop), OnKeyStop(KeyEscape, noop)},
		},
		"nil handler": {
			m:       KeyMap{{Pattern: KeyPattern{Key: KeyF2}}},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOnPressStop(t *testing.T) {
	ctrlC, err := ParseKey("Ctrl+c")
	require.NoError(t, err)
	b := OnPressStop(ctrlC, func(KeyPress) {})

	assert.True(t, b.Stop)
	assert.True(t, b.Pattern.Matches(KeyPress{Key: KeyRune, Rune: 'c', Mod: ModCtrl}))
	assert.False(t, b.Pattern.Matches(KeyPress{Key: KeyRune, Rune: 'c'}))

	f5 := OnPressStop(KeyPress{Key: KeyF5}, func(KeyPress) {})
	assert.True(t, f5.Pattern.Matches(KeyPress{Key: KeyF5}))
	assert.False(t, f5.Pattern.Matches(KeyPress{Key: KeyF5, Mod: ModShift}))
}

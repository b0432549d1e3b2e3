package tui

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfigData string

// Config is the file-based configuration of a scheduler and its themes.
type Config struct {
	// RefreshRateMS is the tick interval in milliseconds; 0 selects 60 fps.
	RefreshRateMS  int                    `toml:"refresh_rate_ms"`
	Mouse          bool                   `toml:"mouse"`
	BracketedPaste bool                   `toml:"bracketed_paste"`
	AltScreen      bool                   `toml:"alt_screen"`
	ColorProfile   string                 `toml:"color_profile"`
	LogFile        string                 `toml:"log_file"`
	QuitKeys       []string               `toml:"quit_keys"`
	Themes         map[string]ThemeConfig `toml:"themes"`
}

// ThemeConfig is one [themes.<name>] table. Missing states fall back as
// described on Theme.
type ThemeConfig struct {
	Base     *StyleConfig `toml:"base"`
	Focused  *StyleConfig `toml:"focused"`
	Active   *StyleConfig `toml:"active"`
	Disabled *StyleConfig `toml:"disabled"`
}

// StyleConfig is a style as written in a config file. Colors use the
// notation accepted by ParseColor.
type StyleConfig struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          bool   `toml:"bold"`
	Dim           bool   `toml:"dim"`
	Italic        bool   `toml:"italic"`
	Underline     bool   `toml:"underline"`
	Blink         bool   `toml:"blink"`
	Reverse       bool   `toml:"reverse"`
	Strikethrough bool   `toml:"strikethrough"`

	// Attrs names attributes as a list, e.g. ["bold", "underline"]. It adds
	// to the flags above.
	Attrs []string `toml:"attrs"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	cfg := Config{}
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		panic(fmt.Sprintf("tui: embedded default config is invalid: %v", err))
	}
	return cfg
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML on top of DefaultConfig and validates the result.
// Unknown keys are an error so typos do not pass silently.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that needs parsing.
func (c Config) Validate() error {
	var errs []error
	if c.RefreshRateMS < 0 {
		errs = append(errs, fmt.Errorf("refresh_rate_ms must not be negative, got %d", c.RefreshRateMS))
	}
	if _, err := ParseProfile(c.ColorProfile); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.QuitBindings(); err != nil {
		errs = append(errs, err)
	}
	for name := range c.Themes {
		if _, err := c.Theme(name, Theme{}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Interval returns the tick interval.
func (c Config) Interval() time.Duration {
	if c.RefreshRateMS <= 0 {
		return time.Second / 60
	}
	return time.Duration(c.RefreshRateMS) * time.Millisecond
}

// Profile returns the configured color profile.
func (c Config) Profile() (Profile, error) {
	return ParseProfile(c.ColorProfile)
}

// QuitBindings parses QuitKeys.
func (c Config) QuitBindings() ([]KeyPress, error) {
	keys := make([]KeyPress, 0, len(c.QuitKeys))
	for _, s := range c.QuitKeys {
		k, err := ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("quit_keys: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Theme returns the named theme laid over fallback: states present in the
// config replace the fallback's entries. An unknown name returns fallback.
func (c Config) Theme(name string, fallback Theme) (Theme, error) {
	tc, ok := c.Themes[name]
	if !ok {
		return fallback, nil
	}
	t := fallback
	entries := []struct {
		state State
		cfg   *StyleConfig
	}{
		{StateBase, tc.Base},
		{StateFocused, tc.Focused},
		{StateActive, tc.Active},
		{StateDisabled, tc.Disabled},
	}
	for _, e := range entries {
		if e.cfg == nil {
			continue
		}
		style, err := e.cfg.Style()
		if err != nil {
			return Theme{}, fmt.Errorf("themes.%s.%s: %w", name, e.state, err)
		}
		t = t.With(e.state, style)
	}
	return t, nil
}

// Style converts the config form to a Style.
func (s StyleConfig) Style() (Style, error) {
	fg, err := ParseColor(s.Fg)
	if err != nil {
		return Style{}, fmt.Errorf("fg: %w", err)
	}
	bg, err := ParseColor(s.Bg)
	if err != nil {
		return Style{}, fmt.Errorf("bg: %w", err)
	}
	style := NewStyle().Foreground(fg).Background(bg)
	flags := map[Attr]bool{
		AttrBold:          s.Bold,
		AttrDim:           s.Dim,
		AttrItalic:        s.Italic,
		AttrUnderline:     s.Underline,
		AttrBlink:         s.Blink,
		AttrReverse:       s.Reverse,
		AttrStrikethrough: s.Strikethrough,
	}
	for a, on := range flags {
		if on {
			style = style.With(a)
		}
	}
	for _, name := range s.Attrs {
		a, err := ParseAttr(name)
		if err != nil {
			return Style{}, fmt.Errorf("attrs: %w", err)
		}
		style = style.With(a)
	}
	return style, nil
}

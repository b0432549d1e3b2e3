package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Profile is the color depth the canvas encodes for.
type Profile uint8

const (
	// ProfileTrueColor emits 24-bit colors as-is.
	ProfileTrueColor Profile = iota
	// ProfileANSI256 degrades RGB colors to the 256-color palette.
	ProfileANSI256
	// ProfileANSI16 degrades every color to the 16 basic colors.
	ProfileANSI16
	// ProfileASCII emits attributes only, no colors.
	ProfileASCII
)

// String returns the config spelling of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileTrueColor:
		return "truecolor"
	case ProfileANSI256:
		return "ansi256"
	case ProfileANSI16:
		return "ansi16"
	case ProfileASCII:
		return "ascii"
	}
	return fmt.Sprintf("Profile(%d)", uint8(p))
}

// ParseProfile parses a profile name as used in config files.
// The empty string and "auto" select DetectProfile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectProfile(), nil
	case "truecolor", "24bit":
		return ProfileTrueColor, nil
	case "ansi256", "256":
		return ProfileANSI256, nil
	case "ansi16", "ansi", "16":
		return ProfileANSI16, nil
	case "ascii", "none":
		return ProfileASCII, nil
	}
	return ProfileASCII, fmt.Errorf("unknown color profile %q", s)
}

// DetectProfile inspects TERM, COLORTERM and NO_COLOR. It never queries the
// terminal and does not require stdout to be one, since the canvas may be
// writing to a different descriptor.
func DetectProfile() Profile {
	out := termenv.NewOutput(os.Stdout, termenv.WithUnsafe())
	switch out.EnvColorProfile() {
	case termenv.TrueColor:
		return ProfileTrueColor
	case termenv.ANSI256:
		return ProfileANSI256
	case termenv.ANSI:
		return ProfileANSI16
	default:
		return ProfileASCII
	}
}

// Convert degrades c to what the profile can display.
func (p Profile) Convert(c Color) Color {
	switch p {
	case ProfileANSI256:
		return c.ToANSI256()
	case ProfileANSI16:
		return c.ToANSI16()
	case ProfileASCII:
		return DefaultColor()
	}
	return c
}

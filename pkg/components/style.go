package components

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Palette turns hex colors into ANSI escape sequences degraded to a termenv
// color profile. The zero value emits 24-bit color.
type Palette struct {
	Profile termenv.Profile
}

// DetectPalette returns a Palette for the terminal described by the
// environment (COLORTERM, TERM, NO_COLOR, CLICOLOR_FORCE).
func DetectPalette() Palette {
	return Palette{Profile: termenv.EnvColorProfile()}
}

// Fg returns the foreground sequence for hex ("#ff5500" or "ff5500"), or ""
// when the color is malformed or the profile is Ascii.
func (p Palette) Fg(hex string) string {
	return p.sequence(hex, false)
}

// Bg returns the background sequence for hex.
func (p Palette) Bg(hex string) string {
	return p.sequence(hex, true)
}

// Reset returns the reset sequence, or "" for the Ascii profile.
func (p Palette) Reset() string {
	if p.Profile == termenv.Ascii {
		return ""
	}
	return Reset()
}

func (p Palette) sequence(hex string, bg bool) string {
	if _, _, _, ok := parseHex(hex); !ok {
		return ""
	}
	c := p.Profile.Color("#" + strings.TrimPrefix(hex, "#"))
	if c == nil {
		return ""
	}
	seq := c.Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

// Color produces a 24-bit foreground escape sequence from a hex color.
// Returns an empty string if the input is empty or malformed.
func Color(hex string) string {
	return Palette{Profile: termenv.TrueColor}.Fg(hex)
}

// BgColor produces a 24-bit background escape sequence from a hex color.
func BgColor(hex string) string {
	return Palette{Profile: termenv.TrueColor}.Bg(hex)
}

// Reset returns the ANSI reset sequence that clears all styling.
func Reset() string {
	return "\x1b[0m"
}

// parseHex parses a hex color string into r, g, b components.
// Accepts "#RRGGBB" or "RRGGBB" formats.
func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

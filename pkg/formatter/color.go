package formatter

import (
	"fmt"
	"sort"
	"strings"
)

// Reset switches the terminal back to its default colours.
const Reset = "\033[0m"

// Code is an ANSI colour: the SGR parameter used as foreground and the one
// used as background. Foreground-only codes have an empty BG.
type Code struct {
	FG string
	BG string
}

var (
	LightGrey = Code{FG: "37", BG: "47"}
	Black     = Code{FG: "30", BG: "40"}
	Red       = Code{FG: "31", BG: "41"}
	Yellow    = Code{FG: "1;33", BG: "43"}
	Green     = Code{FG: "32", BG: "42"}
	Blue      = Code{FG: "34", BG: "44"}
	Magenta   = Code{FG: "35", BG: "45"}
	Cyan      = Code{FG: "36", BG: "46"}

	WhiteForeground        = Code{FG: "1;37"}
	LightGreenForeground   = Code{FG: "1;32"}
	BrownForeground        = Code{FG: "33"}
	LightBlueForeground    = Code{FG: "1;34"}
	DarkGreyForeground     = Code{FG: "1;30"}
	LightRedForeground     = Code{FG: "1;31"}
	LightCyanForeground    = Code{FG: "1;36"}
	LightMagentaForeground = Code{FG: "1;35"}
)

var namedCodes = map[string]Code{
	"light-grey":    LightGrey,
	"black":         Black,
	"red":           Red,
	"yellow":        Yellow,
	"green":         Green,
	"blue":          Blue,
	"magenta":       Magenta,
	"cyan":          Cyan,
	"white":         WhiteForeground,
	"light-green":   LightGreenForeground,
	"brown":         BrownForeground,
	"light-blue":    LightBlueForeground,
	"dark-grey":     DarkGreyForeground,
	"light-red":     LightRedForeground,
	"light-cyan":    LightCyanForeground,
	"light-magenta": LightMagentaForeground,
}

// ColorByName looks up a palette entry. Names are case-insensitive and accept
// "_" or " " in place of "-", plus "gray" for "grey".
func ColorByName(name string) (Code, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-", "gray", "grey").Replace(key)
	if c, ok := namedCodes[key]; ok {
		return c, nil
	}
	return Code{}, fmt.Errorf("%w: unknown color %q (available: %s)", ErrConfiguration, name, strings.Join(ColorNames(), ", "))
}

// ColorNames lists the palette names accepted by ColorByName.
func ColorNames() []string {
	names := make([]string, 0, len(namedCodes))
	for n := range namedCodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Color is a highlight colour: a foreground and an optional background.
type Color struct {
	Foreground string
	Background string
}

// NewColor builds a Color from palette codes. Only the first bg is used, and
// a foreground-only code given as background yields no background.
func NewColor(fg Code, bg ...Code) Color {
	c := Color{Foreground: fg.FG}
	if len(bg) > 0 {
		c.Background = bg[0].BG
	}
	return c
}

// Sequence returns the escape sequence that switches to the colour.
func (c Color) Sequence() string {
	if c.Background == "" {
		return "\033[0;" + c.Foreground + "m"
	}
	return "\033[0;" + c.Foreground + ";" + c.Background + "m"
}

// Paint wraps s in the colour sequence and Reset.
func (c Color) Paint(s string) string {
	return c.Sequence() + s + Reset
}

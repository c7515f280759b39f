// Package textutil measures, pads, truncates and word-wraps text for
// fixed-width output. Configured marker sequences (formatting tokens and the
// like) count as zero-width but are always preserved in the returned text.
package textutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	runewidth "github.com/mattn/go-runewidth"
)

// Measure selects how a rune contributes to the display length.
type Measure int

const (
	// MeasureRunes counts one unit per code point.
	MeasureRunes Measure = iota
	// MeasureCells counts terminal cells: wide East Asian runes take two,
	// combining marks take none.
	MeasureCells
)

func (m Measure) String() string {
	switch m {
	case MeasureCells:
		return "cells"
	default:
		return "runes"
	}
}

// ParseMeasure converts a user supplied name into a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "runes", "rune", "codepoints":
		return MeasureRunes, nil
	case "cells", "cell":
		return MeasureCells, nil
	}
	return MeasureRunes, fmt.Errorf("invalid measure %q (expected runes or cells)", s)
}

// Align is the placement of text inside a padded field.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Metrics bundles the ignored-sequence set with the width measure. The zero
// value counts code points and ignores nothing.
type Metrics struct {
	Ignore  []string
	Measure Measure
}

// Strip removes every occurrence of every ignored sequence, in order.
func (m Metrics) Strip(s string) string {
	for _, seq := range m.Ignore {
		if seq == "" {
			continue
		}
		s = strings.ReplaceAll(s, seq, "")
	}
	return s
}

// Length returns the display length of s with ignored sequences removed.
func (m Metrics) Length(s string) int {
	return m.width(m.Strip(s))
}

func (m Metrics) width(s string) int {
	if m.Measure != MeasureCells {
		return utf8.RuneCountInString(s)
	}
	n := 0
	for _, r := range s {
		n += runewidth.RuneWidth(r)
	}
	return n
}

func (m Metrics) runeWidth(r rune) int {
	if m.Measure == MeasureCells {
		return runewidth.RuneWidth(r)
	}
	return 1
}

// ignoredAt reports the ignored sequence starting at byte offset i, if any.
func (m Metrics) ignoredAt(s string, i int) string {
	for _, seq := range m.Ignore {
		if seq != "" && strings.HasPrefix(s[i:], seq) {
			return seq
		}
	}
	return ""
}

// Pad fills s up to width with padChar. Centred text gets the floor half of
// the deficit as padChar on the left and the ceiling half as plain spaces on
// the right. Text already wider than width is returned unchanged.
func (m Metrics) Pad(s string, width int, padChar rune, align Align) string {
	deficit := width - m.Length(s)
	if deficit <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return repeat(padChar, deficit) + s
	case AlignCenter:
		left := deficit / 2
		return repeat(padChar, left) + s + strings.Repeat(" ", deficit-left)
	default:
		return s + repeat(padChar, deficit)
	}
}

// PadLeftAndRight places left and right at the two edges of a width-wide
// field with padChar filling the gap.
func (m Metrics) PadLeftAndRight(left, right string, width int, padChar rune) string {
	gap := width - m.Length(left) - m.Length(right)
	if gap < 0 {
		gap = 0
	}
	return left + repeat(padChar, gap) + right
}

func repeat(c rune, n int) string {
	if n <= 0 {
		return ""
	}
	if c == 0 {
		c = ' '
	}
	return strings.Repeat(string(c), n)
}

// DisplayLength is Metrics{Ignore: ignored}.Length(text).
func DisplayLength(text string, ignored ...string) int {
	return Metrics{Ignore: ignored}.Length(text)
}

// Pad pads text to width without any ignored sequences.
func Pad(text string, width int, padChar rune, align Align) string {
	return Metrics{}.Pad(text, width, padChar, align)
}

// LeftAndRightPad joins left and right with padChar so the result is width long.
func LeftAndRightPad(left, right string, width int, padChar rune) string {
	return Metrics{}.PadLeftAndRight(left, right, width, padChar)
}

// ShortenRight truncates text to maxWidth, ending in an ellipsis.
func ShortenRight(text string, maxWidth int, ignored ...string) string {
	return Metrics{Ignore: ignored}.ShortenRight(text, maxWidth)
}

// ShortenLeft truncates text to maxWidth, starting with an ellipsis.
func ShortenLeft(text string, maxWidth int, ignored ...string) string {
	return Metrics{Ignore: ignored}.ShortenLeft(text, maxWidth)
}

// WordWrap breaks text into lines narrower than maxWidth.
func WordWrap(text string, maxWidth int, ignored ...string) []string {
	return Metrics{Ignore: ignored}.Wrap(text, maxWidth)
}

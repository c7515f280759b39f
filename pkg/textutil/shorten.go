package textutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// ShortenRight truncates s to maxWidth display characters, the last three of
// which become an ellipsis. Ignored sequences never consume the budget and are
// all kept at their original position relative to the surviving characters.
// That includes markers that sat in the cut-off tail: they are emitted in
// order just before the ellipsis, so a closing code such as a colour reset
// still ends the shortened text.
// For maxWidth of three or less the first maxWidth characters are returned
// with the ignored sequences stripped and no ellipsis.
func (m Metrics) ShortenRight(s string, maxWidth int) string {
	if m.Length(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return m.prefix(m.Strip(s), maxWidth)
	}

	budget := maxWidth - len(Ellipsis)
	var b strings.Builder
	used := 0
	full := false
	for i := 0; i < len(s); {
		if seq := m.ignoredAt(s, i); seq != "" {
			b.WriteString(seq)
			i += len(seq)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		start := i
		i += size
		if full {
			continue
		}
		w := m.runeWidth(r)
		if used+w > budget {
			full = true
			continue
		}
		b.WriteString(s[start:i])
		used += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// ShortenLeft is the mirror image of ShortenRight: the ellipsis leads and the
// tail of s is kept.
func (m Metrics) ShortenLeft(s string, maxWidth int) string {
	mirrored := Metrics{Ignore: make([]string, len(m.Ignore)), Measure: m.Measure}
	for i, seq := range m.Ignore {
		mirrored.Ignore[i] = reverse(seq)
	}
	return reverse(mirrored.ShortenRight(reverse(s), maxWidth))
}

// prefix returns the leading runes of s that fit into n display units.
func (m Metrics) prefix(s string, n int) string {
	used := 0
	for i, r := range s {
		w := m.runeWidth(r)
		if used+w > n {
			return s[:i]
		}
		used += w
	}
	return s
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

package textutil

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits s on single spaces and greedily packs the tokens into lines.
// A line is flushed as soon as appending the next token (joined by a space)
// would reach maxWidth. Tokens wider than maxWidth are first cut into
// maxWidth-wide chunks; ignored sequences stay attached to the characters in
// front of them. Chunks are cut by display length, not by byte or rune count,
// so a token carrying markers is never split inside a marker and every chunk
// but the last is exactly maxWidth wide on screen. The result always holds at
// least one line, so empty input yields [""].
func (m Metrics) Wrap(s string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}

	var lines []string
	line := ""
	for _, tok := range m.splitTokens(s, maxWidth) {
		candidate := tok
		if line != "" {
			candidate = line + " " + tok
		}
		if m.Length(candidate) >= maxWidth {
			if line != "" {
				lines = append(lines, line)
			}
			line = tok
			continue
		}
		line = candidate
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

func (m Metrics) splitTokens(s string, maxWidth int) []string {
	fields := strings.Split(s, " ")
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if m.Length(tok) <= maxWidth {
			tokens = append(tokens, tok)
			continue
		}
		start, used := 0, 0
		for i := 0; i < len(tok); {
			if seq := m.ignoredAt(tok, i); seq != "" {
				i += len(seq)
				continue
			}
			r, size := utf8.DecodeRuneInString(tok[i:])
			w := m.runeWidth(r)
			if used+w > maxWidth && used > 0 {
				tokens = append(tokens, tok[start:i])
				start, used = i, 0
			}
			used += w
			i += size
		}
		tokens = append(tokens, tok[start:])
	}
	return tokens
}

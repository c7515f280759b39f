package formatter

import "strings"

const (
	vertical   = "│"
	horizontal = "─"
)

type borderPosition int

const (
	borderTop borderPosition = iota
	borderMiddle
	borderBottom
)

type borderGlyphs struct {
	left, junction, right string
}

var glyphs = map[borderPosition]borderGlyphs{
	borderTop:    {left: "┌", junction: "┬", right: "┐"},
	borderMiddle: {left: "├", junction: "┼", right: "┤"},
	borderBottom: {left: "└", junction: "┴", right: "┘"},
}

// slotWidth is the number of characters between two vertical bars: content,
// left padding and border padding.
func (f *Formatter) slotWidth(column int) int {
	w := f.cfg.ColumnWidth(column) + f.cfg.LeftColumnPadding(column)
	if f.cfg.opts.BorderPadding {
		w += 2
	}
	return w
}

func (f *Formatter) border(pos borderPosition) string {
	g := glyphs[pos]
	var b strings.Builder
	b.WriteString(g.left)
	for c := 0; c < f.cfg.NumberOfColumns(); c++ {
		if c > 0 {
			b.WriteString(g.junction)
		}
		b.WriteString(strings.Repeat(horizontal, f.slotWidth(c)))
	}
	b.WriteString(g.right)
	return b.String()
}

func (f *Formatter) separator(kind Separator) string {
	glyph := kind.glyph()
	if !f.cfg.opts.Border {
		width := 0
		for c := 0; c < f.cfg.NumberOfColumns(); c++ {
			width += f.slotWidth(c)
		}
		return strings.Repeat(glyph, width)
	}
	var b strings.Builder
	for c := 0; c < f.cfg.NumberOfColumns(); c++ {
		b.WriteString(vertical)
		b.WriteString(strings.Repeat(glyph, f.slotWidth(c)))
	}
	b.WriteString(vertical)
	return b.String()
}

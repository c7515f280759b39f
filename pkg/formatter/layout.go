package formatter

import (
	"fmt"
	"math"
	"strings"
)

// goldenRatio splits a left-and-right column that has to be truncated: the
// left fragment gets this share of the width, the right one the rest.
const goldenRatio = 0.618

// segment is one physical line of one column.
type segment struct {
	left  string
	right string
	sided bool
}

// layoutRow turns a logical row into per-column lists of physical lines.
func (f *Formatter) layoutRow(index int, row Row) ([][]segment, error) {
	cells := row.Cells()
	n := f.cfg.NumberOfColumns()
	if len(cells) > n {
		return nil, fmt.Errorf("row %d: %d cells for %d columns: %w", index, len(cells), n, ErrColumnCount)
	}

	columns := make([][]segment, n)
	for c := 0; c < n; c++ {
		cell := Text("")
		if c < len(cells) {
			cell = cells[c]
		} else if f.cfg.Alignment(c) == AlignLeftAndRight {
			cell = Sided("", "")
		}
		segs, err := f.layoutCell(index, c, cell)
		if err != nil {
			return nil, err
		}
		columns[c] = segs
	}
	return columns, nil
}

func (f *Formatter) layoutCell(row, column int, cell Cell) ([]segment, error) {
	align := f.cfg.Alignment(column)
	if (align == AlignLeftAndRight) != cell.IsSided() {
		return nil, &ColumnTypeError{Row: row, Column: column, Alignment: align}
	}
	width := f.cfg.ColumnWidth(column)
	if align == AlignLeftAndRight {
		return f.layoutSided(row, column, cell, width), nil
	}

	text := strings.TrimSpace(cell.Value())
	if !f.cfg.opts.Wrap() {
		short := f.metrics.ShortenRight(text, width)
		if short != text {
			f.log.V(1).Info("truncated cell", "row", row, "column", column, "width", width)
		}
		return []segment{{left: short}}, nil
	}

	lines := f.metrics.Wrap(text, width)
	if len(lines) > 1 {
		f.log.V(1).Info("wrapped cell", "row", row, "column", column, "width", width, "lines", len(lines))
	}
	segs := make([]segment, len(lines))
	for i, l := range lines {
		segs[i] = segment{left: l}
	}
	return segs, nil
}

// layoutSided keeps both fragments on one line when they fit with a space
// between them. Otherwise it truncates them to golden-ratio budgets, or wraps
// the left fragment and puts the right one after it, on the last left line
// if there is room.
func (f *Formatter) layoutSided(row, column int, cell Cell, width int) []segment {
	left, right := cell.Parts()
	if f.metrics.Length(left+" "+right) <= width {
		return []segment{{left: left, right: right, sided: true}}
	}

	if !f.cfg.opts.Wrap() {
		leftBudget := int(math.Floor(float64(width)*goldenRatio)) - 1
		rightBudget := int(math.Floor(float64(width) * (1 - goldenRatio)))
		f.log.V(1).Info("truncated two-part cell", "row", row, "column", column, "leftWidth", leftBudget, "rightWidth", rightBudget)
		return []segment{{
			left:  f.metrics.ShortenRight(left, leftBudget),
			right: f.metrics.ShortenLeft(right, rightBudget),
			sided: true,
		}}
	}

	wrapped := f.metrics.Wrap(strings.TrimSpace(left), width)
	segs := make([]segment, 0, len(wrapped)+1)
	for _, l := range wrapped[:len(wrapped)-1] {
		segs = append(segs, segment{left: l, sided: true})
	}
	last := wrapped[len(wrapped)-1]
	if f.metrics.Length(last+" "+right) <= width {
		f.log.V(1).Info("wrapped two-part cell", "row", row, "column", column, "lines", len(segs)+1)
		return append(segs, segment{left: last, right: right, sided: true})
	}

	segs = append(segs, segment{left: last, sided: true})
	for _, r := range f.metrics.Wrap(strings.TrimSpace(right), width) {
		segs = append(segs, segment{right: r, sided: true})
	}
	f.log.V(1).Info("wrapped two-part cell", "row", row, "column", column, "lines", len(segs))
	return segs
}

// alignColumn renders one physical line of a column at its full slot width,
// without border padding.
func (f *Formatter) alignColumn(seg segment, column int) string {
	width := f.cfg.ColumnWidth(column)
	pad := f.cfg.opts.Padding()
	indent := strings.Repeat(string(pad), f.cfg.LeftColumnPadding(column))
	if seg.sided {
		return indent + f.metrics.PadLeftAndRight(seg.left, seg.right, width, pad)
	}
	return indent + f.metrics.Pad(seg.left, width, pad, f.cfg.Alignment(column).textAlign())
}

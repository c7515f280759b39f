package formatter

import (
	"fmt"
	"strings"
)

// Separator is the kind of rule line a separator row renders.
type Separator int

const (
	NoSeparator Separator = iota
	SingleLine
	DoubleLine
	EmptyLine
)

func (s Separator) String() string {
	switch s {
	case SingleLine:
		return "single"
	case DoubleLine:
		return "double"
	case EmptyLine:
		return "empty"
	default:
		return "none"
	}
}

func (s Separator) glyph() string {
	switch s {
	case SingleLine:
		return "─"
	case DoubleLine:
		return "═"
	default:
		return " "
	}
}

// ParseSeparator accepts "single" (or "line", "---"), "double" (or "===")
// and "empty" (or "blank").
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "line", "---", "─":
		return SingleLine, nil
	case "double", "===", "═":
		return DoubleLine, nil
	case "empty", "blank":
		return EmptyLine, nil
	}
	return NoSeparator, fmt.Errorf("unknown separator %q", s)
}

// Cell is the content of one column of a row: either plain text or, for
// left-and-right columns, a left and a right fragment.
type Cell struct {
	left  string
	right string
	sided bool
}

// Text returns a single-sided cell.
func Text(s string) Cell {
	return Cell{left: s}
}

// Sided returns a cell for a left-and-right column.
func Sided(left, right string) Cell {
	return Cell{left: left, right: right, sided: true}
}

func (c Cell) IsSided() bool {
	return c.sided
}

// Value returns the text of a single-sided cell, or the left fragment.
func (c Cell) Value() string {
	return c.left
}

// Parts returns both fragments of a sided cell.
func (c Cell) Parts() (left, right string) {
	return c.left, c.right
}

// Row is either a list of cells or a separator.
type Row struct {
	cells     []Cell
	separator Separator
}

var (
	LineSeparator       = SeparatorRow(SingleLine)
	DoubleLineSeparator = SeparatorRow(DoubleLine)
	EmptyLineSeparator  = SeparatorRow(EmptyLine)
)

// NewRow returns a data row. Columns without a cell render empty.
func NewRow(cells ...Cell) Row {
	return Row{cells: append([]Cell(nil), cells...)}
}

// Strings returns a data row of plain text cells.
func Strings(values ...string) Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return Row{cells: cells}
}

// SeparatorRow returns a row that renders as a rule line of the given kind.
func SeparatorRow(kind Separator) Row {
	return Row{separator: kind}
}

func (r Row) Cells() []Cell {
	return r.cells
}

func (r Row) Separator() Separator {
	return r.separator
}

func (r Row) IsSeparator() bool {
	return r.separator != NoSeparator
}

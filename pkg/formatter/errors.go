package formatter

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an inconsistent configuration, such as a
	// different number of alignments and column widths.
	ErrConfiguration = errors.New("invalid formatter configuration")

	// ErrColumnType reports a cell whose shape does not match its column:
	// a Sided cell in a single-sided column or a plain cell in a
	// left-and-right column.
	ErrColumnType = errors.New("cell does not match column alignment")

	// ErrColumnCount reports a row with more cells than configured columns.
	ErrColumnCount = errors.New("row has more cells than columns")
)

// ColumnTypeError locates an ErrColumnType failure.
type ColumnTypeError struct {
	Row       int
	Column    int
	Alignment Alignment
}

func (e *ColumnTypeError) Error() string {
	if e.Alignment == AlignLeftAndRight {
		return fmt.Sprintf("row %d, column %d: %s column needs a two-part cell: %v", e.Row, e.Column, e.Alignment, ErrColumnType)
	}
	return fmt.Sprintf("row %d, column %d: two-part cell in %s column: %v", e.Row, e.Column, e.Alignment, ErrColumnType)
}

func (e *ColumnTypeError) Unwrap() error {
	return ErrColumnType
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/colfmt/pkg/textutil"
)

// Alignment controls where a column places its text.
type Alignment int

const (
	// AlignLeft is the default used when no alignments are configured.
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	// AlignLeftAndRight places two fragments at the left and right edge of
	// the column. Cells of such columns must be built with Sided.
	AlignLeftAndRight
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignLeftAndRight:
		return "left-and-right"
	default:
		return "left"
	}
}

// ParseAlignment converts a name such as "left", "center" or
// "left-and-right" into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "l":
		return AlignLeft, nil
	case "right", "r":
		return AlignRight, nil
	case "center", "centre", "c":
		return AlignCenter, nil
	case "left-and-right", "left_and_right", "leftright", "lr":
		return AlignLeftAndRight, nil
	}
	return AlignLeft, fmt.Errorf("%w: unknown alignment %q", ErrConfiguration, s)
}

func (a Alignment) textAlign() textutil.Align {
	switch a {
	case AlignRight:
		return textutil.AlignRight
	case AlignCenter:
		return textutil.AlignCenter
	default:
		return textutil.AlignLeft
	}
}

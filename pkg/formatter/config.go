package formatter

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colfmt/pkg/textutil"
)

// AnyColumn marks a highlight rule that applies to every column.
const AnyColumn = -1

// Options holds the table-wide switches of a Config.
type Options struct {
	// Border draws box-drawing lines around and between columns.
	Border bool
	// BorderPadding adds one padding character on both sides of every column.
	BorderPadding bool
	// PaddingChar fills unused column space. Zero means a space.
	PaddingChar rune
	// WrapColumns wraps overlong text onto further lines instead of
	// truncating it with an ellipsis. Nil means true.
	WrapColumns *bool
	// LineFeed prefixes the rendered output with a newline.
	LineFeed bool
	// Measure selects how display length is counted.
	Measure textutil.Measure
	// Logger receives layout decisions at V(1). The zero value discards them.
	Logger logr.Logger
}

// DefaultOptions returns the options used when nothing is configured:
// no border, no border padding, space padding and wrapping on.
func DefaultOptions() Options {
	return Options{PaddingChar: ' ', WrapColumns: Bool(true)}
}

// Bool returns a pointer to b, for the optional fields of Options.
func Bool(b bool) *bool {
	return &b
}

// Wrap reports whether overlong cells are wrapped.
func (o Options) Wrap() bool {
	return o.WrapColumns == nil || *o.WrapColumns
}

// Padding returns the effective padding character.
func (o Options) Padding() rune {
	if o.PaddingChar == 0 {
		return ' '
	}
	return o.PaddingChar
}

// Highlight is a word that gets wrapped in colour escape codes on output.
type Highlight struct {
	Word   string
	Color  Color
	Column int
}

// Config describes the columns of a table: their widths, alignments, left
// padding, and the words and sequences that need special treatment.
//
// The mutators return the Config so calls can be chained. An invalid argument
// does not panic; it is recorded and reported by Err and by every Format call
// of a Formatter built from the Config.
type Config struct {
	widths      []int
	alignments  []Alignment
	leftPadding []int
	effective   []int
	opts        Options
	highlights  []Highlight
	ignore      []string
	err         error
}

// NewConfig validates the column widths and alignments and computes the
// effective content width of every column. A nil alignments slice aligns all
// columns left.
func NewConfig(widths []int, alignments []Alignment, opts Options) (*Config, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: at least one column is required", ErrConfiguration)
	}
	if alignments == nil {
		alignments = make([]Alignment, len(widths))
	}
	if len(alignments) != len(widths) {
		return nil, fmt.Errorf("%w: %d alignments for %d columns", ErrConfiguration, len(alignments), len(widths))
	}
	for i, w := range widths {
		if w < 1 {
			return nil, fmt.Errorf("%w: column %d has width %d", ErrConfiguration, i, w)
		}
	}
	for i, a := range alignments {
		if a < AlignLeft || a > AlignLeftAndRight {
			return nil, fmt.Errorf("%w: column %d has unknown alignment %d", ErrConfiguration, i, a)
		}
	}

	c := &Config{
		widths:      append([]int(nil), widths...),
		alignments:  append([]Alignment(nil), alignments...),
		leftPadding: make([]int, len(widths)),
		opts:        opts,
	}
	if opts.WrapColumns != nil {
		c.opts.WrapColumns = Bool(*opts.WrapColumns)
	}
	c.recompute()
	for i, e := range c.effective {
		if e < 1 {
			return nil, fmt.Errorf("%w: column %d leaves no room for content (width %d)", ErrConfiguration, i, c.widths[i])
		}
	}
	return c, nil
}

func (c *Config) recompute() {
	c.effective = make([]int, len(c.widths))
	for i := range c.widths {
		c.effective[i] = c.contentWidth(i, c.leftPadding[i])
	}
}

// contentWidth is the space left in column i after borders, border padding
// and the given left padding.
func (c *Config) contentWidth(i, leftPadding int) int {
	w := c.widths[i]
	if c.opts.BorderPadding {
		w -= 2
	}
	if c.opts.Border {
		w--
		if i == 0 {
			w--
		}
	}
	return w - leftPadding
}

func (c *Config) fail(err error) *Config {
	if c.err == nil {
		c.err = err
	}
	return c
}

// Err returns the first error recorded by a mutator.
func (c *Config) Err() error {
	return c.err
}

// HighlightWord colours every occurrence of word. With a column index the
// rule only applies inside that column; AnyColumn is the same as passing no
// index. Highlighting the same word again for the same scope replaces the
// earlier colour.
//
// All words that apply to a column are painted in a single left-to-right pass,
// so painted text is never matched again. The leftmost match wins, and when
// several words match at the same position the one registered first wins:
// with "OK" registered before "NOT OK", the text "NOT OK" is painted entirely
// in the colour of "NOT OK", and "OK" keeps its colour only where it stands
// on its own.
func (c *Config) HighlightWord(word string, color Color, column ...int) *Config {
	if word == "" {
		return c.fail(fmt.Errorf("%w: cannot highlight an empty word", ErrConfiguration))
	}
	if color.Foreground == "" {
		return c.fail(fmt.Errorf("%w: highlight %q has no foreground color", ErrConfiguration, word))
	}
	col := AnyColumn
	switch len(column) {
	case 0:
	case 1:
		col = column[0]
		if col != AnyColumn && (col < 0 || col >= len(c.widths)) {
			return c.fail(fmt.Errorf("%w: highlight %q targets column %d of %d", ErrConfiguration, word, col, len(c.widths)))
		}
	default:
		return c.fail(fmt.Errorf("%w: highlight %q takes at most one column", ErrConfiguration, word))
	}

	for i, h := range c.highlights {
		if h.Word == word && h.Column == col {
			c.highlights[i].Color = color
			return c
		}
	}
	c.highlights = append(c.highlights, Highlight{Word: word, Color: color, Column: col})
	return c
}

// SetSequencesToIgnore replaces the sequences that count as zero-width.
// Empty sequences are dropped.
func (c *Config) SetSequencesToIgnore(seqs ...string) *Config {
	c.ignore = c.ignore[:0:0]
	for _, s := range seqs {
		if s != "" {
			c.ignore = append(c.ignore, s)
		}
	}
	return c
}

// SetLeftColumnPadding indents column by width padding characters, taking
// the space from its content width.
func (c *Config) SetLeftColumnPadding(column, width int) *Config {
	if column < 0 || column >= len(c.widths) {
		return c.fail(fmt.Errorf("%w: left padding for column %d of %d", ErrConfiguration, column, len(c.widths)))
	}
	if width < 0 {
		return c.fail(fmt.Errorf("%w: negative left padding %d for column %d", ErrConfiguration, width, column))
	}
	if c.contentWidth(column, width) < 1 {
		return c.fail(fmt.Errorf("%w: left padding %d leaves no room in column %d", ErrConfiguration, width, column))
	}
	c.leftPadding[column] = width
	c.recompute()
	return c
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	out := &Config{
		widths:      append([]int(nil), c.widths...),
		alignments:  append([]Alignment(nil), c.alignments...),
		leftPadding: append([]int(nil), c.leftPadding...),
		effective:   append([]int(nil), c.effective...),
		opts:        c.opts,
		highlights:  append([]Highlight(nil), c.highlights...),
		ignore:      append([]string(nil), c.ignore...),
		err:         c.err,
	}
	if c.opts.WrapColumns != nil {
		out.opts.WrapColumns = Bool(*c.opts.WrapColumns)
	}
	return out
}

// NumberOfColumns returns the number of configured columns.
func (c *Config) NumberOfColumns() int {
	return len(c.widths)
}

// ColumnWidth returns the effective content width of column i.
func (c *Config) ColumnWidth(i int) int {
	return c.effective[i]
}

// ConfiguredWidth returns the width column i was configured with.
func (c *Config) ConfiguredWidth(i int) int {
	return c.widths[i]
}

func (c *Config) Alignment(i int) Alignment {
	return c.alignments[i]
}

func (c *Config) LeftColumnPadding(i int) int {
	return c.leftPadding[i]
}

// TotalWidth is the display width of every rendered line.
func (c *Config) TotalWidth() int {
	total := 0
	for _, w := range c.widths {
		total += w
	}
	return total
}

// Highlights returns a copy of the highlight rules in registration order.
func (c *Config) Highlights() []Highlight {
	return append([]Highlight(nil), c.highlights...)
}

// SequencesToIgnore returns a copy of the zero-width sequences.
func (c *Config) SequencesToIgnore() []string {
	return append([]string(nil), c.ignore...)
}

func (c *Config) Options() Options {
	return c.opts
}

// Metrics returns the text metrics for the configured ignore set and measure.
func (c *Config) Metrics() textutil.Metrics {
	return textutil.Metrics{Ignore: c.SequencesToIgnore(), Measure: c.opts.Measure}
}

// Package formatter renders rows of text into fixed-width columns for
// terminals, receipts and log output.
//
// A Config describes the columns; a Formatter renders rows against a snapshot
// of it:
//
//	cfg, err := formatter.NewConfig([]int{20, 30, 30},
//		[]formatter.Alignment{formatter.AlignLeft, formatter.AlignCenter, formatter.AlignRight},
//		formatter.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	out, err := formatter.New(cfg).Format([]formatter.Row{
//		formatter.Strings("row 1 column 1", "row 1 column 2", "254,00"),
//	})
//
// Every rendered line has the same display width: the sum of the configured
// column widths.
package formatter

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colfmt/pkg/textutil"
)

// Formatter renders rows according to a Config. It is safe for concurrent
// use: Format does not mutate it.
type Formatter struct {
	cfg          *Config
	metrics      textutil.Metrics
	highlighters []*strings.Replacer
	log          logr.Logger
}

// New returns a Formatter for a copy of cfg. Later changes to cfg do not
// affect it.
func New(cfg *Config) *Formatter {
	snapshot := cfg.Clone()
	return &Formatter{
		cfg:          snapshot,
		metrics:      snapshot.Metrics(),
		highlighters: buildHighlighters(snapshot),
		log:          snapshot.opts.Logger.WithName("formatter"),
	}
}

// buildHighlighters prepares one replacer per column from the rules that apply
// to it. A single pass per line keeps escape codes inserted for one word from
// being matched by another rule.
func buildHighlighters(cfg *Config) []*strings.Replacer {
	out := make([]*strings.Replacer, cfg.NumberOfColumns())
	for c := range out {
		var pairs []string
		for _, h := range cfg.highlights {
			if h.Column == AnyColumn || h.Column == c {
				pairs = append(pairs, h.Word, h.Color.Paint(h.Word))
			}
		}
		if len(pairs) > 0 {
			out[c] = strings.NewReplacer(pairs...)
		}
	}
	return out
}

// Config returns the snapshot the Formatter renders with.
func (f *Formatter) Config() *Config {
	return f.cfg.Clone()
}

// Format renders rows into lines joined by "\n", without a trailing newline.
// On error no partial output is returned.
func (f *Formatter) Format(rows []Row) (string, error) {
	if err := f.cfg.Err(); err != nil {
		return "", err
	}

	border := f.cfg.opts.Border
	var lines []string
	for i, row := range rows {
		if border {
			pos := borderMiddle
			if i == 0 {
				pos = borderTop
			}
			lines = append(lines, f.border(pos))
		}
		if row.IsSeparator() {
			lines = append(lines, f.separator(row.Separator()))
			continue
		}
		physical, err := f.renderRow(i, row)
		if err != nil {
			return "", err
		}
		lines = append(lines, physical...)
	}
	if border && len(rows) > 0 {
		lines = append(lines, f.border(borderBottom))
	}

	out := strings.Join(lines, "\n")
	if f.cfg.opts.LineFeed {
		out = "\n" + out
	}
	return out, nil
}

// FormatLine renders a single row.
func (f *Formatter) FormatLine(cells ...Cell) (string, error) {
	return f.Format([]Row{NewRow(cells...)})
}

// FormatStrings renders a single row of plain text cells.
func (f *Formatter) FormatStrings(values ...string) (string, error) {
	return f.Format([]Row{Strings(values...)})
}

func (f *Formatter) renderRow(index int, row Row) ([]string, error) {
	columns, err := f.layoutRow(index, row)
	if err != nil {
		return nil, err
	}
	height := 0
	for _, segs := range columns {
		height = max(height, len(segs))
	}

	pad := ""
	if f.cfg.opts.BorderPadding {
		pad = string(f.cfg.opts.Padding())
	}
	lines := make([]string, height)
	for i := range lines {
		var b strings.Builder
		for c, segs := range columns {
			var seg segment
			if i < len(segs) {
				seg = segs[i]
			}
			if f.cfg.opts.Border {
				b.WriteString(vertical)
			}
			text := f.alignColumn(seg, c)
			if h := f.highlighters[c]; h != nil {
				text = h.Replace(text)
			}
			b.WriteString(pad)
			b.WriteString(text)
			b.WriteString(pad)
		}
		if f.cfg.opts.Border {
			b.WriteString(vertical)
		}
		lines[i] = b.String()
	}
	return lines, nil
}

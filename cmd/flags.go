package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/loader"
	"github.com/oakwood-commons/colfmt/pkg/settings"
)

var (
	_ pflag.Value = (*widthsValue)(nil)
	_ pflag.Value = (*alignmentsValue)(nil)
	_ pflag.Value = (*colorModeValue)(nil)
)

// widthsValue is a pflag.Value for --widths.
type widthsValue struct {
	widths []int
}

func (v *widthsValue) String() string {
	parts := make([]string, len(v.widths))
	for i, w := range v.widths {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func (v *widthsValue) Set(s string) error {
	widths, err := parseWidths(s)
	if err != nil {
		return err
	}
	v.widths = widths
	return nil
}

func (v *widthsValue) Type() string { return "widths" }

// alignmentsValue is a pflag.Value for --align.
type alignmentsValue struct {
	aligns []formatter.Alignment
}

func (v *alignmentsValue) String() string {
	parts := make([]string, len(v.aligns))
	for i, a := range v.aligns {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func (v *alignmentsValue) Set(s string) error {
	aligns, err := parseAlignments(s)
	if err != nil {
		return err
	}
	v.aligns = aligns
	return nil
}

func (v *alignmentsValue) Type() string { return "alignments" }

// colorModeValue is a pflag.Value for --color.
type colorModeValue settings.ColorMode

func (v *colorModeValue) String() string { return string(*v) }

func (v *colorModeValue) Set(s string) error {
	m, err := settings.ParseColorMode(s)
	if err != nil {
		return err
	}
	*v = colorModeValue(m)
	return nil
}

func (v *colorModeValue) Type() string { return "mode" }

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseWidths(s string) ([]int, error) {
	parts := splitList(s)
	if parts == nil {
		return nil, nil
	}
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q", p)
		}
		if w < 1 {
			return nil, fmt.Errorf("width must be positive, got %d", w)
		}
		widths[i] = w
	}
	return widths, nil
}

func parseAlignments(s string) ([]formatter.Alignment, error) {
	parts := splitList(s)
	if parts == nil {
		return nil, nil
	}
	aligns := make([]formatter.Alignment, len(parts))
	for i, p := range parts {
		a, err := formatter.ParseAlignment(p)
		if err != nil {
			return nil, err
		}
		aligns[i] = a
	}
	return aligns, nil
}

// parseHighlight reads word=color[/background][@column]. The word may itself
// contain '=', so the colour starts after the last one.
func parseHighlight(s string) (loader.Highlight, error) {
	eq := strings.LastIndex(s, "=")
	if eq <= 0 || eq == len(s)-1 {
		return loader.Highlight{}, fmt.Errorf("invalid highlight %q (use word=color[/background][@column])", s)
	}
	h := loader.Highlight{Word: s[:eq]}
	rest := s[eq+1:]
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		col, err := strconv.Atoi(rest[at+1:])
		if err != nil {
			return loader.Highlight{}, fmt.Errorf("invalid highlight column in %q", s)
		}
		h.Column = &col
		rest = rest[:at]
	}
	h.Color, h.Background, _ = strings.Cut(rest, "/")
	if h.Color == "" {
		return loader.Highlight{}, fmt.Errorf("invalid highlight %q: missing color", s)
	}
	return h, nil
}

// flagOptions returns the render options set on the command line.
func flagOptions(cmd *cobra.Command) loader.Options {
	var opts loader.Options
	f := cmd.Flags()
	if f.Changed("border") {
		opts.Border = formatter.Bool(border)
	}
	if f.Changed("border-padding") {
		opts.BorderPadding = formatter.Bool(borderPadding)
	}
	if f.Changed("no-wrap") {
		opts.WrapColumns = formatter.Bool(!noWrap)
	}
	if f.Changed("line-feed") {
		opts.LineFeed = formatter.Bool(lineFeed)
	}
	if f.Changed("padding-char") {
		opts.PaddingChar = paddingChar
	}
	opts.Measure = measure
	return opts
}

// mergeOptions overlays the set fields of top onto base.
func mergeOptions(base, top loader.Options) loader.Options {
	if top.Border != nil {
		base.Border = top.Border
	}
	if top.BorderPadding != nil {
		base.BorderPadding = top.BorderPadding
	}
	if top.WrapColumns != nil {
		base.WrapColumns = top.WrapColumns
	}
	if top.LineFeed != nil {
		base.LineFeed = top.LineFeed
	}
	if top.PaddingChar != "" {
		base.PaddingChar = top.PaddingChar
	}
	if top.Measure != "" {
		base.Measure = top.Measure
	}
	return base
}

// resolveColumns applies --widths and --align to the columns of a document.
func resolveColumns(cols []loader.Column) ([]loader.Column, error) {
	widths, aligns := widthsFlag.widths, alignFlag.aligns
	if len(widths) > 0 {
		out := make([]loader.Column, len(widths))
		for i, w := range widths {
			out[i].Width = w
			if i < len(cols) {
				out[i].Align = cols[i].Align
				out[i].LeftPadding = cols[i].LeftPadding
			}
		}
		cols = out
	} else {
		cols = append([]loader.Column(nil), cols...)
	}
	if len(aligns) == 0 || len(cols) == 0 {
		return cols, nil
	}
	if len(aligns) != len(cols) {
		return nil, fmt.Errorf("%w: --align has %d values for %d columns", formatter.ErrConfiguration, len(aligns), len(cols))
	}
	for i, a := range aligns {
		cols[i].Align = a.String()
	}
	return cols, nil
}

package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/textutil"
)

var (
	// ErrNoColumns is returned when a table has no column widths.
	ErrNoColumns = errors.New("no columns declared")
	// ErrInvalidRow is returned for a row or cell of an unsupported shape.
	ErrInvalidRow = errors.New("invalid row")
)

// Document is one table: its column layout, render options and rows.
//
//	title: Receipt
//	columns:
//	  - {width: 30, align: left-and-right}
//	options: {paddingChar: "."}
//	highlights:
//	  - {word: OK, color: green}
//	rows:
//	  - [[Date, 2020-07-12]]
//	  - double
//	  - [{left: Total, right: "12,99"}]
//
// A document that is a bare list is read as rows only.
type Document struct {
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Columns    []Column    `json:"columns,omitempty" yaml:"columns,omitempty"`
	Options    Options     `json:"options,omitempty" yaml:"options,omitempty"`
	Ignore     []string    `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Rows       []any       `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Column declares the width and alignment of one column.
type Column struct {
	Width       int    `json:"width" yaml:"width"`
	Align       string `json:"align,omitempty" yaml:"align,omitempty"`
	LeftPadding int    `json:"leftPadding,omitempty" yaml:"leftPadding,omitempty"`
}

// Options overrides render options. Unset fields keep the caller's value.
type Options struct {
	Border        *bool  `json:"border,omitempty" yaml:"border,omitempty"`
	BorderPadding *bool  `json:"borderPadding,omitempty" yaml:"borderPadding,omitempty"`
	PaddingChar   string `json:"paddingChar,omitempty" yaml:"paddingChar,omitempty"`
	WrapColumns   *bool  `json:"wrapColumns,omitempty" yaml:"wrapColumns,omitempty"`
	LineFeed      *bool  `json:"lineFeed,omitempty" yaml:"lineFeed,omitempty"`
	Measure       string `json:"measure,omitempty" yaml:"measure,omitempty"`
}

// Highlight colours a word, optionally only inside one column.
type Highlight struct {
	Word       string `json:"word" yaml:"word"`
	Color      string `json:"color" yaml:"color"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Column     *int   `json:"column,omitempty" yaml:"column,omitempty"`
}

// NewDocument converts one parsed value into a Document.
func NewDocument(raw any) (*Document, error) {
	switch v := raw.(type) {
	case []any:
		return &Document{Rows: v}, nil
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert document: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid table document: %w", err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("invalid table document: expected a mapping or a list, got %T", raw)
}

// LoadDocuments parses input and converts every parsed value into a Document.
func LoadDocuments(input string, format Format) ([]*Document, error) {
	raw, err := Decode(input, format)
	if err != nil {
		return nil, err
	}
	return toDocuments(raw)
}

// LoadDocumentFile reads the tables of a file.
func LoadDocumentFile(lgr logr.Logger, path string) ([]*Document, error) {
	raw, err := LoadFileWithLogger(lgr, path)
	if err != nil {
		return nil, err
	}
	return toDocuments(raw)
}

func toDocuments(raw []any) ([]*Document, error) {
	docs := make([]*Document, 0, len(raw))
	for i, r := range raw {
		doc, err := NewDocument(r)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ParsePaddingChar accepts a single character. The empty string means a space.
func ParsePaddingChar(s string) (rune, error) {
	if s == "" {
		return ' ', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: padding character %q must be a single character", formatter.ErrConfiguration, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Apply overlays the set fields onto base.
func (o Options) Apply(base formatter.Options) (formatter.Options, error) {
	if o.Border != nil {
		base.Border = *o.Border
	}
	if o.BorderPadding != nil {
		base.BorderPadding = *o.BorderPadding
	}
	if o.WrapColumns != nil {
		base.WrapColumns = formatter.Bool(*o.WrapColumns)
	}
	if o.LineFeed != nil {
		base.LineFeed = *o.LineFeed
	}
	if o.PaddingChar != "" {
		r, err := ParsePaddingChar(o.PaddingChar)
		if err != nil {
			return base, err
		}
		base.PaddingChar = r
	}
	if o.Measure != "" {
		m, err := textutil.ParseMeasure(o.Measure)
		if err != nil {
			return base, fmt.Errorf("%w: %w", formatter.ErrConfiguration, err)
		}
		base.Measure = m
	}
	return base, nil
}

// Config builds the formatter configuration of the table, starting from base.
func (d *Document) Config(base formatter.Options) (*formatter.Config, error) {
	if len(d.Columns) == 0 {
		return nil, ErrNoColumns
	}
	opts, err := d.Options.Apply(base)
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(d.Columns))
	aligns := make([]formatter.Alignment, len(d.Columns))
	for i, c := range d.Columns {
		widths[i] = c.Width
		if aligns[i], err = formatter.ParseAlignment(c.Align); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
	}
	cfg, err := formatter.NewConfig(widths, aligns, opts)
	if err != nil {
		return nil, err
	}

	for i, c := range d.Columns {
		if c.LeftPadding != 0 {
			cfg.SetLeftColumnPadding(i, c.LeftPadding)
		}
	}
	cfg.SetSequencesToIgnore(d.Ignore...)
	for _, h := range d.Highlights {
		if err := h.Apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Err()
}

// Apply registers the highlight on cfg.
func (h Highlight) Apply(cfg *formatter.Config) error {
	color, err := h.Resolve()
	if err != nil {
		return err
	}
	if h.Column != nil {
		cfg.HighlightWord(h.Word, color, *h.Column)
	} else {
		cfg.HighlightWord(h.Word, color)
	}
	return cfg.Err()
}

// Resolve looks up the named colours.
func (h Highlight) Resolve() (formatter.Color, error) {
	fg, err := formatter.ColorByName(h.Color)
	if err != nil {
		return formatter.Color{}, fmt.Errorf("highlight %q: %w", h.Word, err)
	}
	if h.Background == "" {
		return formatter.NewColor(fg), nil
	}
	bg, err := formatter.ColorByName(h.Background)
	if err != nil {
		return formatter.Color{}, fmt.Errorf("highlight %q: %w", h.Word, err)
	}
	if bg.BG == "" {
		return formatter.Color{}, fmt.Errorf("%w: highlight %q: %s has no background variant", formatter.ErrConfiguration, h.Word, h.Background)
	}
	return formatter.NewColor(fg, bg), nil
}

// TableRows converts the raw rows into formatter rows.
//
// A list is a row of cells. A cell that is a two-element list or a mapping
// with left and right keys is a two-part cell; any other value is text.
// A scalar row such as "single", "double", "---", "===" or "" is a separator,
// as is a mapping with a separator key. Other scalar rows are one-cell rows.
func (d *Document) TableRows() ([]formatter.Row, error) {
	rows := make([]formatter.Row, 0, len(d.Rows))
	for i, raw := range d.Rows {
		row, err := convertRow(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func convertRow(raw any) (formatter.Row, error) {
	switch v := raw.(type) {
	case nil:
		return formatter.EmptyLineSeparator, nil
	case []any:
		cells := make([]formatter.Cell, len(v))
		for i, c := range v {
			cell, err := convertCell(c)
			if err != nil {
				return formatter.Row{}, fmt.Errorf("cell %d: %w", i, err)
			}
			cells[i] = cell
		}
		return formatter.NewRow(cells...), nil
	case map[string]any:
		if s, ok := v["separator"]; ok {
			kind, err := formatter.ParseSeparator(scalar(s))
			if err != nil {
				return formatter.Row{}, fmt.Errorf("%w: %w", ErrInvalidRow, err)
			}
			return formatter.SeparatorRow(kind), nil
		}
		cell, err := convertCell(v)
		if err != nil {
			return formatter.Row{}, err
		}
		return formatter.NewRow(cell), nil
	case string:
		if v == "" {
			return formatter.EmptyLineSeparator, nil
		}
		if kind, err := formatter.ParseSeparator(v); err == nil {
			return formatter.SeparatorRow(kind), nil
		}
		return formatter.Strings(v), nil
	}
	return formatter.Strings(scalar(raw)), nil
}

func convertCell(raw any) (formatter.Cell, error) {
	switch v := raw.(type) {
	case []any:
		if len(v) != 2 {
			return formatter.Cell{}, fmt.Errorf("%w: a two-part cell needs 2 values, got %d", ErrInvalidRow, len(v))
		}
		return formatter.Sided(scalar(v[0]), scalar(v[1])), nil
	case map[string]any:
		left, hasLeft := v["left"]
		right, hasRight := v["right"]
		if !hasLeft && !hasRight {
			return formatter.Cell{}, fmt.Errorf("%w: mapping cell needs left or right", ErrInvalidRow)
		}
		return formatter.Sided(scalar(left), scalar(right)), nil
	}
	return formatter.Text(scalar(raw)), nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

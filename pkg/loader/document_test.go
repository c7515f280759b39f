package loader

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/textutil"
)

const receiptYAML = `title: Receipt
columns:
  - width: 30
    align: left-and-right
options:
  paddingChar: "."
  wrapColumns: false
ignore: ["//B", "//O"]
highlights:
  - word: OK
    color: green
  - word: FAIL
    color: light-grey
    background: red
    column: 0
rows:
  - [[Date, 2020-07-12]]
  - double
  - [{left: Total, right: "12,99"}]
  - {separator: empty}
  - [[Status, OK]]
`

func TestLoadDocuments(t *testing.T) {
	docs, err := LoadDocuments(receiptYAML, FormatAuto)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	doc := docs[0]

	assert.Equal(t, "Receipt", doc.Title)
	require.Len(t, doc.Columns, 1)
	assert.Equal(t, Column{Width: 30, Align: "left-and-right"}, doc.Columns[0])
	assert.Equal(t, []string{"//B", "//O"}, doc.Ignore)

	cfg, err := doc.Config(formatter.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, '.', cfg.Options().Padding())
	assert.False(t, cfg.Options().Wrap())
	assert.Equal(t, []string{"//B", "//O"}, cfg.SequencesToIgnore())
	hs := cfg.Highlights()
	require.Len(t, hs, 2)
	assert.Equal(t, formatter.AnyColumn, hs[0].Column)
	assert.Equal(t, formatter.NewColor(formatter.LightGrey, formatter.Red), hs[1].Color)
	assert.Equal(t, 0, hs[1].Column)

	rows, err := doc.TableRows()
	require.NoError(t, err)
	out, err := formatter.New(cfg).Format(rows)
	require.NoError(t, err)
	want := strings.Join([]string{
		"Date" + strings.Repeat(".", 16) + "2020-07-12",
		strings.Repeat("═", 30),
		"Total" + strings.Repeat(".", 20) + "12,99",
		strings.Repeat(" ", 30),
		"Status" + strings.Repeat(".", 22) + "\033[0;32mOK\033[0m",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestLoadDocumentsTOML(t *testing.T) {
	input := `title = "Prices"
rows = [["Apple", "1,20"], ["Pear", 0.9]]

[options]
border = true

[[columns]]
width = 10

[[columns]]
width = 8
align = "right"
`
	docs, err := LoadDocuments(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	cfg, err := docs[0].Config(formatter.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, cfg.Options().Border)
	assert.Equal(t, formatter.AlignRight, cfg.Alignment(1))

	rows, err := docs[0].TableRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0.9", rows[1].Cells()[1].Value())
}

func TestLoadDocumentsRowsOnly(t *testing.T) {
	docs, err := LoadDocuments("a,b\nc,d\n", FormatCSV)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Columns)

	_, err = docs[0].Config(formatter.DefaultOptions())
	assert.ErrorIs(t, err, ErrNoColumns)

	rows, err := docs[0].TableRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "d", rows[1].Cells()[1].Value())
}

func TestLoadDocumentsMulti(t *testing.T) {
	docs, err := LoadDocuments("columns: [{width: 5}]\nrows: [[a]]\n---\ncolumns: [{width: 6}]\nrows: [[b]]\n", FormatYAML)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, 6, docs[1].Columns[0].Width)
}

func TestLoadDocumentsKeepsDateCells(t *testing.T) {
	input := "columns: [{width: 24}]\nrows:\n  - [[Date, 2020-07-12]]\n  - - 2021-01-02 03:04:05\n"
	for _, format := range []Format{FormatAuto, FormatYAML} {
		docs, err := LoadDocuments(input, format)
		require.NoError(t, err)
		rows, err := docs[0].TableRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, formatter.Sided("Date", "2020-07-12"), rows[0].Cells()[0], "format %s", format)
		assert.Equal(t, "2021-01-02 03:04:05", rows[1].Cells()[0].Value(), "format %s", format)
	}
}

func TestNewDocumentRejectsScalars(t *testing.T) {
	_, err := LoadDocuments("just text", FormatAuto)
	assert.ErrorContains(t, err, "document 1")
}

func TestTableRows(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want formatter.Row
	}{
		{name: "cells", raw: []any{"a", 1.5, true, nil}, want: formatter.Strings("a", "1.5", "true", "")},
		{name: "sided list", raw: []any{[]any{"l", "r"}}, want: formatter.NewRow(formatter.Sided("l", "r"))},
		{name: "sided map", raw: []any{map[string]any{"left": "l"}}, want: formatter.NewRow(formatter.Sided("l", ""))},
		{name: "single", raw: "---", want: formatter.LineSeparator},
		{name: "double", raw: "===", want: formatter.DoubleLineSeparator},
		{name: "empty string", raw: "", want: formatter.EmptyLineSeparator},
		{name: "null", raw: nil, want: formatter.EmptyLineSeparator},
		{name: "separator map", raw: map[string]any{"separator": "double"}, want: formatter.DoubleLineSeparator},
		{name: "scalar row", raw: "hello", want: formatter.Strings("hello")},
		{name: "number row", raw: float64(42), want: formatter.Strings("42")},
		{name: "sided row", raw: map[string]any{"left": "l", "right": "r"}, want: formatter.NewRow(formatter.Sided("l", "r"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := (&Document{Rows: []any{tt.raw}}).TableRows()
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0])
		})
	}

	invalid := []any{
		[]any{[]any{"a", "b", "c"}},
		[]any{map[string]any{"middle": "x"}},
		map[string]any{"separator": "dotted"},
	}
	for _, raw := range invalid {
		_, err := (&Document{Rows: []any{raw}}).TableRows()
		assert.ErrorIs(t, err, ErrInvalidRow, "%v", raw)
	}
}

func TestOptionsApply(t *testing.T) {
	yes, no := true, false
	base := formatter.DefaultOptions()
	base.Logger = logr.Discard()

	got, err := Options{
		Border:        &yes,
		BorderPadding: &yes,
		WrapColumns:   &no,
		LineFeed:      &yes,
		PaddingChar:   "·",
		Measure:       "cells",
	}.Apply(base)
	require.NoError(t, err)
	assert.True(t, got.Border)
	assert.True(t, got.BorderPadding)
	assert.False(t, got.Wrap())
	assert.True(t, got.LineFeed)
	assert.Equal(t, '·', got.PaddingChar)
	assert.Equal(t, textutil.MeasureCells, got.Measure)
	assert.True(t, base.Wrap(), "base is not modified")

	unchanged, err := Options{}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, base.Border, unchanged.Border)
	assert.Equal(t, base.PaddingChar, unchanged.PaddingChar)

	_, err = Options{PaddingChar: "ab"}.Apply(base)
	assert.ErrorIs(t, err, formatter.ErrConfiguration)
	_, err = Options{Measure: "pixels"}.Apply(base)
	assert.ErrorIs(t, err, formatter.ErrConfiguration)
}

func TestDocumentConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{name: "bad alignment", doc: Document{Columns: []Column{{Width: 5, Align: "justify"}}}},
		{name: "bad width", doc: Document{Columns: []Column{{Width: 0}}}},
		{name: "bad color", doc: Document{Columns: []Column{{Width: 5}}, Highlights: []Highlight{{Word: "x", Color: "ultraviolet"}}}},
		{name: "foreground-only background", doc: Document{Columns: []Column{{Width: 5}}, Highlights: []Highlight{{Word: "x", Color: "red", Background: "white"}}}},
		{name: "bad left padding", doc: Document{Columns: []Column{{Width: 5, LeftPadding: 5}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Config(formatter.DefaultOptions())
			assert.ErrorIs(t, err, formatter.ErrConfiguration)
		})
	}
}

func TestHighlightApply(t *testing.T) {
	cfg, err := formatter.NewConfig([]int{5, 5}, nil, formatter.DefaultOptions())
	require.NoError(t, err)

	col := 1
	require.NoError(t, Highlight{Word: "OK", Color: "green", Background: "black", Column: &col}.Apply(cfg))
	require.NoError(t, Highlight{Word: "no", Color: "light-red"}.Apply(cfg))

	got := cfg.Highlights()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Column)
	assert.Equal(t, "\033[0;32;40m", got[0].Color.Sequence())
	assert.Equal(t, formatter.AnyColumn, got[1].Column)

	col = 7
	err = Highlight{Word: "OK", Color: "green", Column: &col}.Apply(cfg)
	assert.ErrorIs(t, err, formatter.ErrConfiguration)
}

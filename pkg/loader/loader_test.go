package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{name: "JSON object", input: `{"columns": [{"width": 10}], "rows": [["a"]]}`, wantLen: 1},
		{name: "JSON rows", input: `[["a", "b"], ["c", "d"]]`, wantLen: 1},
		{name: "indented JSON rows", input: "[\n  [\"a\", \"b\"],\n  [\"c\", \"d\"]\n]", wantLen: 1},
		{name: "NDJSON", input: "{\"rows\": [[\"a\"]]}\n{\"rows\": [[\"b\"]]}\n\n{\"rows\": [[\"c\"]]}", wantLen: 3},
		{name: "YAML", input: "columns:\n  - width: 10\nrows:\n  - [a]", wantLen: 1},
		{name: "YAML rows", input: "- [a, b]\n- double\n- [c, d]", wantLen: 1},
		{name: "multi-document YAML", input: "rows: [[a]]\n---\nrows: [[b]]\n---\n", wantLen: 2},
		{name: "TOML", input: "title = \"t\"\n\n[[columns]]\nwidth = 10", wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}

	t.Run("invalid JSON falls back to YAML", func(t *testing.T) {
		got, err := LoadData(`{invalid}`)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, map[string]any{"invalid": nil}, got[0])
	})

	t.Run("YAML keeps date-like scalars as strings", func(t *testing.T) {
		got, err := LoadData("- [Date, 2020-07-12]")
		require.NoError(t, err)
		assert.Equal(t, []any{[]any{"Date", "2020-07-12"}}, got[0])
	})

	t.Run("YAML timestamps keep their text in every document", func(t *testing.T) {
		got, err := LoadData("rows:\n  - - Paid\n    - 2020-07-12T10:30:00Z\n---\nrows: [[Due, 2020-08-01]]\n")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, map[string]any{"rows": []any{[]any{"Paid", "2020-07-12T10:30:00Z"}}}, got[0])
		assert.Equal(t, map[string]any{"rows": []any{[]any{"Due", "2020-08-01"}}}, got[1])
	})

	t.Run("YAML anchors and merge keys", func(t *testing.T) {
		input := "base: &b {width: 10, align: right}\ncolumns:\n  - *b\n  - {<<: *b, align: left}\n"
		got, err := LoadData(input)
		require.NoError(t, err)
		m := got[0].(map[string]any)
		assert.Equal(t, []any{
			map[string]any{"width": 10, "align": "right"},
			map[string]any{"width": 10, "align": "left"},
		}, m["columns"])
	})

	t.Run("bracketed text inside a YAML block is not a TOML header", func(t *testing.T) {
		got, err := LoadData("rows:\n  - - |\n      [\"a\"]\n    - b\n")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"rows": []any{[]any{"[\"a\"]\n", "b"}}}, got[0])
	})

	t.Run("TOML-looking text that only parses as YAML", func(t *testing.T) {
		// Bare words are not TOML values.
		got, err := LoadData("a = b\nc = d")
		require.NoError(t, err)
		assert.Equal(t, []any{"a = b c = d"}, got)
	})

	t.Run("TOML errors surface when YAML fails too", func(t *testing.T) {
		_, err := LoadData("[table]\nkey = [1,\n: x")
		assert.ErrorContains(t, err, "invalid TOML")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadData(" \n\t")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestDecode(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		got, err := Decode("Apple, 1.20\nPear,0.90,extra\n\"a, b\",c\n", FormatCSV)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []any{
			[]any{"Apple", "1.20"},
			[]any{"Pear", "0.90", "extra"},
			[]any{"a, b", "c"},
		}, got[0])
	})

	t.Run("NDJSON rejects garbage lines", func(t *testing.T) {
		_, err := Decode("{\"rows\": []}\nnot json", FormatNDJSON)
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("explicit YAML does not detect JSON lines", func(t *testing.T) {
		got, err := Decode("[a, b]", FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, got[0])
	})

	t.Run("TOML integers", func(t *testing.T) {
		got, err := Decode("[[columns]]\nwidth = 10", FormatTOML)
		require.NoError(t, err)
		m := got[0].(map[string]any)
		cols := m["columns"].([]any)
		assert.Equal(t, int64(10), cols[0].(map[string]any)["width"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Decode("a", Format("xml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "JSON": FormatJSON, "yml": FormatYAML, "jsonl": FormatNDJSON, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, FormatTOML, FormatFromPath("/tmp/t.TOML"))
	assert.Equal(t, FormatAuto, FormatFromPath("table.txt"))
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "array of tables", input: "[[columns]]\nwidth = 20", want: true},
		{name: "key-value assignments", input: "title = \"x\"\nrows = []", want: true},
		{name: "dotted section header", input: "[options.extra]\nborder = true", want: true},
		{name: "quoted section header", input: "[\"table name\"]\nkey = 1", want: true},
		{name: "YAML mapping", input: "title: x\nrows: []", want: false},
		{name: "YAML list", input: "- [a]\n- [b]", want: false},
		{name: "JSON array", input: `[1, 2, 3]`, want: false},
		{name: "indented array in YAML block", input: "rows:\n  - text: |\n      [\"a\"]", want: false},
		{name: "indented section header", input: "  [options]\n  - a", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyTOML(tt.input), "isLikelyTOML(%q)", tt.input)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("extension selects parser", func(t *testing.T) {
		got, err := LoadFile(write("rows.csv", "a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{[]any{"a", "b"}}, got[0])
	})

	t.Run("wrong extension falls back to detection", func(t *testing.T) {
		var messages []string
		lgr := funcr.New(func(_, args string) { messages = append(messages, args) }, funcr.Options{Verbosity: 1})

		got, err := LoadFileWithLogger(lgr, write("oops.toml", `{"rows": [["a"]]}`))
		require.NoError(t, err)
		m, ok := got[0].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, m, "rows")
		require.Len(t, messages, 2)
		assert.Contains(t, messages[1], "extension parser failed")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := LoadFile(write("empty.yaml", ""))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

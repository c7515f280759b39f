package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyInput is returned for input that holds nothing but whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownFormat is returned for an input format name that is not supported.
	ErrUnknownFormat = errors.New("unknown input format")
)

// Format names an input encoding.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatCSV    Format = "csv"
)

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatNDJSON, FormatYAML, FormatTOML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "jsonl":
		return FormatNDJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension, or FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".csv":
		return FormatCSV
	}
	return FormatAuto
}

// LoadData parses input, auto-detecting its format. Supports:
// - multi-document YAML (separated by ---)
// - a single JSON value
// - newline-delimited JSON, one value per line
// - TOML
// - a single YAML document
//
// Every parsed document becomes one element of the result.
func LoadData(input string) ([]any, error) {
	return Decode(input, FormatAuto)
}

// Decode parses input in the given format. CSV input yields a single element:
// the list of records.
func Decode(input string, format Format) ([]any, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	switch format {
	case FormatJSON:
		return loadJSON(strings.TrimSpace(input))
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatYAML:
		return loadMultiDocYAML(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatCSV:
		return loadCSV(input)
	case FormatAuto, "":
		return detect(strings.TrimSpace(input))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func detect(input string) ([]any, error) {
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	// A JSON document spread over several lines would otherwise look like
	// NDJSON to the line heuristic.
	if json.Valid([]byte(input)) {
		return loadJSON(input)
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(input)
	}

	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(input) {
		docs, err := loadTOML(input)
		if err == nil {
			return docs, nil
		}
		if docs, yamlErr := loadYAML(input); yamlErr == nil {
			return docs, nil
		}
		return nil, err
	}

	// Invalid JSON may still be a YAML flow mapping or sequence.
	return loadYAML(input)
}

// LoadFile reads and parses a file. The extension selects the parser; when
// that parser fails, the content is auto-detected instead.
func LoadFile(path string) ([]any, error) {
	return LoadFileWithLogger(logr.Discard(), path)
}

// LoadFileWithLogger is LoadFile with format decisions logged at V(1).
func LoadFileWithLogger(lgr logr.Logger, path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := FormatFromPath(path)
	lgr.V(1).Info("loading file", "path", path, "format", format)

	docs, err := Decode(string(data), format)
	if err == nil || format == FormatAuto || format == FormatCSV || errors.Is(err, ErrEmptyInput) {
		return docs, err
	}
	lgr.V(1).Info("extension parser failed, detecting format", "path", path, "error", err.Error())
	return LoadData(string(data))
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(input), &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	data, err := yamlValue(&node)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{data}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		doc, err := yamlValue(&node)
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in YAML input")
	}
	return results, nil
}

// yamlValue converts a node tree into maps, slices and scalars. Timestamps
// keep their source text: decoding them would turn 2020-07-12 into a
// time.Time that prints with a clock and zone.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		if err := mergeYAMLMapping(m, n); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// mergeYAMLMapping copies the pairs of n into m. Keys from a << merge never
// override keys set explicitly in n.
func mergeYAMLMapping(m map[string]any, n *yaml.Node) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		k, err := yamlKey(key)
		if err != nil {
			return err
		}
		v, err := yamlValue(val)
		if err != nil {
			return err
		}
		m[k] = v
	}
	for _, src := range merges {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = src.Content
		}
		for _, s := range sources {
			if s.Kind == yaml.AliasNode {
				s = s.Alias
			}
			if s.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge value must be a mapping", s.Line)
			}
			extra := make(map[string]any, len(s.Content)/2)
			if err := mergeYAMLMapping(extra, s); err != nil {
				return err
			}
			for k, v := range extra {
				if _, ok := m[k]; !ok {
					m[k] = v
				}
			}
		}
	}
	return nil
}

func yamlKey(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	v, err := yamlValue(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// loadNDJSON parses one JSON value per line. Blank lines are skipped; a line
// that is not JSON is an error.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", i+1, err)
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	return results, nil
}

// isLikelyNDJSON reports whether a majority of the non-empty lines start
// like a JSON object or array.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// [columns], [[columns]], ["quoted"], [a.b] at the start of a line; not
	// JSON arrays like [1, 2] nor indented text inside a YAML block.
	tomlSection = regexp.MustCompile(`^\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to the YAML key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML reports whether input has TOML section headers or mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}

// loadCSV reads comma separated records. Records may have different lengths.
func loadCSV(input string) ([]any, error) {
	r := csv.NewReader(bytes.NewReader([]byte(input)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	rows := make([]any, len(records))
	for i, rec := range records {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		rows[i] = cells
	}
	return []any{rows}, nil
}

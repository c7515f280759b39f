// Package config loads the colfmt CLI configuration: the embedded defaults
// merged with an optional user file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/loader"
	"github.com/oakwood-commons/colfmt/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedOnce   sync.Once
	embeddedConfig File
	embeddedErr    error
)

// File is the configuration file schema.
type File struct {
	App    App    `json:"app" yaml:"app"`
	Render Render `json:"render" yaml:"render"`
	Input  Input  `json:"input" yaml:"input"`
}

type App struct {
	About About `json:"about" yaml:"about"`
}

type About struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	RepositoryURL string `json:"repository_url,omitempty" yaml:"repository_url,omitempty"`
}

// Render holds the default render options. Pointer fields distinguish unset
// values from zero values when a user file is merged.
type Render struct {
	Border        *bool              `json:"border,omitempty" yaml:"border,omitempty"`
	BorderPadding *bool              `json:"borderPadding,omitempty" yaml:"borderPadding,omitempty"`
	PaddingChar   *string            `json:"paddingChar,omitempty" yaml:"paddingChar,omitempty"`
	WrapColumns   *bool              `json:"wrapColumns,omitempty" yaml:"wrapColumns,omitempty"`
	LineFeed      *bool              `json:"lineFeed,omitempty" yaml:"lineFeed,omitempty"`
	Measure       string             `json:"measure,omitempty" yaml:"measure,omitempty"`
	Color         string             `json:"color,omitempty" yaml:"color,omitempty"`
	TableGap      *int               `json:"tableGap,omitempty" yaml:"tableGap,omitempty"`
	Ignore        []string           `json:"ignore" yaml:"ignore"`
	Highlights    []loader.Highlight `json:"highlights" yaml:"highlights"`
}

type Input struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Embedded returns the parsed embedded defaults.
func Embedded() (File, error) {
	embeddedOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedErr = errors.New("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedErr
}

// ResolvePath returns explicit when set. Otherwise it returns
// $XDG_CONFIG_HOME/colfmt/config.yaml or ~/.config/colfmt/config.yaml when
// that file exists, and "" when it does not.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load merges the user file at path over the embedded defaults. An empty
// path loads the defaults only.
func Load(path string) (File, error) {
	cfg, err := Embedded()
	if err != nil {
		return cfg, err
	}
	cfg = cfg.clone()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var user File
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg.merge(user), nil
}

func (f File) clone() File {
	f.Render.Ignore = slices.Clone(f.Render.Ignore)
	f.Render.Highlights = slices.Clone(f.Render.Highlights)
	return f
}

// merge overlays the fields set in o.
func (f File) merge(o File) File {
	if o.App.About.Name != "" {
		f.App.About.Name = o.App.About.Name
	}
	if o.App.About.Description != "" {
		f.App.About.Description = o.App.About.Description
	}
	r, u := &f.Render, o.Render
	if u.Border != nil {
		r.Border = u.Border
	}
	if u.BorderPadding != nil {
		r.BorderPadding = u.BorderPadding
	}
	if u.PaddingChar != nil {
		r.PaddingChar = u.PaddingChar
	}
	if u.WrapColumns != nil {
		r.WrapColumns = u.WrapColumns
	}
	if u.LineFeed != nil {
		r.LineFeed = u.LineFeed
	}
	if u.Measure != "" {
		r.Measure = u.Measure
	}
	if u.Color != "" {
		r.Color = u.Color
	}
	if u.TableGap != nil {
		r.TableGap = u.TableGap
	}
	if len(u.Ignore) > 0 {
		r.Ignore = u.Ignore
	}
	if len(u.Highlights) > 0 {
		r.Highlights = u.Highlights
	}
	if o.Input.Format != "" {
		f.Input.Format = o.Input.Format
	}
	return f
}

// DocumentOptions converts the render defaults into the document option
// overlay they share a schema with.
func (r Render) DocumentOptions() loader.Options {
	opts := loader.Options{
		Border:        r.Border,
		BorderPadding: r.BorderPadding,
		WrapColumns:   r.WrapColumns,
		LineFeed:      r.LineFeed,
		Measure:       r.Measure,
	}
	if r.PaddingChar != nil {
		opts.PaddingChar = *r.PaddingChar
	}
	return opts
}

// FormatterOptions returns the formatter options described by the render
// defaults.
func (r Render) FormatterOptions() (formatter.Options, error) {
	return r.DocumentOptions().Apply(formatter.DefaultOptions())
}

// Gap returns the number of blank lines between tables.
func (r Render) Gap() int {
	if r.TableGap == nil || *r.TableGap < 0 {
		return 1
	}
	return *r.TableGap
}

// Package settings provides build metadata, per-invocation settings, and
// context helpers used by the colfmt CLI.
package settings

import (
	"context"
	"fmt"
	"strings"
)

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "colfmt"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// ColorMode decides whether highlight escape codes are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use auto|always|never)", s)
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	// InputPath is the file to read; empty or "-" reads standard input.
	InputPath   string
	InputFormat string
	Color       ColorMode
	// IsTerminal reports whether standard output is a terminal.
	IsTerminal bool
}

// NewCliParams returns the settings used when no flags are given.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		InputFormat: "auto",
		Color:       ColorAuto,
	}
}

// UseColor reports whether output may contain colour escape codes.
func (r *Run) UseColor() bool {
	switch r.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return r.IsTerminal
	}
}

// ReadsStdin reports whether input comes from standard input.
func (r *Run) ReadsStdin() bool {
	return r.InputPath == "" || r.InputPath == "-"
}

type contextKey string

const settingsContextKey contextKey = "settings"

// IntoContext stores a Run in the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, settingsContextKey, s)
}

// FromContext retrieves the Run stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(settingsContextKey).(*Run)
	return s, ok
}

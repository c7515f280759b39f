package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	assert.Equal(t, &Run{InputFormat: "auto", Color: ColorAuto}, got)
	assert.True(t, got.ReadsStdin())
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "AUTO", want: ColorAuto},
		{in: "always", want: ColorAlways},
		{in: " never ", want: ColorNever},
		{in: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		name     string
		run      Run
		expected bool
	}{
		{name: "auto on terminal", run: Run{Color: ColorAuto, IsTerminal: true}, expected: true},
		{name: "auto on pipe", run: Run{Color: ColorAuto}, expected: false},
		{name: "always on pipe", run: Run{Color: ColorAlways}, expected: true},
		{name: "never on terminal", run: Run{Color: ColorNever, IsTerminal: true}, expected: false},
		{name: "unset behaves like auto", run: Run{IsTerminal: true}, expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.run.UseColor())
		})
	}
}

func TestReadsStdin(t *testing.T) {
	assert.True(t, (&Run{InputPath: "-"}).ReadsStdin())
	assert.False(t, (&Run{InputPath: "table.yaml"}).ReadsStdin())
}

func TestContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		run := &Run{InputPath: "rows.csv", Color: ColorNever}
		got, ok := FromContext(IntoContext(context.Background(), run))
		require.True(t, ok)
		assert.Same(t, run, got)
	})

	t.Run("missing", func(t *testing.T) {
		got, ok := FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), settingsContextKey, "wrong type")
		_, ok := FromContext(ctx)
		assert.False(t, ok)
	})
}

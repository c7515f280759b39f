package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/loader"
)

func intPtr(i int) *int { return &i }

func TestParseHighlight(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    loader.Highlight
		wantErr bool
	}{
		{name: "word and color", in: "OK=green", want: loader.Highlight{Word: "OK", Color: "green"}},
		{name: "background", in: "FAIL=white/red", want: loader.Highlight{Word: "FAIL", Color: "white", Background: "red"}},
		{name: "column", in: "OK=green@2", want: loader.Highlight{Word: "OK", Color: "green", Column: intPtr(2)}},
		{name: "background and column", in: "x=yellow/blue@0", want: loader.Highlight{Word: "x", Color: "yellow", Background: "blue", Column: intPtr(0)}},
		{name: "word with equals", in: "a=b=red", want: loader.Highlight{Word: "a=b", Color: "red"}},
		{name: "missing color", in: "OK=", wantErr: true},
		{name: "missing word", in: "=green", wantErr: true},
		{name: "no separator", in: "green", wantErr: true},
		{name: "bad column", in: "OK=green@x", wantErr: true},
		{name: "column only", in: "OK=@1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHighlight(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWidths(t *testing.T) {
	got, err := parseWidths("10, 30,5")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 30, 5}, got)

	got, err = parseWidths("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseWidths("10,abc")
	require.Error(t, err)
	_, err = parseWidths("10,0")
	require.Error(t, err)
}

func TestParseAlignments(t *testing.T) {
	got, err := parseAlignments("l,center,right,left-and-right")
	require.NoError(t, err)
	assert.Equal(t, []formatter.Alignment{formatter.AlignLeft, formatter.AlignCenter, formatter.AlignRight, formatter.AlignLeftAndRight}, got)

	_, err = parseAlignments("left,diagonal")
	require.ErrorIs(t, err, formatter.ErrConfiguration)
}

func TestColorModeValue(t *testing.T) {
	v := colorModeValue("auto")
	require.NoError(t, v.Set("ALWAYS"))
	assert.Equal(t, "always", v.String())
	require.Error(t, v.Set("sometimes"))
	assert.Equal(t, "always", v.String())
}

func TestMergeOptions(t *testing.T) {
	base := loader.Options{Border: formatter.Bool(true), PaddingChar: ".", Measure: "cells"}
	top := loader.Options{Border: formatter.Bool(false), WrapColumns: formatter.Bool(false)}

	got := mergeOptions(base, top)
	require.NotNil(t, got.Border)
	assert.False(t, *got.Border)
	require.NotNil(t, got.WrapColumns)
	assert.False(t, *got.WrapColumns)
	assert.Equal(t, ".", got.PaddingChar)
	assert.Equal(t, "cells", got.Measure)
	assert.Nil(t, got.LineFeed)
}

func TestResolveColumns(t *testing.T) {
	t.Cleanup(func() {
		widthsFlag = widthsValue{}
		alignFlag = alignmentsValue{}
	})
	doc := []loader.Column{{Width: 10, Align: "right", LeftPadding: 2}}

	t.Run("no flags copies", func(t *testing.T) {
		widthsFlag, alignFlag = widthsValue{}, alignmentsValue{}
		got, err := resolveColumns(doc)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		got[0].Width = 99
		assert.Equal(t, 10, doc[0].Width)
	})

	t.Run("widths keep document alignment", func(t *testing.T) {
		widthsFlag, alignFlag = widthsValue{widths: []int{12, 8}}, alignmentsValue{}
		got, err := resolveColumns(doc)
		require.NoError(t, err)
		assert.Equal(t, []loader.Column{{Width: 12, Align: "right", LeftPadding: 2}, {Width: 8}}, got)
	})

	t.Run("align overrides", func(t *testing.T) {
		widthsFlag = widthsValue{widths: []int{12, 8}}
		alignFlag = alignmentsValue{aligns: []formatter.Alignment{formatter.AlignCenter, formatter.AlignRight}}
		got, err := resolveColumns(doc)
		require.NoError(t, err)
		assert.Equal(t, "center", got[0].Align)
		assert.Equal(t, "right", got[1].Align)
	})

	t.Run("align count mismatch", func(t *testing.T) {
		widthsFlag = widthsValue{}
		alignFlag = alignmentsValue{aligns: []formatter.Alignment{formatter.AlignCenter, formatter.AlignRight}}
		_, err := resolveColumns(doc)
		require.ErrorIs(t, err, formatter.ErrConfiguration)
	})
}

package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/parameter/visual"
	"github.com/lixenwraith/roomfield/region"
	"github.com/lixenwraith/roomfield/tilemap"
)

func TestShade(t *testing.T) {
	tests := []struct {
		name string
		cell navigation.CellState
		want rune
	}{
		{"NoRoot", navigation.CellState{Distance: navigation.Unreachable}, visual.CharNoRoot},
		{"OutOfRange", navigation.CellState{HasRoot: true, OutOfRange: true, Distance: 5}, visual.CharOutOfRange},
		{"InsideRoom", navigation.CellState{HasRoot: true}, '█'},
		{"Near", navigation.CellState{HasRoot: true, Distance: 0.1}, '▓'},
		{"Middle", navigation.CellState{HasRoot: true, Distance: 2.1}, '░'},
		{"AtLimit", navigation.CellState{HasRoot: true, Distance: 4}, '·'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(Shade(tt.cell, 4)))
		})
	}
}

func TestTone(t *testing.T) {
	assert.Equal(t, visual.RgbFieldNear, Tone(navigation.CellState{HasRoot: true}, 3))
	assert.Equal(t, visual.RgbFieldFar, Tone(navigation.CellState{HasRoot: true, Distance: 3}, 3))
	assert.Equal(t, visual.RgbOutOfRange, Tone(navigation.CellState{HasRoot: true, OutOfRange: true, Distance: 4}, 3))
	assert.Equal(t, visual.RgbOutOfRange, Tone(navigation.CellState{}, 3))
}

func TestFromDistance(t *testing.T) {
	assert.Equal(t, visual.CharNoRoot, Shade(FromDistance(navigation.Unreachable, 2), 2))
	assert.Equal(t, visual.CharOutOfRange, Shade(FromDistance(2.5, 2), 2))
	assert.Equal(t, '█', Shade(FromDistance(0, 2), 2))
	assert.True(t, FromDistance(1, 2).HasRoot)
}

func TestLerpAndScale(t *testing.T) {
	a, b := RGB{R: 0, G: 100, B: 200}, RGB{R: 100, G: 0, B: 200}
	assert.Equal(t, a, Lerp(a, b, -1))
	assert.Equal(t, b, Lerp(a, b, 2))
	assert.Equal(t, RGB{R: 50, G: 50, B: 200}, Lerp(a, b, 0.5))

	assert.Equal(t, RGB{R: 0, G: 50, B: 100}, Scale(a, 0.5))
	assert.Equal(t, RGB{R: 0, G: 200, B: 255}, Scale(a, 2))
}

func TestColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), Color(RGB{R: 1, G: 2, B: 3}))
}

func TestDump(t *testing.T) {
	m, err := navigation.New(tilemap.NewGrid(3, 1), 1.5, navigation.WithSubdivision(1))
	require.NoError(t, err)
	m.Insert(region.Rect("r", 0, 0, 1, 1))

	var sb strings.Builder
	require.NoError(t, Dump(&sb, m))
	assert.Equal(t, "██░\n", sb.String())

	sb.Reset()
	require.NoError(t, DumpTiles(&sb, m))
	assert.Equal(t, "#..\n", sb.String())
}

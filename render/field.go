package render

import (
	"bufio"
	"io"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/parameter/visual"
)

// Shade maps a piece to a DistanceRamp rune: the first step is reserved for pieces inside a room,
// the rest split (0, maxDistance] evenly
func Shade(c navigation.CellState, maxDistance float64) rune {
	switch {
	case !c.HasRoot:
		return visual.CharNoRoot
	case c.OutOfRange:
		return visual.CharOutOfRange
	case c.Distance <= 0:
		return visual.DistanceRamp[0]
	}
	steps := len(visual.DistanceRamp) - 1
	i := int(c.Distance / maxDistance * float64(steps))
	return visual.DistanceRamp[1+min(i, steps-1)]
}

// FromDistance wraps a sampled distance, such as GetDistanceAt, as a cell for Shade and Tone
func FromDistance(d, maxDistance float64) navigation.CellState {
	return navigation.CellState{
		HasRoot:    !math.IsInf(d, 1),
		OutOfRange: d > maxDistance,
		Distance:   d,
	}
}

// Tone returns the gradient colour of a piece, near rooms toward RgbFieldNear
func Tone(c navigation.CellState, maxDistance float64) RGB {
	if !c.HasRoot || c.OutOfRange {
		return visual.RgbOutOfRange
	}
	return Lerp(visual.RgbFieldNear, visual.RgbFieldFar, c.Distance/maxDistance)
}

// Style returns the tcell style used to draw a piece
func Style(c navigation.CellState, maxDistance float64) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(Tone(c, maxDistance))).Background(tcell.ColorReset)
}

// Dump writes one line of Shade runes per piece row
func Dump(w io.Writer, m *navigation.RoomDistanceMap) error {
	bw := bufio.NewWriter(w)
	size := m.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c, _ := m.Cell(core.Point{X: x, Y: y})
			bw.WriteRune(Shade(c, m.MaxDistance()))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// DumpTiles writes one line per tile row, '#' for occupied tiles and '.' otherwise
func DumpTiles(w io.Writer, m *navigation.RoomDistanceMap) error {
	bw := bufio.NewWriter(w)
	tiles := m.Tiles()
	for y := 0; y < tiles.Y; y++ {
		for x := 0; x < tiles.X; x++ {
			if m.IsActive(core.Point{X: x, Y: y}) {
				bw.WriteByte('#')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

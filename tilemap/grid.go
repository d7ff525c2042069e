package tilemap

import (
	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/vmath"
)

// Grid is a plain rectangular tile map
type Grid struct {
	Width, Height int
}

// NewGrid creates a tile map of the given dimensions
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height}
}

func (g *Grid) Size() core.Point {
	return core.Point{X: g.Width, Y: g.Height}
}

// Subdivide returns the piece grid with n pieces per tile edge, n < 1 is treated as 1
func (g *Grid) Subdivide(n int) Subdivided {
	if n < 1 {
		n = 1
	}
	return &SubdividedGrid{
		tiles: g.Size(),
		size:  core.Point{X: g.Width * n, Y: g.Height * n},
		n:     n,
		scale: 1 / float64(n),
	}
}

// SubdividedGrid is the fine piece grid of a Grid
type SubdividedGrid struct {
	tiles core.Point
	size  core.Point
	n     int
	scale float64
}

func (s *SubdividedGrid) Size() core.Point  { return s.size }
func (s *SubdividedGrid) Subdivision() int  { return s.n }
func (s *SubdividedGrid) Tiles() core.Point { return s.tiles }

func (s *SubdividedGrid) PieceToMapPos(piece core.Point) vmath.Vec2 {
	return vmath.Vec2{X: float64(piece.X) * s.scale, Y: float64(piece.Y) * s.scale}
}

func (s *SubdividedGrid) MapPosToPiece(pos vmath.Vec2) vmath.Vec2 {
	return pos.Scale(float64(s.n))
}

func (s *SubdividedGrid) IsValidPiece(piece core.Point) bool {
	return piece.In(s.size)
}

func (s *SubdividedGrid) IsValidTile(tile core.Point) bool {
	return tile.In(s.tiles)
}

// PiecesOnTile includes the far edge row and column, clamped to the grid
func (s *SubdividedGrid) PiecesOnTile(tile core.Point) []core.Point {
	if !s.IsValidTile(tile) {
		return nil
	}
	lo := tile.Mul(s.n)
	hi := lo.AddScalar(s.n).Min(s.size.AddScalar(-1))

	pieces := make([]core.Point, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			pieces = append(pieces, core.Point{X: x, Y: y})
		}
	}
	return pieces
}

func (s *SubdividedGrid) TilesTouchingPiece(piece core.Point) []core.Point {
	if !s.IsValidPiece(piece) {
		return nil
	}
	xs := s.touchingSpan(piece.X)
	ys := s.touchingSpan(piece.Y)

	tiles := make([]core.Point, 0, 4)
	for _, y := range ys {
		for _, x := range xs {
			t := core.Point{X: x, Y: y}
			if s.IsValidTile(t) {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// touchingSpan returns the tile indices on one axis whose closed span contains piece coordinate c
func (s *SubdividedGrid) touchingSpan(c int) []int {
	t := c / s.n
	if c%s.n == 0 {
		return []int{t - 1, t}
	}
	return []int{t}
}

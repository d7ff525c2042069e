// Package tilemap maps coarse level tiles onto a finer sampling grid
//
// A Map is the coarse level; Subdivide splits every tile into n×n pieces.
// Piece p is sampled at map position p/n, so pieces sitting on a tile edge
// or corner touch more than one tile.
package tilemap

import (
	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/vmath"
)

// Map is a coarse tile map that can be subdivided into a fine piece grid
type Map interface {
	Size() core.Point
	Subdivide(n int) Subdivided
}

// Subdivided converts between coarse tiles, fine pieces and continuous map positions
type Subdivided interface {
	// Size returns the fine grid dimensions
	Size() core.Point
	// Subdivision returns the number of pieces per tile edge
	Subdivision() int

	PieceToMapPos(piece core.Point) vmath.Vec2
	MapPosToPiece(pos vmath.Vec2) vmath.Vec2

	// PiecesOnTile returns the valid pieces whose map position lies in the closed tile square
	PiecesOnTile(tile core.Point) []core.Point
	// TilesTouchingPiece returns the valid tiles whose closed square contains the piece position
	TilesTouchingPiece(piece core.Point) []core.Point

	IsValidPiece(piece core.Point) bool
	IsValidTile(tile core.Point) bool
}

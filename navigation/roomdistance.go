// Package navigation maintains a distance-to-nearest-room field over a subdivided tile map
//
// RoomDistanceMap keeps, for every piece of the fine grid, the Euclidean distance to the
// closest piece of an occupied tile, up to a maximum radius. Rooms are inserted, deleted
// and moved incrementally: each call updates tile occupancy, seeds or invalidates roots,
// then drains a distance-ordered wavefront until the field is consistent again.
//
// A RoomDistanceMap is not safe for concurrent use.
package navigation

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/parameter"
	"github.com/lixenwraith/roomfield/tilemap"
	"github.com/lixenwraith/roomfield/vmath"
)

// Unreachable is the distance reported for pieces without a root
var Unreachable = math.Inf(1)

// cell is the per-piece state, stored in a flat arena indexed y*width + x
type cell struct {
	root       int32   // Flat index of the anchoring piece, valid only if hasRoot
	hasRoot    bool    // Anchored to some piece of an occupied tile
	outOfRange bool    // Best known distance exceeds maxDistance, not expanded
	dist       float64 // Cached distance to root, Unreachable if !hasRoot
}

func (c *cell) clearRoot() {
	c.hasRoot = false
	c.outOfRange = false
	c.dist = Unreachable
}

// CellState is a read-only snapshot of one piece
type CellState struct {
	HasRoot    bool
	OutOfRange bool
	Root       core.Point
	Distance   float64
}

// RoomDistanceMap is the incremental distance field
type RoomDistanceMap struct {
	sub         tilemap.Subdivided
	size        core.Point // Fine grid dimensions
	tiles       core.Point // Coarse map dimensions
	maxDistance float64

	cells     []cell
	positions []vmath.Vec2 // Map-space position per piece, fixed at construction
	queue     *wavefront

	// Source registry
	occupants   [][]string // Region ids per coarse tile, flat index y*tiles.X + x
	active      []bool     // Tile is in a room
	activeCount int

	// Deactivation scratch, reused across calls
	removedMark  []bool
	removedRoots []int32

	logger   *zap.Logger
	observer Observer
	stats    UpdateStats // In-flight call
	last     UpdateStats
	started  time.Time
}

// New builds an empty distance field for m, tracking distances up to maxDistance map units
func New(m tilemap.Map, maxDistance float64, opts ...Option) (*RoomDistanceMap, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	if !(maxDistance > 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadMaxDistance, maxDistance)
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.subdivision < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadSubdivision, cfg.subdivision)
	}

	sub := m.Subdivide(cfg.subdivision)
	size := sub.Size()
	tiles := m.Size()
	n := size.X * size.Y

	dm := &RoomDistanceMap{
		sub:         sub,
		size:        size,
		tiles:       tiles,
		maxDistance: maxDistance,
		cells:       make([]cell, n),
		positions:   make([]vmath.Vec2, n),
		queue:       newWavefront(n, n/parameter.WavefrontInitialCapacity),
		occupants:   make([][]string, tiles.X*tiles.Y),
		active:      make([]bool, tiles.X*tiles.Y),
		removedMark: make([]bool, n),
		logger:      cfg.logger,
		observer:    cfg.observer,
	}
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			i := y*size.X + x
			dm.cells[i].clearRoot()
			dm.positions[i] = sub.PieceToMapPos(core.Point{X: x, Y: y})
		}
	}

	dm.logger.Debug("room distance map created",
		zap.Int("tiles_x", tiles.X), zap.Int("tiles_y", tiles.Y),
		zap.Int("pieces_x", size.X), zap.Int("pieces_y", size.Y),
		zap.Float64("max_distance", maxDistance))

	return dm, nil
}

// Size returns the fine grid dimensions
func (m *RoomDistanceMap) Size() core.Point { return m.size }

// Tiles returns the coarse map dimensions
func (m *RoomDistanceMap) Tiles() core.Point { return m.tiles }

// MaxDistance returns the tracked radius
func (m *RoomDistanceMap) MaxDistance() float64 { return m.maxDistance }

// Subdivided returns the piece grid the field is sampled on
func (m *RoomDistanceMap) Subdivided() tilemap.Subdivided { return m.sub }

// LastStats returns the stats of the most recent mutating call
func (m *RoomDistanceMap) LastStats() UpdateStats { return m.last }

func (m *RoomDistanceMap) index(p core.Point) int     { return p.Y*m.size.X + p.X }
func (m *RoomDistanceMap) point(i int) core.Point     { return core.Point{X: i % m.size.X, Y: i / m.size.X} }
func (m *RoomDistanceMap) tileIndex(t core.Point) int { return t.Y*m.tiles.X + t.X }

// GetDistance returns the distance of piece p to its root, Unreachable if p has no root or is off-grid
func (m *RoomDistanceMap) GetDistance(p core.Point) float64 {
	if !m.sub.IsValidPiece(p) {
		return Unreachable
	}
	return m.cells[m.index(p)].dist
}

// GetDistanceAt estimates the distance at a continuous map position as the plain mean of the
// four surrounding pieces, clamped to the grid. Any rootless corner makes the result Unreachable
func (m *RoomDistanceMap) GetDistanceAt(pos vmath.Vec2) float64 {
	hi := m.size.AddScalar(-1)
	p00 := vmath.Floor(m.sub.MapPosToPiece(pos)).Clamp(core.Point{}, hi)
	p11 := p00.AddScalar(1).Min(hi)

	sum := m.cells[m.index(p00)].dist +
		m.cells[m.index(core.Point{X: p00.X, Y: p11.Y})].dist +
		m.cells[m.index(core.Point{X: p11.X, Y: p00.Y})].dist +
		m.cells[m.index(p11)].dist
	return sum / 4
}

// Cell returns the full state of piece p, ok is false if p is off-grid
func (m *RoomDistanceMap) Cell(p core.Point) (state CellState, ok bool) {
	if !m.sub.IsValidPiece(p) {
		return CellState{}, false
	}
	c := &m.cells[m.index(p)]
	state = CellState{
		HasRoot:    c.hasRoot,
		OutOfRange: c.outOfRange,
		Distance:   c.dist,
	}
	if c.hasRoot {
		state.Root = m.point(int(c.root))
	}
	return state, true
}

// InRange reports whether p has a root within maxDistance
// Pieces the wavefront never reached and pieces flagged out of range both report false
func (m *RoomDistanceMap) InRange(p core.Point) bool {
	if !m.sub.IsValidPiece(p) {
		return false
	}
	c := &m.cells[m.index(p)]
	return c.hasRoot && !c.outOfRange
}

// IsActive reports whether tile is occupied by at least one region
func (m *RoomDistanceMap) IsActive(tile core.Point) bool {
	return m.sub.IsValidTile(tile) && m.active[m.tileIndex(tile)]
}

// ActiveTiles returns the occupied tiles in row-major order
func (m *RoomDistanceMap) ActiveTiles() []core.Point {
	out := make([]core.Point, 0, m.activeCount)
	for i, on := range m.active {
		if on {
			out = append(out, core.Point{X: i % m.tiles.X, Y: i / m.tiles.X})
		}
	}
	return out
}

// TileOccupants returns a copy of the region ids covering tile
func (m *RoomDistanceMap) TileOccupants(tile core.Point) []string {
	if !m.sub.IsValidTile(tile) {
		return nil
	}
	ids := m.occupants[m.tileIndex(tile)]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// Package region holds the source-region record: an identifier plus the coarse tiles it occupies
//
// Records are values; every edit helper returns a new Region and leaves the receiver untouched,
// so a caller can keep the previous revision around for an incremental update.
package region

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/vmath"
)

// Region is a room or placed-object footprint
type Region struct {
	ID    string
	Tiles []core.Point
}

// New creates a region with a fresh random id
func New(tiles []core.Point) *Region {
	return &Region{ID: uuid.NewString(), Tiles: tiles}
}

// FromArea creates a region covering every tile of a
func FromArea(id string, a core.Area) *Region {
	return &Region{ID: id, Tiles: a.Points()}
}

// Rect creates a region covering the w×h tile rectangle with top-left corner (x,y)
func Rect(id string, x, y, w, h int) *Region {
	return FromArea(id, core.Area{X: x, Y: y, Width: w, Height: h})
}

// Clone returns a copy sharing the id with its own tile slice
func (r *Region) Clone() *Region {
	return &Region{ID: r.ID, Tiles: slices.Clone(r.Tiles)}
}

// WithTiles returns a copy holding exactly the given tiles
func (r *Region) WithTiles(tiles []core.Point) *Region {
	return &Region{ID: r.ID, Tiles: slices.Clone(tiles)}
}

// AddTiles returns a copy with the union of the current and new tiles, preserving first-seen order
func (r *Region) AddTiles(tiles []core.Point) *Region {
	out := r.Clone()
	seen := make(map[core.Point]struct{}, len(out.Tiles)+len(tiles))
	for _, t := range out.Tiles {
		seen[t] = struct{}{}
	}
	for _, t := range tiles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out.Tiles = append(out.Tiles, t)
	}
	return out
}

// RemoveTiles returns a copy without any of the given tiles
func (r *Region) RemoveTiles(tiles []core.Point) *Region {
	drop := make(map[core.Point]struct{}, len(tiles))
	for _, t := range tiles {
		drop[t] = struct{}{}
	}
	out := &Region{ID: r.ID, Tiles: make([]core.Point, 0, len(r.Tiles))}
	for _, t := range r.Tiles {
		if _, ok := drop[t]; !ok {
			out.Tiles = append(out.Tiles, t)
		}
	}
	return out
}

// AddTile returns a copy with tile appended, duplicates are allowed as in a plain list
func (r *Region) AddTile(tile core.Point) *Region {
	out := r.Clone()
	out.Tiles = append(out.Tiles, tile)
	return out
}

// RemoveTile returns a copy with the first occurrence of tile removed
func (r *Region) RemoveTile(tile core.Point) *Region {
	out := r.Clone()
	if i := slices.Index(out.Tiles, tile); i >= 0 {
		out.Tiles = slices.Delete(out.Tiles, i, i+1)
	}
	return out
}

// Translate returns a copy moved by (dx,dy) tiles
func (r *Region) Translate(dx, dy int) *Region {
	d := core.Point{X: dx, Y: dy}
	out := &Region{ID: r.ID, Tiles: make([]core.Point, len(r.Tiles))}
	for i, t := range r.Tiles {
		out.Tiles[i] = t.Add(d)
	}
	return out
}

// Contains reports whether the region occupies tile
func (r *Region) Contains(tile core.Point) bool {
	return slices.Contains(r.Tiles, tile)
}

// Empty reports whether the region is nil or has no tiles
func (r *Region) Empty() bool {
	return r == nil || len(r.Tiles) == 0
}

// Min is the bottom-left tile of the bounding box
func (r *Region) Min() core.Point { return core.MinOf(r.Tiles) }

// Max is the top-right tile of the bounding box
func (r *Region) Max() core.Point { return core.MaxOf(r.Tiles) }

// Bounds returns the bounding box as an area
func (r *Region) Bounds() core.Area {
	if len(r.Tiles) == 0 {
		return core.Area{}
	}
	lo, hi := r.Min(), r.Max()
	return core.Area{X: lo.X, Y: lo.Y, Width: hi.X - lo.X + 1, Height: hi.Y - lo.Y + 1}
}

// Center is the map-space centre of the bounding box
func (r *Region) Center() vmath.Vec2 {
	lo := vmath.FromPoint(r.Min())
	hi := vmath.FromPoint(r.Max().AddScalar(1))
	return lo.Add(hi).Scale(0.5)
}

// Equal compares by id only, two revisions of the same room are equal
func (r *Region) Equal(other *Region) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ID == other.ID
}

func (r *Region) String() string {
	if r == nil {
		return "<nil region>"
	}
	s := fmt.Sprintf("id %s and %d tiles", r.ID, len(r.Tiles))
	if len(r.Tiles) > 0 {
		s += fmt.Sprintf(" from %v to %v", r.Min(), r.Max())
	}
	return s
}

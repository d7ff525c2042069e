package navigation

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/region"
)

// Insert adds r to every tile it covers and propagates the new roots
func (m *RoomDistanceMap) Insert(r *region.Region) {
	if r.Empty() {
		return
	}
	m.begin(OpInsert)
	m.insertTiles(r.ID, r.Tiles, nil)
	m.end()
}

// Delete removes r from every tile it covers and repairs the field around the freed tiles
func (m *RoomDistanceMap) Delete(r *region.Region) {
	if r.Empty() {
		return
	}
	m.begin(OpDelete)
	m.deleteTiles(r.ID, r.Tiles, nil)
	m.end()
}

// Update replaces previous with updated, either side may be nil
// Revisions of the same region keep shared tiles untouched; different ids are a plain delete then insert
func (m *RoomDistanceMap) Update(previous, updated *region.Region) {
	switch {
	case previous.Empty() && updated.Empty():
		return
	case previous.Empty():
		m.Insert(updated)
	case updated.Empty():
		m.Delete(previous)
	case previous.ID == updated.ID:
		m.UpdateTiles(previous.ID, previous.Tiles, updated.Tiles)
	default:
		m.begin(OpUpdate)
		m.deleteTiles(previous.ID, previous.Tiles, nil)
		m.insertTiles(updated.ID, updated.Tiles, nil)
		m.end()
	}
}

// UpdateTiles moves region id from the previous tile set to the updated one
// Tiles present in both are neither removed nor re-added, so they never flicker inactive
func (m *RoomDistanceMap) UpdateTiles(id string, previous, updated []core.Point) {
	if len(previous) == 0 && len(updated) == 0 {
		return
	}
	m.begin(OpUpdate)

	if len(previous) > 0 {
		var inUpdated func(core.Point) bool
		if len(updated) > 0 {
			inUpdated = tileSet(updated)
		}
		m.deleteTiles(id, previous, inUpdated)
	}
	if len(updated) > 0 {
		var inPrevious func(core.Point) bool
		if len(previous) > 0 {
			inPrevious = tileSet(previous)
		}
		m.insertTiles(id, updated, inPrevious)
	}
	m.end()
}

// insertTiles registers id on tiles (except those unchanged reports true for), then propagates
func (m *RoomDistanceMap) insertTiles(id string, tiles []core.Point, unchanged func(core.Point) bool) {
	for _, t := range tiles {
		if !m.validTile(t) || (unchanged != nil && unchanged(t)) {
			continue
		}
		m.addOccupant(t, id)
	}
	m.refreshTiles(tiles)
	m.propagate()
}

// deleteTiles unregisters id from tiles (except unchanged ones), invalidates stale roots, then propagates
func (m *RoomDistanceMap) deleteTiles(id string, tiles []core.Point, unchanged func(core.Point) bool) {
	for _, t := range tiles {
		if !m.validTile(t) || (unchanged != nil && unchanged(t)) {
			continue
		}
		m.removeOccupant(t, id)
	}
	m.refreshTiles(tiles)
	m.invalidateRemovedRoots()
	m.propagate()
}

// refreshTiles activates or deactivates tiles whose occupancy crossed empty/non-empty
func (m *RoomDistanceMap) refreshTiles(tiles []core.Point) {
	for _, t := range tiles {
		if !m.sub.IsValidTile(t) {
			continue
		}
		ti := m.tileIndex(t)
		inRoom := len(m.occupants[ti]) > 0
		wasInRoom := m.active[ti]
		if wasInRoom && !inRoom {
			m.deactivateTile(t)
		} else if !wasInRoom && inRoom {
			m.activateTile(t)
		}
	}
}

func (m *RoomDistanceMap) validTile(t core.Point) bool {
	if m.sub.IsValidTile(t) {
		return true
	}
	m.logger.Debug("tile outside map skipped", zap.Stringer("tile", t))
	return false
}

// addOccupant records id once per tile, repeated inserts are a union
func (m *RoomDistanceMap) addOccupant(t core.Point, id string) {
	ti := m.tileIndex(t)
	if slices.Contains(m.occupants[ti], id) {
		return
	}
	m.occupants[ti] = append(m.occupants[ti], id)
}

func (m *RoomDistanceMap) removeOccupant(t core.Point, id string) {
	ti := m.tileIndex(t)
	if i := slices.Index(m.occupants[ti], id); i >= 0 {
		m.occupants[ti] = slices.Delete(m.occupants[ti], i, i+1)
	}
}

func tileSet(tiles []core.Point) func(core.Point) bool {
	set := make(map[core.Point]struct{}, len(tiles))
	for _, t := range tiles {
		set[t] = struct{}{}
	}
	return func(t core.Point) bool {
		_, ok := set[t]
		return ok
	}
}

// --- Stats ---

func (m *RoomDistanceMap) begin(op Op) {
	m.stats = UpdateStats{Op: op}
	m.started = time.Now()
}

func (m *RoomDistanceMap) end() {
	m.stats.Duration = time.Since(m.started)
	m.last = m.stats

	s := m.last
	m.logger.Debug("room distance map updated",
		zap.String("op", string(s.Op)),
		zap.Int("tiles_activated", s.TilesActivated),
		zap.Int("tiles_deactivated", s.TilesDeactivated),
		zap.Int("roots_removed", s.RootsRemoved),
		zap.Int("roots_invalidated", s.RootsInvalidated),
		zap.Int("frontier_seeded", s.FrontierSeeded),
		zap.Int("points_processed", s.PointsProcessed),
		zap.Duration("duration", s.Duration),
		zap.Int("active_tiles", m.activeCount))

	if m.observer != nil {
		m.observer.ObserveUpdate(s)
	}
}

package navigation

import (
	"fmt"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/vmath"
)

// activateTile turns every piece on tile into its own root and queues it
func (m *RoomDistanceMap) activateTile(tile core.Point) {
	ti := m.tileIndex(tile)
	if m.active[ti] {
		panic(fmt.Errorf("%w: %v", ErrTileActive, tile))
	}
	m.active[ti] = true
	m.activeCount++
	m.stats.TilesActivated++

	for _, p := range m.sub.PiecesOnTile(tile) {
		i := m.index(p)
		c := &m.cells[i]
		c.hasRoot = true
		c.outOfRange = false
		c.root = int32(i)
		c.dist = 0
		m.queue.Upsert(i, 0)
	}
}

// deactivateTile drops the roots of pieces on tile that no other active tile still touches
// Dropped pieces are collected in removedRoots for invalidateRemovedRoots
func (m *RoomDistanceMap) deactivateTile(tile core.Point) {
	ti := m.tileIndex(tile)
	if !m.active[ti] {
		panic(fmt.Errorf("%w: %v", ErrTileInactive, tile))
	}
	m.active[ti] = false
	m.activeCount--
	m.stats.TilesDeactivated++

	for _, p := range m.sub.PiecesOnTile(tile) {
		i := m.index(p)
		c := &m.cells[i]
		if !c.hasRoot || m.touchesActiveTile(p) {
			continue
		}
		c.clearRoot()
		if !m.removedMark[i] {
			m.removedMark[i] = true
			m.removedRoots = append(m.removedRoots, int32(i))
		}
	}
}

func (m *RoomDistanceMap) touchesActiveTile(p core.Point) bool {
	for _, t := range m.sub.TilesTouchingPiece(p) {
		if m.active[m.tileIndex(t)] {
			return true
		}
	}
	return false
}

// invalidateRemovedRoots clears every piece anchored to a removed root, then re-queues rooted
// pieces bordering the cleared area so the wavefront can refill it. One sweep per batch
func (m *RoomDistanceMap) invalidateRemovedRoots() {
	if len(m.removedRoots) == 0 {
		return
	}
	m.stats.RootsRemoved += len(m.removedRoots)

	// Pass 1: drop roots that point at a removed piece
	for i := range m.cells {
		c := &m.cells[i]
		if c.hasRoot && m.removedMark[c.root] {
			c.clearRoot()
			m.stats.RootsInvalidated++
		}
	}

	// Pass 2: every in-range rooted piece next to a rootless one is a new frontier
	for i := range m.cells {
		c := &m.cells[i]
		if !c.hasRoot || c.outOfRange {
			continue
		}
		if m.hasRootlessNeighbor(i) {
			m.queue.Upsert(i, c.dist)
			m.stats.FrontierSeeded++
		}
	}

	for _, i := range m.removedRoots {
		m.removedMark[i] = false
	}
	m.removedRoots = m.removedRoots[:0]
}

func (m *RoomDistanceMap) hasRootlessNeighbor(i int) bool {
	p := m.point(i)
	for _, d := range core.Neighbors8 {
		n := p.Add(d)
		if !m.sub.IsValidPiece(n) {
			continue
		}
		if !m.cells[m.index(n)].hasRoot {
			return true
		}
	}
	return false
}

// propagate drains the wavefront: each popped piece offers its root to its 8 neighbours,
// a neighbour adopts it only on strict improvement. Neighbours beyond maxDistance are
// flagged out of range and not queued, which bounds the expansion radius
func (m *RoomDistanceMap) propagate() {
	for m.queue.Len() > 0 {
		i := m.queue.PopMin()
		m.stats.PointsProcessed++

		c := &m.cells[i]
		if !c.hasRoot {
			continue
		}
		root := c.root
		rootPos := m.positions[root]
		p := m.point(i)

		for _, d := range core.Neighbors8 {
			np := p.Add(d)
			if !m.sub.IsValidPiece(np) {
				continue
			}
			ni := m.index(np)
			nc := &m.cells[ni]

			dist := vmath.Distance(m.positions[ni], rootPos)
			if dist >= nc.dist {
				continue
			}
			nc.root = root
			nc.hasRoot = true
			nc.dist = dist

			if dist <= m.maxDistance {
				nc.outOfRange = false
				m.queue.Upsert(ni, dist)
			} else {
				nc.outOfRange = true
			}
		}
	}
}

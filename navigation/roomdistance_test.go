package navigation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/region"
	"github.com/lixenwraith/roomfield/tilemap"
	"github.com/lixenwraith/roomfield/vmath"
)

func newTestMap(t *testing.T, w, h, n int, maxDist float64, opts ...Option) *RoomDistanceMap {
	t.Helper()
	opts = append([]Option{WithSubdivision(n)}, opts...)
	m, err := New(tilemap.NewGrid(w, h), maxDist, opts...)
	require.NoError(t, err)
	return m
}

// eachPiece calls fn for every piece of the fine grid
func eachPiece(m *RoomDistanceMap, fn func(p core.Point)) {
	size := m.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			fn(core.Pt(x, y))
		}
	}
}

func mustCell(t *testing.T, m *RoomDistanceMap, p core.Point) CellState {
	t.Helper()
	c, ok := m.Cell(p)
	require.True(t, ok, "piece %v off-grid", p)
	return c
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestNewValidation(t *testing.T) {
	grid := tilemap.NewGrid(4, 4)

	_, err := New(nil, 3)
	assert.ErrorIs(t, err, ErrNilMap)

	for _, d := range []float64{0, -1, math.NaN()} {
		_, err = New(grid, d)
		assert.ErrorIs(t, err, ErrBadMaxDistance, "max distance %v", d)
	}

	_, err = New(grid, 3, WithSubdivision(0))
	assert.ErrorIs(t, err, ErrBadSubdivision)

	m, err := New(grid, 3)
	require.NoError(t, err)
	assert.Equal(t, core.Pt(32, 32), m.Size(), "default subdivision is 8")
	assert.Equal(t, 3.0, m.MaxDistance())
}

func TestFreshMapHasNoRoots(t *testing.T) {
	m := newTestMap(t, 3, 2, 2, 2)
	eachPiece(m, func(p core.Point) {
		c := mustCell(t, m, p)
		assert.False(t, c.HasRoot)
		assert.False(t, c.OutOfRange)
		assert.True(t, math.IsInf(m.GetDistance(p), 1))
	})
	assert.Empty(t, m.ActiveTiles())
}

func TestSingleTileScenario(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	require.Equal(t, core.Pt(8, 8), m.Size())

	r1 := &region.Region{ID: "r1", Tiles: []core.Point{{X: 0, Y: 0}}}
	m.Insert(r1)

	for _, p := range m.Subdivided().PiecesOnTile(core.Pt(0, 0)) {
		assert.Equal(t, 0.0, m.GetDistance(p), "piece %v inside the room", p)
	}

	far := mustCell(t, m, core.Pt(7, 7))
	assert.True(t, far.OutOfRange)
	assert.False(t, m.InRange(core.Pt(7, 7)))

	near := mustCell(t, m, core.Pt(4, 2))
	assert.True(t, near.HasRoot)
	assert.Equal(t, core.Pt(2, 2), near.Root)
	assert.InDelta(t, 1.0, near.Distance, 1e-12)

	m.Delete(r1)
	eachPiece(m, func(p core.Point) {
		c := mustCell(t, m, p)
		assert.False(t, c.HasRoot, "piece %v kept a root after delete", p)
		assert.False(t, c.OutOfRange)
	})
	assert.Empty(t, m.ActiveTiles())
}

func TestReinsertIsUnion(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	r := region.Rect("r", 1, 1, 2, 1)

	m.Insert(r)
	before := snapshot(m)

	assert.NotPanics(t, func() { m.Insert(r) })
	assert.Equal(t, before, snapshot(m))
	assert.Equal(t, []string{"r"}, m.TileOccupants(core.Pt(1, 1)))
	assert.Zero(t, m.LastStats().TilesActivated)

	// A single delete fully removes it
	m.Delete(r)
	assert.Empty(t, m.ActiveTiles())
}

func TestActivationContract(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	m.Insert(region.Rect("r", 0, 0, 1, 1))

	err := recoverError(func() { m.activateTile(core.Pt(0, 0)) })
	assert.ErrorIs(t, err, ErrTileActive)

	err = recoverError(func() { m.deactivateTile(core.Pt(3, 3)) })
	assert.ErrorIs(t, err, ErrTileInactive)
}

func TestEmptyRegionsAreNoops(t *testing.T) {
	var calls int
	m := newTestMap(t, 4, 4, 2, 3.0, WithObserver(ObserverFunc(func(UpdateStats) { calls++ })))

	m.Insert(nil)
	m.Insert(&region.Region{ID: "empty"})
	m.Delete(nil)
	m.Delete(&region.Region{ID: "empty"})
	m.Update(nil, nil)
	m.Update(&region.Region{ID: "a"}, &region.Region{ID: "a"})
	m.UpdateTiles("a", nil, nil)

	assert.Zero(t, calls)
	assert.Equal(t, UpdateStats{}, m.LastStats())
}

func TestOutOfBoundsTilesSkipped(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	r := &region.Region{ID: "r", Tiles: []core.Point{{X: -1, Y: 0}, {X: 1, Y: 1}, {X: 4, Y: 4}}}

	assert.NotPanics(t, func() { m.Insert(r) })
	assert.Equal(t, []core.Point{{X: 1, Y: 1}}, m.ActiveTiles())

	assert.NotPanics(t, func() { m.Delete(r) })
	assert.Empty(t, m.ActiveTiles())
}

func TestSharedTileStaysActive(t *testing.T) {
	m := newTestMap(t, 6, 4, 2, 3.0)
	a := region.Rect("a", 1, 1, 2, 1)
	b := region.Rect("b", 2, 1, 2, 1)

	m.Insert(a)
	m.Insert(b)
	assert.ElementsMatch(t, []string{"a", "b"}, m.TileOccupants(core.Pt(2, 1)))

	m.Delete(a)
	assert.True(t, m.IsActive(core.Pt(2, 1)))
	assert.False(t, m.IsActive(core.Pt(1, 1)))
	assert.Equal(t, []string{"b"}, m.TileOccupants(core.Pt(2, 1)))

	fresh := newTestMap(t, 6, 4, 2, 3.0)
	fresh.Insert(b)
	assertSameField(t, fresh, m)
}

func TestBoundaryPieceSurvivesNeighborDeactivation(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	m.Insert(region.Rect("a", 0, 0, 1, 1))
	m.Insert(region.Rect("b", 1, 0, 1, 1))
	m.Delete(region.Rect("b", 1, 0, 1, 1))

	// Piece (2,0) sits on the edge shared by tiles (0,0) and (1,0)
	c := mustCell(t, m, core.Pt(2, 0))
	assert.True(t, c.HasRoot)
	assert.Equal(t, core.Pt(2, 0), c.Root)
	assert.Equal(t, 0.0, c.Distance)
}

func TestUpdateMovesRegion(t *testing.T) {
	m := newTestMap(t, 8, 4, 2, 2.5)
	prev := region.Rect("room", 1, 1, 3, 2)
	next := prev.Translate(1, 0)

	m.Insert(prev)
	m.Update(prev, next)

	stats := m.LastStats()
	assert.Equal(t, OpUpdate, stats.Op)
	assert.Equal(t, 2, stats.TilesDeactivated, "only the trailing column leaves")
	assert.Equal(t, 2, stats.TilesActivated, "only the leading column enters")

	fresh := newTestMap(t, 8, 4, 2, 2.5)
	fresh.Insert(next)
	assertSameField(t, fresh, m)
	assert.Equal(t, fresh.ActiveTiles(), m.ActiveTiles())
}

func TestUpdateMissingSides(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	r := region.Rect("r", 1, 1, 1, 1)

	m.Update(nil, r)
	assert.Equal(t, OpInsert, m.LastStats().Op)
	assert.True(t, m.IsActive(core.Pt(1, 1)))

	m.Update(r, nil)
	assert.Equal(t, OpDelete, m.LastStats().Op)
	assert.Empty(t, m.ActiveTiles())

	m.UpdateTiles("r", nil, r.Tiles)
	assert.True(t, m.IsActive(core.Pt(1, 1)))
	m.UpdateTiles("r", r.Tiles, nil)
	assert.Empty(t, m.ActiveTiles())
}

func TestUpdateDifferentIDs(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 3.0)
	a := region.Rect("a", 0, 0, 2, 1)
	b := region.Rect("b", 1, 0, 2, 1)

	m.Insert(a)
	m.Update(a, b)

	assert.Equal(t, []string{"b"}, m.TileOccupants(core.Pt(1, 0)))
	assert.Nil(t, m.TileOccupants(core.Pt(0, 0)))
	assert.Equal(t, []core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}}, m.ActiveTiles())
}

func TestGetDistanceAt(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 10)
	m.Insert(region.Rect("r", 0, 0, 1, 1))

	assert.Equal(t, 0.0, m.GetDistanceAt(vmath.V(0.25, 0.25)))

	// Between pieces (4,2),(5,2),(4,3),(5,3), all rooted at piece (2,2) = map (1,1)
	want := (1.0 + 1.5 + math.Sqrt(1+0.25) + math.Sqrt(2.25+0.25)) / 4
	assert.InDelta(t, want, m.GetDistanceAt(vmath.V(2.2, 1.3)), 1e-12)

	// Positions past the grid clamp to the last piece
	assert.Equal(t, m.GetDistance(core.Pt(7, 7)), m.GetDistanceAt(vmath.V(100, 100)))
	assert.Equal(t, 0.0, m.GetDistanceAt(vmath.V(-5, -5)))
}

func TestGetDistanceAtUnreachable(t *testing.T) {
	m := newTestMap(t, 4, 4, 2, 1)
	m.Insert(region.Rect("r", 0, 0, 1, 1))

	assert.True(t, math.IsInf(m.GetDistanceAt(vmath.V(3.6, 3.6)), 1))
	assert.True(t, math.IsInf(m.GetDistance(core.Pt(-1, 0)), 1))
	_, ok := m.Cell(core.Pt(8, 0))
	assert.False(t, ok)
}

func TestObserverAndLogging(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	var got []UpdateStats
	m := newTestMap(t, 4, 4, 2, 3.0,
		WithLogger(zap.New(obsCore)),
		WithObserver(ObserverFunc(func(s UpdateStats) { got = append(got, s) })))

	r := region.Rect("r", 1, 1, 1, 1)
	m.Insert(r)
	m.Delete(r)

	require.Len(t, got, 2)
	assert.Equal(t, OpInsert, got[0].Op)
	assert.Equal(t, 1, got[0].TilesActivated)
	assert.Positive(t, got[0].PointsProcessed)

	assert.Equal(t, OpDelete, got[1].Op)
	assert.Equal(t, 1, got[1].TilesDeactivated)
	assert.Equal(t, 9, got[1].RootsRemoved)
	assert.Positive(t, got[1].RootsInvalidated)

	assert.Equal(t, 2, logs.FilterMessage("room distance map updated").Len())
}

func TestContractErrorsWrapSentinel(t *testing.T) {
	m := newTestMap(t, 2, 2, 1, 1)
	m.Insert(region.Rect("r", 0, 0, 1, 1))

	err := recoverError(func() { m.activateTile(core.Pt(0, 0)) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTileActive))
	assert.Contains(t, err.Error(), "(0,0)")
}

package navigation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/region"
	"github.com/lixenwraith/roomfield/vmath"
)

const distEpsilon = 1e-9

// snapshot copies every piece state in row-major order
func snapshot(m *RoomDistanceMap) []CellState {
	out := make([]CellState, 0, len(m.cells))
	eachPiece(m, func(p core.Point) {
		c, _ := m.Cell(p)
		out = append(out, c)
	})
	return out
}

// assertSameField compares reachability and in-range distances of two fields over the same grid
// Roots are not compared since equidistant candidates may resolve differently
func assertSameField(t *testing.T, want, got *RoomDistanceMap) {
	t.Helper()
	require.Equal(t, want.Size(), got.Size())
	eachPiece(want, func(p core.Point) {
		w, g := want.InRange(p), got.InRange(p)
		if !assert.Equal(t, w, g, "in-range mismatch at %v", p) || !w {
			return
		}
		assert.InDelta(t, want.GetDistance(p), got.GetDistance(p), distEpsilon, "distance at %v", p)
	})
}

// oracleDistance is the brute-force distance from p to the nearest piece of any active tile
func oracleDistance(m *RoomDistanceMap, p core.Point) float64 {
	pos := m.sub.PieceToMapPos(p)
	best := math.Inf(1)
	for _, tile := range m.ActiveTiles() {
		for _, q := range m.sub.PiecesOnTile(tile) {
			if d := vmath.Distance(pos, m.sub.PieceToMapPos(q)); d < best {
				best = d
			}
		}
	}
	return best
}

// assertMatchesOracle checks that pieces closer than maxDistance carry the exact distance
// and pieces farther away are never in range
func assertMatchesOracle(t *testing.T, m *RoomDistanceMap) {
	t.Helper()
	limit := m.MaxDistance()
	eachPiece(m, func(p core.Point) {
		want := oracleDistance(m, p)
		switch {
		case want <= limit-distEpsilon:
			if assert.True(t, m.InRange(p), "piece %v at %.4f should be in range", p, want) {
				assert.InDelta(t, want, m.GetDistance(p), distEpsilon, "piece %v", p)
			}
		case want > limit+distEpsilon:
			assert.False(t, m.InRange(p), "piece %v at %.4f should be out of range", p, want)
		}
		if c, _ := m.Cell(p); c.HasRoot {
			assert.GreaterOrEqual(t, c.Distance, want-distEpsilon, "piece %v closer than any source", p)
		}
	})
}

func randomRect(rng *rand.Rand, id string, mapW, mapH, maxSize int) *region.Region {
	w := 1 + rng.Intn(maxSize)
	h := 1 + rng.Intn(maxSize)
	x := rng.Intn(mapW - w + 1)
	y := rng.Intn(mapH - h + 1)
	return region.Rect(id, x, y, w, h)
}

func TestPropertySingleRoom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 4} {
		for trial := 0; trial < 8; trial++ {
			maxDist := 0.75 + rng.Float64()*4
			m := newTestMap(t, 10, 8, n, maxDist)
			m.Insert(randomRect(rng, "room", 10, 8, 4))
			assertMatchesOracle(t, m)
		}
	}
}

func TestPropertyRowOfRooms(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 10; trial++ {
		m := newTestMap(t, 16, 8, 2, 1+rng.Float64()*5)
		y := rng.Intn(6)
		h := 1 + rng.Intn(8-y)
		for x, i := 0, 0; x < 16; i++ {
			w := 1 + rng.Intn(3)
			if x+w > 16 {
				break
			}
			m.Insert(region.Rect(string(rune('a'+i)), x, y, w, h))
			x += w + 1 + rng.Intn(4)
		}
		assertMatchesOracle(t, m)
	}
}

func TestPropertyDeleteRestoresField(t *testing.T) {
	a := region.Rect("a", 1, 1, 3, 2)
	b := region.Rect("b", 14, 9, 2, 3)

	for _, n := range []int{1, 2, 4} {
		m := newTestMap(t, 18, 12, n, 2.5)
		m.Insert(a)
		m.Insert(b)
		m.Delete(b)

		fresh := newTestMap(t, 18, 12, n, 2.5)
		fresh.Insert(a)
		assertSameField(t, fresh, m)
		assertMatchesOracle(t, m)

		m.Delete(a)
		eachPiece(m, func(p core.Point) {
			c := mustCell(t, m, p)
			assert.False(t, c.HasRoot, "piece %v", p)
		})
	}
}

func TestPropertyDeleteNeighborRoom(t *testing.T) {
	// Rooms in the same band, one deleted while its field overlaps the other's
	for _, gap := range []int{0, 1, 2, 3} {
		a := region.Rect("a", 1, 2, 3, 3)
		b := region.Rect("b", 4+gap, 2, 2, 3)

		m := newTestMap(t, 14, 8, 2, 3)
		m.Insert(a)
		m.Insert(b)
		assertMatchesOracle(t, m)

		m.Delete(a)
		assertMatchesOracle(t, m)

		fresh := newTestMap(t, 14, 8, 2, 3)
		fresh.Insert(b)
		assertSameField(t, fresh, m)
	}
}

func TestPropertyInsertOrderIndependent(t *testing.T) {
	rooms := []*region.Region{
		region.Rect("a", 0, 3, 2, 2),
		region.Rect("b", 5, 3, 1, 2),
		region.Rect("c", 8, 3, 3, 2),
	}
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}, {1, 2, 0}}

	var baseline *RoomDistanceMap
	for _, perm := range perms {
		m := newTestMap(t, 12, 8, 2, 3.5)
		for _, i := range perm {
			m.Insert(rooms[i])
		}
		assertMatchesOracle(t, m)
		if baseline == nil {
			baseline = m
			continue
		}
		assertSameField(t, baseline, m)
	}
}

func TestPropertyMovingRoom(t *testing.T) {
	m := newTestMap(t, 12, 6, 2, 2)
	room := region.Rect("room", 0, 1, 2, 3)
	m.Insert(room)

	for step := 0; step < 8; step++ {
		next := room.Translate(1, 0)
		m.Update(room, next)
		room = next

		fresh := newTestMap(t, 12, 6, 2, 2)
		fresh.Insert(room)
		assertSameField(t, fresh, m)
		assertMatchesOracle(t, m)
	}
}

package levelgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/parameter"
	"github.com/lixenwraith/roomfield/region"
)

type Config struct {
	Width, Height int

	// Rooms is the number of rooms requested, fewer are returned if the map fills up
	Rooms int

	// Edge length bounds for each room, inclusive
	MinSize, MaxSize int

	// Minimum gap in tiles between two rooms
	Padding int

	Seed int64 // Optional (0 = Random)
}

type Result struct {
	Regions []*region.Region
	Areas   []core.Area // Bounding rectangle per region, same order
	Seed    int64       // Seed actually used
}

// DefaultConfig returns the level shape used by the viewer and benchmarks
func DefaultConfig() Config {
	return Config{
		Width:   parameter.LevelMapWidth,
		Height:  parameter.LevelMapHeight,
		Rooms:   parameter.LevelRoomCount,
		MinSize: parameter.LevelRoomMinSize,
		MaxSize: parameter.LevelRoomMaxSize,
		Padding: parameter.LevelRoomPadding,
	}
}

// Generate scatters non-overlapping rectangular rooms over the map
// The same non-zero seed always yields the same layout and region ids
func Generate(cfg Config) Result {
	// 1. Normalize bounds
	minSize := max(cfg.MinSize, 1)
	maxSize := max(cfg.MaxSize, minSize)
	maxSize = min(maxSize, cfg.Width, cfg.Height)
	padding := max(cfg.Padding, 0)

	// 2. RNG Setup
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	res := Result{Seed: seed}
	if cfg.Rooms <= 0 || maxSize < minSize {
		return res
	}

	// 3. Rejection sampling, a bounded number of tries per room
	attempts := cfg.Rooms * parameter.LevelPlacementAttempts
	for try := 0; try < attempts && len(res.Areas) < cfg.Rooms; try++ {
		a := randomArea(rng, cfg.Width, cfg.Height, minSize, maxSize)
		if overlapsAny(a, res.Areas, padding) {
			continue
		}
		res.Areas = append(res.Areas, a)
	}

	// 4. Ids drawn from the same stream keep layouts reproducible
	res.Regions = make([]*region.Region, len(res.Areas))
	for i, a := range res.Areas {
		res.Regions[i] = region.FromArea(roomID(rng, i), a)
	}
	return res
}

func randomArea(rng *rand.Rand, width, height, minSize, maxSize int) core.Area {
	w := minSize + rng.Intn(maxSize-minSize+1)
	h := minSize + rng.Intn(maxSize-minSize+1)
	return core.Area{
		X:      rng.Intn(width - w + 1),
		Y:      rng.Intn(height - h + 1),
		Width:  w,
		Height: h,
	}
}

func overlapsAny(a core.Area, placed []core.Area, padding int) bool {
	for _, b := range placed {
		if a.Overlaps(b, padding) {
			return true
		}
	}
	return false
}

func roomID(rng *rand.Rand, i int) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return fmt.Sprintf("room-%d", i)
	}
	return id.String()
}

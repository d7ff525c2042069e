// Package scenario loads YAML edit scripts for a room distance map and replays them
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/region"
)

var (
	ErrUnknownOp     = errors.New("scenario: unknown op")
	ErrUnknownRegion = errors.New("scenario: unknown region")
	ErrBadRegion     = errors.New("scenario: bad region")
	ErrBadMap        = errors.New("scenario: bad map size")
)

// Op is a step verb
type Op string

const (
	OpInsert Op = "insert"
	OpDelete Op = "delete"
	OpMove   Op = "move"   // translate by dx, dy
	OpResize Op = "resize" // replace tiles with rect
)

type MapSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Area converts to tile coordinates
func (r Rect) Area() core.Area {
	return core.Area{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// RegionSpec declares a region by rectangle or explicit tile list, exactly one of the two
type RegionSpec struct {
	ID    string   `yaml:"id"`
	Rect  *Rect    `yaml:"rect"`
	Tiles [][2]int `yaml:"tiles"`
}

type Step struct {
	Op     Op     `yaml:"op"`
	Region string `yaml:"region"`
	DX     int    `yaml:"dx"`
	DY     int    `yaml:"dy"`
	Rect   *Rect  `yaml:"rect"` // resize only
}

func (s Step) String() string {
	switch s.Op {
	case OpMove:
		return fmt.Sprintf("%s %s by (%d,%d)", s.Op, s.Region, s.DX, s.DY)
	case OpResize:
		if s.Rect != nil {
			return fmt.Sprintf("%s %s to %dx%d at (%d,%d)", s.Op, s.Region, s.Rect.W, s.Rect.H, s.Rect.X, s.Rect.Y)
		}
	}
	return fmt.Sprintf("%s %s", s.Op, s.Region)
}

// Scenario is one parsed file
// Zero MaxDistance and Subdivision defer to the configuration
type Scenario struct {
	Map         MapSize      `yaml:"map"`
	MaxDistance float64      `yaml:"max_distance"`
	Subdivision int          `yaml:"subdivision"`
	Regions     []RegionSpec `yaml:"regions"`
	Steps       []Step       `yaml:"steps"`
}

// Load reads and validates the scenario file at path
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks map size, region declarations and that every step names a known op and region
func (s *Scenario) Validate() error {
	if s.Map.Width < 1 || s.Map.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrBadMap, s.Map.Width, s.Map.Height)
	}

	ids := make(map[string]struct{}, len(s.Regions))
	for i, r := range s.Regions {
		switch {
		case r.ID == "":
			return fmt.Errorf("%w: region %d has no id", ErrBadRegion, i)
		case (r.Rect == nil) == (len(r.Tiles) == 0):
			return fmt.Errorf("%w: region %s needs exactly one of rect or tiles", ErrBadRegion, r.ID)
		case r.Rect != nil && (r.Rect.W < 1 || r.Rect.H < 1):
			return fmt.Errorf("%w: region %s has empty rect", ErrBadRegion, r.ID)
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrBadRegion, r.ID)
		}
		ids[r.ID] = struct{}{}
	}

	for i, st := range s.Steps {
		switch st.Op {
		case OpInsert, OpDelete, OpMove:
		case OpResize:
			if st.Rect == nil || st.Rect.W < 1 || st.Rect.H < 1 {
				return fmt.Errorf("%w: step %d resize needs a non-empty rect", ErrBadRegion, i)
			}
		default:
			return fmt.Errorf("%w: step %d %q", ErrUnknownOp, i, st.Op)
		}
		if _, ok := ids[st.Region]; !ok {
			return fmt.Errorf("%w: step %d %q", ErrUnknownRegion, i, st.Region)
		}
	}
	return nil
}

// Build returns the initial record of every declared region keyed by id
func (s *Scenario) Build() map[string]*region.Region {
	out := make(map[string]*region.Region, len(s.Regions))
	for _, spec := range s.Regions {
		if spec.Rect != nil {
			out[spec.ID] = region.FromArea(spec.ID, spec.Rect.Area())
			continue
		}
		tiles := make([]core.Point, len(spec.Tiles))
		for i, t := range spec.Tiles {
			tiles[i] = core.Point{X: t[0], Y: t[1]}
		}
		out[spec.ID] = &region.Region{ID: spec.ID, Tiles: tiles}
	}
	return out
}

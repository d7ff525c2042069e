package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/region"
)

// StepFunc is called after each applied step with the stats of the map call it made
// Steps that do not touch the map report zero stats
type StepFunc func(i int, st Step, stats navigation.UpdateStats)

// Runner replays scenario steps onto a RoomDistanceMap, tracking each region's current revision
type Runner struct {
	field   *navigation.RoomDistanceMap
	steps   []Step
	current map[string]*region.Region
	placed  map[string]bool
	logger  *zap.Logger
}

func NewRunner(field *navigation.RoomDistanceMap, s *Scenario, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		field:   field,
		steps:   s.Steps,
		current: s.Build(),
		placed:  make(map[string]bool, len(s.Regions)),
		logger:  logger,
	}
}

// Run applies every step in order, stopping early when ctx is done
func (r *Runner) Run(ctx context.Context, fn StepFunc) error {
	for i, st := range r.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats, err := r.Apply(st)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if fn != nil {
			fn(i, st, stats)
		}
	}
	return nil
}

// Apply performs one step
// Moving or resizing a region that is not placed only edits its record
func (r *Runner) Apply(st Step) (navigation.UpdateStats, error) {
	cur, ok := r.current[st.Region]
	if !ok {
		return navigation.UpdateStats{}, fmt.Errorf("%w: %q", ErrUnknownRegion, st.Region)
	}

	var next *region.Region
	switch st.Op {
	case OpInsert:
		r.field.Insert(cur)
		r.placed[cur.ID] = true
	case OpDelete:
		if !r.placed[cur.ID] {
			r.logger.Debug("delete of unplaced region ignored", zap.String("region", cur.ID))
			return navigation.UpdateStats{}, nil
		}
		r.field.Delete(cur)
		r.placed[cur.ID] = false
	case OpMove:
		next = cur.Translate(st.DX, st.DY)
	case OpResize:
		if st.Rect == nil {
			return navigation.UpdateStats{}, fmt.Errorf("%w: resize without rect", ErrBadRegion)
		}
		next = cur.WithTiles(st.Rect.Area().Points())
	default:
		return navigation.UpdateStats{}, fmt.Errorf("%w: %q", ErrUnknownOp, st.Op)
	}

	if next != nil {
		r.current[cur.ID] = next
		if !r.placed[cur.ID] {
			return navigation.UpdateStats{}, nil
		}
		r.field.Update(cur, next)
	}

	stats := r.field.LastStats()
	r.logger.Debug("scenario step applied", zap.Stringer("step", st), zap.Int("points_processed", stats.PointsProcessed))
	return stats, nil
}

// Current returns the latest revision of region id
func (r *Runner) Current(id string) (*region.Region, bool) {
	reg, ok := r.current[id]
	return reg, ok
}

// Placed reports whether region id is currently inserted
func (r *Runner) Placed(id string) bool { return r.placed[id] }

package navigation

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/parameter"
)

// Op names the mutating call that produced an UpdateStats
type Op string

const (
	OpInsert Op = "insert"
	OpDelete Op = "delete"
	OpUpdate Op = "update"
)

// UpdateStats summarises the work done by one Insert/Delete/Update call
type UpdateStats struct {
	Op               Op
	TilesActivated   int
	TilesDeactivated int
	RootsRemoved     int // Pieces dropped as roots by deactivation
	RootsInvalidated int // Pieces that lost their root in the invalidation sweep
	FrontierSeeded   int // Rooted pieces re-queued next to unrooted ones
	PointsProcessed  int // Wavefront pops
	Duration         time.Duration
}

// Observer receives stats after every mutating call
type Observer interface {
	ObserveUpdate(UpdateStats)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(UpdateStats)

func (f ObserverFunc) ObserveUpdate(s UpdateStats) { f(s) }

type options struct {
	subdivision int
	logger      *zap.Logger
	observer    Observer
}

// Option configures a RoomDistanceMap
type Option func(*options)

func defaultOptions() options {
	return options{
		subdivision: parameter.DefaultSubdivision,
		logger:      zap.NewNop(),
	}
}

// WithSubdivision sets the number of pieces per tile edge
func WithSubdivision(n int) Option {
	return func(o *options) { o.subdivision = n }
}

// WithLogger routes per-update debug logs to l, nil keeps the no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers a stats observer
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

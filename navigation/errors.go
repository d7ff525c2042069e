package navigation

import "errors"

// Construction errors
var (
	ErrNilMap         = errors.New("navigation: map is nil")
	ErrBadMaxDistance = errors.New("navigation: max distance must be positive")
	ErrBadSubdivision = errors.New("navigation: subdivision must be at least 1")
)

// Contract violations, raised via panic: they indicate corrupted occupancy bookkeeping
var (
	ErrTileActive   = errors.New("navigation: tile is already in a room")
	ErrTileInactive = errors.New("navigation: tile is not in a room")
)

package parameter

// Navigation - Room Distance Field
const (
	// DefaultSubdivision is the number of distance-field pieces per tile edge
	DefaultSubdivision = 8

	// DefaultMaxDistance is the tracked radius around rooms, in tiles
	DefaultMaxDistance = 5.0

	// WavefrontInitialCapacity is the fraction of grid cells preallocated for the queue heap
	WavefrontInitialCapacity = 4 // size/4
)

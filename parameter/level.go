package parameter

// Level generation defaults
const (
	// Map size in tiles
	LevelMapWidth  = 48
	LevelMapHeight = 24

	// Room placement
	LevelRoomCount   = 8
	LevelRoomMinSize = 2
	LevelRoomMaxSize = 6
	LevelRoomPadding = 1 // Free tiles kept between rooms

	// LevelPlacementAttempts bounds rejection sampling per requested room
	LevelPlacementAttempts = 64
)

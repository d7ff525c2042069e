package parameter

import "time"

// Interactive viewer
const (
	ViewerFrameInterval = 33 * time.Millisecond
	ViewerErrorFlash    = 400 * time.Millisecond
	ViewerEventBuffer   = 64

	// Error cue tone
	ViewerToneHz         = 220
	ViewerToneDuration   = 60 * time.Millisecond
	ViewerAudioSampleHz  = 44100
	ViewerAudioBufferDiv = 10 // buffer = 1s / div
)

// Viewer layout and editing
const (
	ViewerCellsPerTileX = 2 // terminal cells are roughly twice as tall as wide
	ViewerCellsPerTileY = 1

	ViewerBrushMin     = 1
	ViewerBrushMax     = 8
	ViewerBrushDefault = 3
)

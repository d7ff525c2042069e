package visual

// DistanceRamp shades distance from inside a room (index 0) to the tracked radius (last index)
var DistanceRamp = []rune{'█', '▓', '▒', '░', '·'}

// Special cells
const (
	CharOutOfRange = ' '
	CharNoRoot     = ' '
	CharCursor     = '+'
)

// RGB is an 8-bit per channel colour
type RGB struct {
	R, G, B uint8
}

// Distance gradient endpoints, near = inside a room, far = at max distance
var (
	RgbFieldNear    = RGB{R: 220, G: 60, B: 40}
	RgbFieldFar     = RGB{R: 40, G: 180, B: 90}
	RgbOutOfRange   = RGB{R: 30, G: 30, B: 40}
	RgbCursor       = RGB{R: 255, G: 255, B: 255}
	RgbCursorError  = RGB{R: 255, G: 0, B: 0}
	RgbStatusText   = RGB{R: 0, G: 0, B: 0}
	RgbStatusBg     = RGB{R: 135, G: 206, B: 250}
	RgbStatusBgWarn = RGB{R: 255, G: 165, B: 0}
)

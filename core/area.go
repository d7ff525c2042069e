package core

// Area represents a rectangular tile region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// Contains checks if point is within area
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}

// Points returns every coordinate covered by the area in row-major order
func (a Area) Points() []Point {
	if a.Width <= 0 || a.Height <= 0 {
		return nil
	}
	pts := make([]Point, 0, a.Width*a.Height)
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Overlaps reports whether two areas share at least one cell after growing a by pad on every side
func (a Area) Overlaps(b Area, pad int) bool {
	return a.X-pad < b.X+b.Width && b.X < a.X+a.Width+pad &&
		a.Y-pad < b.Y+b.Height && b.Y < a.Y+a.Height+pad
}

package core

import "fmt"

// Point represents a 2D integer coordinate, used for both coarse tiles and fine pieces
type Point struct {
	X, Y int
}

// Neighbors8 lists the 8-connected ring offsets: N, NE, E, SE, S, SW, W, NW
var Neighbors8 = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k int) Point   { return Point{p.X * k, p.Y * k} }

// AddScalar adds k to both components
func (p Point) AddScalar(k int) Point { return Point{p.X + k, p.Y + k} }

// Min returns the component-wise minimum
func (p Point) Min(q Point) Point {
	return Point{min(p.X, q.X), min(p.Y, q.Y)}
}

// Max returns the component-wise maximum
func (p Point) Max(q Point) Point {
	return Point{max(p.X, q.X), max(p.Y, q.Y)}
}

// Clamp limits both components to [lo, hi] inclusive
func (p Point) Clamp(lo, hi Point) Point {
	return p.Max(lo).Min(hi)
}

// In reports whether p lies in [0,size.X) × [0,size.Y)
func (p Point) In(size Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < size.X && p.Y < size.Y
}

// Less orders points row-major (Y first, then X)
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// MinOf returns the component-wise minimum over pts, zero Point if empty
func MinOf(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	m := pts[0]
	for _, p := range pts[1:] {
		m = m.Min(p)
	}
	return m
}

// MaxOf returns the component-wise maximum over pts, zero Point if empty
func MaxOf(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	m := pts[0]
	for _, p := range pts[1:] {
		m = m.Max(p)
	}
	return m
}

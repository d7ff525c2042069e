package vmath

import (
	"math"

	"github.com/lixenwraith/roomfield/core"
)

// Vec2 is a continuous map-space position
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2         { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2         { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) Scale(k float64) Vec2    { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(w Vec2) float64 { return Distance(v, w) }

// Distance returns the Euclidean distance between a and b
// Uses sqrt(dx²+dy²) rather than math.Hypot so equal offsets always yield bit-identical results
func Distance(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// FromPoint converts an integer coordinate to a continuous position
func FromPoint(p core.Point) Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// Floor returns the integer coordinate at or below v on both axes
func Floor(v Vec2) core.Point {
	return core.Point{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

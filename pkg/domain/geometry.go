// Package domain defines the contracts shared between the evolution grid core
// and its external collaborators: the drawing surface, the organisms that render
// themselves onto it, and the input events that steer the population.
//
// All coordinates use a bottom-left origin with y increasing upward.
package domain

import "math"

// Point is a position on the drawing surface.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Rect is an axis-aligned region described by its bottom-left corner and size.
// Bounds may be fractional; the drawing layer rounds as needed.
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Bottom + r.Height/2}
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Left: r.Left + d, Bottom: r.Bottom + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Empty reports whether the rectangle has no positive area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// ContainsStrict reports whether p lies strictly inside r.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.Left && p.X < r.Right() && p.Y > r.Bottom && p.Y < r.Top()
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return math.Max(r.Left, o.Left) < math.Min(r.Right(), o.Right()) &&
		math.Max(r.Bottom, o.Bottom) < math.Min(r.Top(), o.Top())
}

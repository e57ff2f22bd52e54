package engine

import "math"

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the smallest rect containing every point of every shape.
// Degenerate shapes (a single point, a horizontal segment) give a rect with
// zero width or height.
func Bounds(shapes ...Shape) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	seen := false

	for _, s := range shapes {
		for _, p := range s {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
			seen = true
		}
	}
	if !seen {
		return Rect{}
	}

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// MaxAbs returns the largest absolute coordinate found in the shapes, or 0
// if there are no points.
func MaxAbs(shapes ...Shape) float64 {
	var m float64
	for _, s := range shapes {
		for _, p := range s {
			m = max(m, math.Abs(p.X), math.Abs(p.Y))
		}
	}
	return m
}

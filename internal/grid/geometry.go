// Package grid provides the geometry primitives and search routines shared by
// level generation and turn resolution.
package grid

import (
	"fmt"

	"github.com/samdwyer/shardcrawler/internal/rng"
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Scale returns p multiplied component-wise by n.
func (p Point) Scale(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// IsZero reports whether p is the zero delta.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is a grid extent.
type Size struct {
	Width, Height int
}

// Area returns the number of cells covered by s.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Index returns the flat index of p in a row-major buffer of size s.
func (s Size) Index(p Point) int {
	return p.Y*s.Width + p.X
}

// PointAt is the inverse of Index.
func (s Size) PointAt(index int) Point {
	return Point{X: index % s.Width, Y: index / s.Width}
}

// Rect is a rectangular region: a top-left corner plus a size.
type Rect struct {
	Point
	Size
}

// Center returns the center coordinates of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this rect overlaps with another rect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Directions are the four cardinal unit deltas in +x, -x, +y, -y order.
var Directions = []Point{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// InBounds reports whether p lies inside size (inclusive-exclusive).
func InBounds(p Point, size Size) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < size.Width && p.Y < size.Height
}

// Neighbors4 returns the axis-aligned neighbours of p in +x, -x, +y, -y order.
// The result is not bounds-filtered.
func Neighbors4(p Point) [4]Point {
	return [4]Point{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

// Manhattan returns the taxicab distance between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// RectPoints lists every cell of r in row-major order.
func RectPoints(r Rect) []Point {
	points := make([]Point, 0, r.Area())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

// RandomRect samples a rect of at least 3x3 that fits inside bounds.
func RandomRect(r *rng.RNG, bounds Rect) (Rect, error) {
	width, err := r.NextInt(bounds.Width - 3)
	if err != nil {
		return Rect{}, fmt.Errorf("bounds too narrow for a room: %w", err)
	}
	width += 3
	height, err := r.NextInt(bounds.Height - 3)
	if err != nil {
		return Rect{}, fmt.Errorf("bounds too short for a room: %w", err)
	}
	height += 3
	x, err := r.NextInt(bounds.Width - width)
	if err != nil {
		return Rect{}, fmt.Errorf("no horizontal slack in bounds: %w", err)
	}
	y, err := r.NextInt(bounds.Height - height)
	if err != nil {
		return Rect{}, fmt.Errorf("no vertical slack in bounds: %w", err)
	}
	return Rect{
		Point: Point{X: x + bounds.X, Y: y + bounds.Y},
		Size:  Size{Width: width, Height: height},
	}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package grid

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Predicate reports whether a cell satisfies some terrain property.
type Predicate func(p Point) bool

// TraceLine rasterizes the segment from a to b, inclusive of both endpoints.
// The segment is always traced from its lexicographically smaller endpoint so
// that TraceLine(b, a) is exactly the reverse of TraceLine(a, b).
func TraceLine(a, b Point) []Point {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		points := bresenham(b, a)
		slices.Reverse(points)
		return points
	}
	return bresenham(a, b)
}

func bresenham(from, to Point) []Point {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	points := make([]Point, 0, max(dx, -dy)+1)
	x, y := from.X, from.Y
	err := dx + dy
	for {
		points = append(points, Point{X: x, Y: y})
		if x == to.X && y == to.Y {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// LineOfSight reports whether every cell strictly between origin and target
// satisfies passable. With inclusive set the target itself is checked too.
func LineOfSight(origin, target Point, passable Predicate, inclusive bool) bool {
	points := TraceLine(origin, target)
	end := len(points) - 1
	if inclusive {
		end = len(points)
	}
	for i := 1; i < end; i++ {
		if !passable(points[i]) {
			return false
		}
	}
	return true
}

// FloodFill returns every passable cell reachable from start through
// 4-connected passable cells. Out-of-bounds cells are never included.
func FloodFill(start Point, size Size, passable Predicate) mapset.Set[Point] {
	reachable := mapset.New[Point]()
	queue := []Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if reachable.Has(current) || !InBounds(current, size) || !passable(current) {
			continue
		}
		reachable.Put(current)

		for _, n := range Neighbors4(current) {
			if !reachable.Has(n) {
				queue = append(queue, n)
			}
		}
	}

	return reachable
}

// FindPath returns the breadth-first shortest path from start to goal,
// inclusive of both, or nil when goal is unreachable. Ties are broken by
// Neighbors4 order.
func FindPath(start, goal Point, size Size, passable Predicate) []Point {
	cameFrom := map[Point]Point{start: start}
	queue := []Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			break
		}
		for _, next := range Neighbors4(current) {
			if !InBounds(next, size) || !passable(next) {
				continue
			}
			if _, ok := cameFrom[next]; ok {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}

	if _, ok := cameFrom[goal]; !ok {
		return nil
	}

	path := []Point{goal}
	for cursor := goal; cursor != start; {
		cursor = cameFrom[cursor]
		path = append(path, cursor)
	}
	slices.Reverse(path)
	return path
}

// ComputeVisibility returns a per-cell visibility field for an observer at
// origin. Cells are expanded breadth-first up to Manhattan distance radius; a
// cell is visible when the inclusive line of sight to it crosses only
// transparent cells, and expansion does not continue past non-visible cells.
func ComputeVisibility(origin Point, radius int, size Size, transparent Predicate) []bool {
	visible := make([]bool, size.Area())
	if !InBounds(origin, size) {
		return visible
	}

	visited := mapset.New[Point]()
	visited.Put(origin)
	queue := []Point{origin}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if Manhattan(origin, current) > radius {
			continue
		}
		idx := size.Index(current)
		visible[idx] = LineOfSight(origin, current, transparent, true)
		if !visible[idx] {
			continue
		}

		for _, next := range Neighbors4(current) {
			if !InBounds(next, size) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return visible
}

package grid

import (
	"errors"
	"testing"

	"github.com/samdwyer/shardcrawler/internal/rng"
)

// parseMap builds a passability predicate from rows where '#' is blocked.
func parseMap(rows []string) (Size, Predicate) {
	size := Size{Width: len(rows[0]), Height: len(rows)}
	return size, func(p Point) bool {
		return InBounds(p, size) && rows[p.Y][p.X] != '#'
	}
}

func TestInBounds(t *testing.T) {
	size := Size{Width: 4, Height: 3}
	tests := []struct {
		p        Point
		expected bool
	}{
		{Point{0, 0}, true},
		{Point{3, 2}, true},
		{Point{4, 2}, false},
		{Point{3, 3}, false},
		{Point{-1, 0}, false},
		{Point{0, -1}, false},
	}

	for _, tt := range tests {
		if got := InBounds(tt.p, size); got != tt.expected {
			t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.expected)
		}
	}
}

func TestNeighbors4Order(t *testing.T) {
	got := Neighbors4(Point{5, 5})
	want := [4]Point{{6, 5}, {4, 5}, {5, 6}, {5, 4}}
	if got != want {
		t.Errorf("Neighbors4 = %v, want %v", got, want)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Point: Point{2, 3}, Size: Size{Width: 4, Height: 2}}

	if c := r.Center(); c != (Point{4, 4}) {
		t.Errorf("Center() = %v, want (4,4)", c)
	}
	if !r.Contains(Point{5, 4}) || r.Contains(Point{6, 4}) {
		t.Error("Contains should be inclusive-exclusive")
	}
	if len(RectPoints(r)) != 8 {
		t.Errorf("RectPoints returned %d points, want 8", len(RectPoints(r)))
	}

	other := Rect{Point: Point{5, 4}, Size: Size{Width: 3, Height: 3}}
	if !r.Intersects(other) {
		t.Error("rects sharing cell (5,4) should intersect")
	}
	far := Rect{Point: Point{6, 0}, Size: Size{Width: 2, Height: 2}}
	if r.Intersects(far) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRandomRect(t *testing.T) {
	r := rng.FromSeed("rects")
	bounds := Rect{Point: Point{1, 1}, Size: Size{Width: 20, Height: 12}}
	for i := 0; i < 100; i++ {
		rect, err := RandomRect(r, bounds)
		if err != nil {
			t.Fatalf("RandomRect error: %v", err)
		}
		if rect.Width < 3 || rect.Height < 3 {
			t.Fatalf("rect too small: %+v", rect)
		}
		for _, p := range RectPoints(rect) {
			if !bounds.Contains(p) {
				t.Fatalf("rect %+v escapes bounds %+v", rect, bounds)
			}
		}
	}

	tiny := Rect{Size: Size{Width: 3, Height: 10}}
	if _, err := RandomRect(r, tiny); !errors.Is(err, rng.ErrInvalidArgument) {
		t.Errorf("RandomRect(tiny) error = %v, want ErrInvalidArgument", err)
	}
}

func TestTraceLineEndpointsAndReverse(t *testing.T) {
	pairs := [][2]Point{
		{{0, 0}, {2, 1}},
		{{0, 0}, {5, 3}},
		{{3, 7}, {-2, 1}},
		{{4, 4}, {4, 0}},
		{{1, 1}, {1, 1}},
		{{0, 5}, {6, 5}},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		forward := TraceLine(a, b)
		backward := TraceLine(b, a)

		if forward[0] != a || forward[len(forward)-1] != b {
			t.Errorf("TraceLine(%v,%v) endpoints = %v..%v", a, b, forward[0], forward[len(forward)-1])
		}
		if len(forward) != len(backward) {
			t.Fatalf("TraceLine(%v,%v) length %d, reverse length %d", a, b, len(forward), len(backward))
		}
		for i := range forward {
			if forward[i] != backward[len(backward)-1-i] {
				t.Errorf("TraceLine(%v,%v) is not the reverse of TraceLine(%v,%v)", b, a, a, b)
				break
			}
		}
		for i := 1; i < len(forward); i++ {
			dx := abs(forward[i].X - forward[i-1].X)
			dy := abs(forward[i].Y - forward[i-1].Y)
			if dx > 1 || dy > 1 {
				t.Errorf("TraceLine(%v,%v) has a gap at step %d", a, b, i)
			}
		}
	}
}

func TestLineOfSight(t *testing.T) {
	_, passable := parseMap([]string{
		".....",
		"..#..",
		".....",
	})

	if LineOfSight(Point{0, 1}, Point{4, 1}, passable, false) {
		t.Error("wall at (2,1) should block sight along row 1")
	}
	if !LineOfSight(Point{0, 0}, Point{4, 0}, passable, false) {
		t.Error("row 0 should be clear")
	}
	if !LineOfSight(Point{0, 1}, Point{2, 1}, passable, false) {
		t.Error("exclusive sight should ignore a blocked target")
	}
	if LineOfSight(Point{0, 1}, Point{2, 1}, passable, true) {
		t.Error("inclusive sight should check the target")
	}
}

func TestFloodFill(t *testing.T) {
	size, passable := parseMap([]string{
		"..#..",
		"..#..",
		"###..",
	})

	reached := FloodFill(Point{0, 0}, size, passable)
	if reached.Size() != 4 {
		t.Errorf("FloodFill reached %d cells, want 4", reached.Size())
	}
	if reached.Has(Point{3, 0}) {
		t.Error("FloodFill crossed the wall")
	}

	right := FloodFill(Point{4, 2}, size, passable)
	if right.Size() != 6 {
		t.Errorf("FloodFill from right reached %d cells, want 6", right.Size())
	}

	if FloodFill(Point{2, 0}, size, passable).Size() != 0 {
		t.Error("FloodFill from a wall should be empty")
	}
	if FloodFill(Point{-1, 0}, size, passable).Size() != 0 {
		t.Error("FloodFill from out of bounds should be empty")
	}
}

func TestFindPath(t *testing.T) {
	size, passable := parseMap([]string{
		".....",
		".###.",
		".#...",
		".#.#.",
	})

	start, goal := Point{0, 3}, Point{2, 3}
	path := FindPath(start, goal, size, passable)
	if len(path) == 0 {
		t.Fatal("expected a path")
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Errorf("path endpoints %v..%v, want %v..%v", path[0], path[len(path)-1], start, goal)
	}
	for i := 1; i < len(path); i++ {
		if Manhattan(path[i], path[i-1]) != 1 {
			t.Errorf("path step %d is not 4-adjacent: %v -> %v", i, path[i-1], path[i])
		}
	}
	// The only route goes up and over the wall block.
	if len(path) != 13 {
		t.Errorf("path length = %d, want 13", len(path))
	}

	if p := FindPath(start, start, size, passable); len(p) != 1 || p[0] != start {
		t.Errorf("FindPath(start, start) = %v, want [start]", p)
	}

	blocked, blockedPassable := parseMap([]string{
		".#.",
		".#.",
	})
	if p := FindPath(Point{0, 0}, Point{2, 0}, blocked, blockedPassable); p != nil {
		t.Errorf("unreachable goal should give empty path, got %v", p)
	}
}

func TestFindPathTieBreak(t *testing.T) {
	size, passable := parseMap([]string{
		"...",
		"...",
	})
	// Both (1,0)->(1,1) and (0,1)->(1,1) are shortest; +x is explored first.
	path := FindPath(Point{0, 0}, Point{1, 1}, size, passable)
	if len(path) != 3 || path[1] != (Point{1, 0}) {
		t.Errorf("path = %v, want via (1,0)", path)
	}
}

func TestComputeVisibility(t *testing.T) {
	size, passable := parseMap([]string{
		"..........",
		"..........",
		"....#.....",
		"..........",
		"..........",
	})
	origin := Point{2, 2}
	radius := 3

	visible := ComputeVisibility(origin, radius, size, passable)

	if !visible[size.Index(origin)] {
		t.Error("origin must always be visible")
	}
	for i, v := range visible {
		p := size.PointAt(i)
		if v && Manhattan(origin, p) > radius {
			t.Errorf("cell %v beyond radius marked visible", p)
		}
	}
	if visible[size.Index(Point{4, 2})] {
		t.Error("opaque cell should not be marked visible")
	}
	if visible[size.Index(Point{5, 2})] {
		t.Error("cell behind the wall should be hidden")
	}
	if !visible[size.Index(Point{3, 2})] {
		t.Error("adjacent open cell should be visible")
	}
}

// Package world provides room tile maps, depth layouts and the seeded level
// builder that produces them.
package world

import "github.com/samdwyer/shardcrawler/internal/grid"

// TileKind represents the terrain of a single cell.
type TileKind int

const (
	// TileWall represents an impassable, opaque tile.
	TileWall TileKind = iota
	// TileFloor represents a passable floor tile.
	TileFloor
	// TileDoor represents an open door.
	TileDoor
	// TileLockedDoor blocks movement until a key is spent on it.
	TileLockedDoor
	// TileVoid is empty space outside the playable area.
	TileVoid
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileLockedDoor:
		return "locked-door"
	case TileVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Tile is a single map cell.
type Tile struct {
	Kind   TileKind
	Locked bool // Set only on locked doors
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Kind == TileFloor || t.Kind == TileDoor
}

// IsTransparent returns true if the tile does not block sight.
func (t Tile) IsTransparent() bool {
	return t.Kind != TileWall
}

// BlocksTraversal returns true for terrain hazards and shots cannot cross.
func (t Tile) BlocksTraversal() bool {
	return t.Kind == TileWall || t.Kind == TileLockedDoor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t.Kind {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return '\''
	case TileLockedDoor:
		return '+'
	default:
		return ' '
	}
}

// TileMap is a flat row-major tile buffer.
type TileMap struct {
	Tiles []Tile
	Size  grid.Size
}

// NewTileMap creates a tile map filled with walls.
func NewTileMap(size grid.Size) *TileMap {
	tiles := make([]Tile, size.Area())
	for i := range tiles {
		tiles[i] = Tile{Kind: TileWall}
	}
	return &TileMap{Tiles: tiles, Size: size}
}

// At returns the tile at p. Out-of-bounds positions read as wall.
func (m *TileMap) At(p grid.Point) Tile {
	if !grid.InBounds(p, m.Size) {
		return Tile{Kind: TileWall}
	}
	return m.Tiles[m.Size.Index(p)]
}

// Set replaces the tile at p. Out-of-bounds writes are ignored.
func (m *TileMap) Set(p grid.Point, t Tile) {
	if grid.InBounds(p, m.Size) {
		m.Tiles[m.Size.Index(p)] = t
	}
}

// Unlock turns the locked door at p into an open door. It reports whether
// a door was unlocked.
func (m *TileMap) Unlock(p grid.Point) bool {
	if m.At(p).Kind != TileLockedDoor {
		return false
	}
	m.Set(p, Tile{Kind: TileDoor})
	return true
}

// Bounds returns the map extent as a rect anchored at the origin.
func (m *TileMap) Bounds() grid.Rect {
	return grid.Rect{Size: m.Size}
}

// IsPassable returns true if the given position can be walked on.
func (m *TileMap) IsPassable(p grid.Point) bool {
	return grid.InBounds(p, m.Size) && m.At(p).IsPassable()
}

// FloorCells lists every floor tile in row-major order.
func (m *TileMap) FloorCells() []grid.Point {
	cells := make([]grid.Point, 0, len(m.Tiles))
	for i, t := range m.Tiles {
		if t.Kind == TileFloor {
			cells = append(cells, m.Size.PointAt(i))
		}
	}
	return cells
}

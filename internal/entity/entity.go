// Package entity provides the things that live on a room's grid: shards,
// items, hazards, projectiles, portals and the player.
package entity

import "github.com/samdwyer/shardcrawler/internal/grid"

// Base holds the fields every entity carries.
type Base struct {
	ID    int        // Unique for the lifetime of a run, never reused
	Pos   grid.Point // Current position in the room
	Alive bool       // False once collected, destroyed or expired
}

// At reports whether the entity is alive and standing on p.
func (b *Base) At(p grid.Point) bool {
	return b.Alive && b.Pos == p
}

// IDGen issues strictly increasing entity identifiers. One generator is
// threaded through level generation and then handed to the run, so ids are
// never reused between generated entities and runtime spawns.
type IDGen struct {
	last int
}

// NewIDGen returns a generator whose first id is 1.
func NewIDGen() *IDGen {
	return &IDGen{}
}

// Next returns the next identifier.
func (g *IDGen) Next() int {
	g.last++
	return g.last
}

// Last returns the most recently issued identifier, or 0 if none.
func (g *IDGen) Last() int {
	return g.last
}

// Shard is a collectible counted toward a room's portal quota.
type Shard struct {
	Base
}

// NewShard creates a shard at the given position.
func NewShard(id int, pos grid.Point) Shard {
	return Shard{Base: Base{ID: id, Pos: pos, Alive: true}}
}

// Symbol returns the display symbol for a shard.
func (s *Shard) Symbol() rune {
	return '$'
}

// Portal is a room's exit. It opens once the shard quota is met.
type Portal struct {
	Base
	Active bool
}

// NewPortal creates an inactive portal.
func NewPortal(id int, pos grid.Point) *Portal {
	return &Portal{Base: Base{ID: id, Pos: pos, Alive: true}}
}

// Symbol returns the display symbol for a portal, filled once open.
func (p *Portal) Symbol() rune {
	if p.Active {
		return 'O'
	}
	return 'o'
}

// Projectile is a turret shot travelling one cell per tick.
type Projectile struct {
	Base
	Dir grid.Point
}

// NewProjectile creates a live projectile.
func NewProjectile(id int, pos, dir grid.Point) Projectile {
	return Projectile{Base: Base{ID: id, Pos: pos, Alive: true}, Dir: dir}
}

// Symbol returns the display symbol for a projectile.
func (p *Projectile) Symbol() rune {
	return '*'
}

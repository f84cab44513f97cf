package world

import (
	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/grid"
)

const (
	// MaxDepth is the number of depths in a run.
	MaxDepth = 5
	// RoomsPerDepth is the number of rooms in every depth.
	RoomsPerDepth = 4
)

// Room is one self-contained tile map with its entities.
type Room struct {
	TileMap     *TileMap
	Spawn       grid.Point
	Shards      []entity.Shard
	Hazards     []entity.Hazard
	Items       []entity.Item
	Portal      *entity.Portal // nil when the room has no exit
	ShardTarget int            // Shards needed to open the portal
	Seen        []bool         // Cells ever seen, indexed like TileMap.Tiles
	Collected   int            // Shards collected during the current visit
}

// ShardAt returns the first live shard at p, or nil.
func (r *Room) ShardAt(p grid.Point) *entity.Shard {
	for i := range r.Shards {
		if r.Shards[i].At(p) {
			return &r.Shards[i]
		}
	}
	return nil
}

// ItemAt returns the first live item at p, or nil.
func (r *Room) ItemAt(p grid.Point) *entity.Item {
	for i := range r.Items {
		if r.Items[i].At(p) {
			return &r.Items[i]
		}
	}
	return nil
}

// HazardAt returns the first live hazard at p, or nil.
func (r *Room) HazardAt(p grid.Point) *entity.Hazard {
	for i := range r.Hazards {
		if r.Hazards[i].At(p) {
			return &r.Hazards[i]
		}
	}
	return nil
}

// PortalActiveAt reports whether the room's portal is open and at p.
func (r *Room) PortalActiveAt(p grid.Point) bool {
	return r.Portal != nil && r.Portal.Active && r.Portal.At(p)
}

// QuotaMet reports whether enough shards were collected to open the portal.
func (r *Room) QuotaMet() bool {
	return r.Collected >= r.ShardTarget
}

// AliveShards returns the number of shards still on the floor.
func (r *Room) AliveShards() int {
	count := 0
	for i := range r.Shards {
		if r.Shards[i].Alive {
			count++
		}
	}
	return count
}

// DepthLayout is the ordered set of rooms making up one depth. The key room
// always precedes the locked-door room.
type DepthLayout struct {
	Rooms               []Room
	LockedDoorRoomIndex int
	KeyRoomIndex        int
}

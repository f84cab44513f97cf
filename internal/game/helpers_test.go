package game

import (
	"testing"

	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// buildWorld creates a single-room world from an ASCII map.
//
//	#  wall          .  floor        @  spawn
//	+  locked door   s  shard        O  portal
//	k  key           p  patch        b  blink
//	S  sentinel (delay 0)            ^  spike (cycle 4)
//	T  turret facing left, fire rate 2
func buildWorld(t *testing.T, quota int, rows ...string) *World {
	t.Helper()

	size := grid.Size{Width: len(rows[0]), Height: len(rows)}
	tm := world.NewTileMap(size)
	ids := entity.NewIDGen()
	room := world.Room{
		TileMap:     tm,
		ShardTarget: quota,
		Seen:        make([]bool, size.Area()),
	}

	for y, row := range rows {
		if len(row) != size.Width {
			t.Fatalf("row %d has width %d, want %d", y, len(row), size.Width)
		}
		for x, ch := range row {
			p := grid.Point{X: x, Y: y}
			if ch != '#' {
				tm.Set(p, world.Tile{Kind: world.TileFloor})
			}
			switch ch {
			case '@':
				room.Spawn = p
			case '+':
				tm.Set(p, world.Tile{Kind: world.TileLockedDoor, Locked: true})
			case 's':
				room.Shards = append(room.Shards, entity.NewShard(ids.Next(), p))
			case 'O':
				room.Portal = entity.NewPortal(ids.Next(), p)
			case 'k':
				room.Items = append(room.Items, entity.NewItem(ids.Next(), p, entity.ItemKey))
			case 'p':
				room.Items = append(room.Items, entity.NewItem(ids.Next(), p, entity.ItemPatch))
			case 'b':
				room.Items = append(room.Items, entity.NewItem(ids.Next(), p, entity.ItemBlink))
			case 'S':
				room.Hazards = append(room.Hazards, entity.NewSentinel(ids.Next(), p, 0))
			case '^':
				room.Hazards = append(room.Hazards, entity.NewSpike(ids.Next(), p, 4))
			case 'T':
				room.Hazards = append(room.Hazards, entity.NewTurret(ids.Next(), p, grid.Point{X: -1, Y: 0}, 2))
			}
		}
	}

	gen := &world.Generation{
		SeedString: "test",
		Difficulty: gamedata.DifficultyStandard,
		Layouts:    []world.DepthLayout{{Rooms: []world.Room{room}, LockedDoorRoomIndex: 1}},
		IDs:        ids,
	}
	return NewWorld(gen, ModeTurn)
}

// toughen gives the player extra health so multi-hit scenarios survive.
func toughen(w *World, hp int) {
	w.Run.Player.HP = hp
	w.Run.Player.MaxHP = hp
}

func pt(x, y int) grid.Point {
	return grid.Point{X: x, Y: y}
}

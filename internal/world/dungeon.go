package world

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/logger"
	"github.com/samdwyer/shardcrawler/internal/rng"
	"github.com/samdwyer/shardcrawler/internal/telemetry"
)

const (
	// Shard quota parameters
	BaseShardTarget        = 3
	ShardIncrementPerRoom  = 2
	ShardIncrementPerDepth = 2
	extraShardCandidates   = 2

	// Carving parameters
	carveStepsPerCell = 4
	carveOpenChance   = 0.05
	roomShrinkRange   = 6

	// Placement parameters
	hazardSpawnClearance = 4 // Hazards never start closer than this to spawn
	itemSpawnClearance   = 2 // Items start farther than this from spawn
	shardSpawnClearance  = 1 // Shards start farther than this from spawn
	maxHazardsPerRoom    = 6
	sentinelChance       = 0.4
	turretChance         = 0.3
	blinkChance          = 0.2
	minTurretFireRate    = 3
	baseTurretFireRate   = 6
)

var (
	// BaseRoomSize is the largest room a roll can produce.
	BaseRoomSize = grid.Size{Width: 24, Height: 16}
	// MinRoomSize clamps the room-size roll.
	MinRoomSize = grid.Size{Width: 14, Height: 10}
)

// Generation is everything produced from one seed before play begins.
type Generation struct {
	SeedString string
	Seed       uint32
	Difficulty gamedata.Difficulty
	Layouts    []DepthLayout
	IDs        *entity.IDGen // Continues numbering for runtime spawns
}

// builder is the generation context threaded through every room of a run.
type builder struct {
	rng    *rng.RNG
	tuning gamedata.Tuning
	ids    *entity.IDGen
	depth  int
}

// GenerateRun builds all depths of a run from the seed string. The result is
// a pure function of (seedString, difficulty).
func GenerateRun(ctx context.Context, seedString string, difficulty gamedata.Difficulty) (*Generation, error) {
	tuning, err := gamedata.TuningFor(difficulty)
	if err != nil {
		return nil, fmt.Errorf("generate run: %w", err)
	}

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "run.generate")
	defer span.End()

	startTime := time.Now()
	r := rng.FromSeed(seedString)
	ids := entity.NewIDGen()
	layouts := GenerateLayouts(ctx, r, tuning, ids)

	span.SetAttributes(
		attribute.String("run.seed", r.SeedString()),
		attribute.Int64("run.numeric_seed", int64(r.Seed())),
		attribute.String("run.difficulty", string(difficulty)),
		attribute.Int("run.depths", len(layouts)),
		attribute.Int("run.entities", ids.Last()),
		attribute.Int64("run.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.For("world").WithFields(logrus.Fields{
		"seed":       r.SeedString(),
		"difficulty": difficulty,
		"entities":   ids.Last(),
	}).Debug("run generated")

	return &Generation{
		SeedString: r.SeedString(),
		Seed:       r.Seed(),
		Difficulty: difficulty,
		Layouts:    layouts,
		IDs:        ids,
	}, nil
}

// GenerateLayouts builds MaxDepth depth layouts from a single RNG thread.
func GenerateLayouts(ctx context.Context, r *rng.RNG, tuning gamedata.Tuning, ids *entity.IDGen) []DepthLayout {
	layouts := make([]DepthLayout, 0, MaxDepth)
	for depth := 0; depth < MaxDepth; depth++ {
		layouts = append(layouts, BuildDepthLayout(ctx, r, depth, tuning, ids))
	}
	return layouts
}

// BuildDepthLayout builds the rooms of one depth. The locked door is never in
// room 0 and the key always lies in an earlier room than the lock.
func BuildDepthLayout(ctx context.Context, r *rng.RNG, depth int, tuning gamedata.Tuning, ids *entity.IDGen) DepthLayout {
	_, span := telemetry.Tracer("world").Start(ctx, "depth.generate")
	defer span.End()

	b := &builder{rng: r, tuning: tuning, ids: ids, depth: depth}

	lockedIndex := r.MustNextInt(RoomsPerDepth-1) + 1
	keyIndex := r.MustNextInt(lockedIndex)

	rooms := make([]Room, 0, RoomsPerDepth)
	for i := 0; i < RoomsPerDepth; i++ {
		rooms = append(rooms, b.buildRoom(i, i == lockedIndex, i == keyIndex))
	}

	span.SetAttributes(
		attribute.Int("depth.index", depth),
		attribute.Int("depth.locked_room", lockedIndex),
		attribute.Int("depth.key_room", keyIndex),
	)

	return DepthLayout{
		Rooms:               rooms,
		LockedDoorRoomIndex: lockedIndex,
		KeyRoomIndex:        keyIndex,
	}
}

// ShardTargetFor returns the shard quota for a room, never less than 1.
func ShardTargetFor(depth, roomIndex int, tuning gamedata.Tuning) int {
	target := BaseShardTarget +
		depth*ShardIncrementPerDepth +
		roomIndex*ShardIncrementPerRoom +
		tuning.ShardDelta
	return max(1, target)
}

// buildRoom carves one room and places its entities.
func (b *builder) buildRoom(roomIndex int, lockedDoor, placeKey bool) Room {
	tileMap := b.carveTileMap()

	floors := tileMap.FloorCells()
	spawn := tileMap.Bounds().Center()
	spawnIndex := b.rng.MustNextInt(max(len(floors), 1))
	if len(floors) > 0 {
		spawn = floors[spawnIndex]
	}

	target := pickFarthest(spawn, floors)
	path := grid.FindPath(spawn, target, tileMap.Size, func(p grid.Point) bool {
		return tileMap.At(p).Kind != TileWall
	})

	// Short spawn-to-target paths leave the lock room without a door.
	if lockedDoor && len(path) > 3 {
		tileMap.Set(path[len(path)/2], Tile{Kind: TileLockedDoor, Locked: true})
	}

	shardTarget := ShardTargetFor(b.depth, roomIndex, b.tuning)
	shards := b.placeShards(tileMap, spawn, shardTarget)
	portal := entity.NewPortal(b.ids.Next(), target)
	hazards := b.placeHazards(tileMap, spawn, shardTarget)
	items := b.placeItems(tileMap, spawn, placeKey)

	return Room{
		TileMap:     tileMap,
		Spawn:       spawn,
		Shards:      shards,
		Hazards:     hazards,
		Items:       items,
		Portal:      portal,
		ShardTarget: shardTarget,
		Seen:        make([]bool, tileMap.Size.Area()),
	}
}

// carveTileMap rolls a room size and carves it with a biased random walk from
// the center, then walls off anything the walk left disconnected.
func (b *builder) carveTileMap() *TileMap {
	width := max(MinRoomSize.Width, BaseRoomSize.Width-b.rng.MustNextInt(roomShrinkRange))
	height := max(MinRoomSize.Height, BaseRoomSize.Height-b.rng.MustNextInt(roomShrinkRange))
	tileMap := NewTileMap(grid.Size{Width: width, Height: height})

	start := tileMap.Bounds().Center()
	walker := start
	steps := width * height * carveStepsPerCell
	for step := 0; step < steps; step++ {
		b.carve(tileMap, walker)
		next := walker.Add(rng.MustPick(b.rng, grid.Directions))
		if grid.InBounds(next, tileMap.Size) {
			walker = next
		}
	}

	ensureConnectivity(tileMap, start)
	return tileMap
}

// carve marks p as floor and occasionally opens its wall neighbours.
func (b *builder) carve(m *TileMap, p grid.Point) {
	m.Set(p, Tile{Kind: TileFloor})
	for _, d := range grid.Directions {
		n := p.Add(d)
		if !grid.InBounds(n, m.Size) {
			continue
		}
		if m.At(n).Kind == TileWall && b.rng.Next() < carveOpenChance {
			m.Set(n, Tile{Kind: TileFloor})
		}
	}
}

// ensureConnectivity turns every tile not reachable from start into wall.
func ensureConnectivity(m *TileMap, start grid.Point) {
	reachable := grid.FloodFill(start, m.Size, func(p grid.Point) bool {
		return m.At(p).Kind != TileWall
	})
	for i := range m.Tiles {
		if !reachable.Has(m.Size.PointAt(i)) {
			m.Tiles[i] = Tile{Kind: TileWall}
		}
	}
}

// pickFarthest returns the first candidate with the greatest Manhattan
// distance from start, or start when there are no candidates.
func pickFarthest(start grid.Point, candidates []grid.Point) grid.Point {
	best := start
	bestDist := -1
	for _, c := range candidates {
		if d := grid.Manhattan(start, c); d > bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// placeShards puts up to quota+2 shards on floor cells away from spawn, in
// scan order.
func (b *builder) placeShards(m *TileMap, spawn grid.Point, quota int) []entity.Shard {
	limit := quota + extraShardCandidates
	shards := make([]entity.Shard, 0, limit)
	for _, p := range m.FloorCells() {
		if len(shards) >= limit {
			break
		}
		if grid.Manhattan(p, spawn) <= shardSpawnClearance {
			continue
		}
		shards = append(shards, entity.NewShard(b.ids.Next(), p))
	}
	return shards
}

// placeHazards scatters hazards over shuffled floor cells away from spawn.
func (b *builder) placeHazards(m *TileMap, spawn grid.Point, quota int) []entity.Hazard {
	floors := m.FloorCells()
	rng.Shuffle(b.rng, floors)
	budget := min(maxHazardsPerRoom, 2+b.depth+quota/3)

	hazards := make([]entity.Hazard, 0, budget)
	for _, p := range floors {
		if grid.Manhattan(p, spawn) < hazardSpawnClearance {
			continue
		}
		if len(hazards) >= budget {
			break
		}
		roll := b.rng.Next()
		switch {
		case roll < sentinelChance:
			hazards = append(hazards, entity.NewSentinel(b.ids.Next(), p, b.tuning.SentinelDelay))
		case roll < sentinelChance+turretChance+b.tuning.ExtraTurretChance:
			facing := rng.MustPick(b.rng, grid.Directions)
			fireRate := max(minTurretFireRate, baseTurretFireRate-b.depth)
			hazards = append(hazards, entity.NewTurret(b.ids.Next(), p, facing, fireRate))
		default:
			hazards = append(hazards, entity.NewSpike(b.ids.Next(), p, b.tuning.SpikeCycle))
		}
	}
	return hazards
}

// placeItems drops the key (in the key room), then maybe a patch, then maybe
// a blink charge, each on its own shuffled floor cell away from spawn.
func (b *builder) placeItems(m *TileMap, spawn grid.Point, keyRequired bool) []entity.Item {
	var floors []grid.Point
	for _, p := range m.FloorCells() {
		if grid.Manhattan(p, spawn) > itemSpawnClearance {
			floors = append(floors, p)
		}
	}
	rng.Shuffle(b.rng, floors)

	var items []entity.Item
	take := func(kind entity.ItemKind) {
		items = append(items, entity.NewItem(b.ids.Next(), floors[0], kind))
		floors = floors[1:]
	}

	if keyRequired && len(floors) > 0 {
		take(entity.ItemKey)
	}
	if len(floors) > 0 && b.rng.Next() < b.tuning.PatchChance {
		take(entity.ItemPatch)
	}
	if len(floors) > 0 && b.rng.Next() < blinkChance {
		take(entity.ItemBlink)
	}
	return items
}

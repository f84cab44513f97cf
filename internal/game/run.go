package game

import (
	"math"
	"time"

	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/storage"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// VisionRadius is the Manhattan radius of the player's field of view.
const VisionRadius = 7

// Stats are the run statistics shown on the summary screen and persisted as
// the best run.
type Stats struct {
	SeedString      string
	NumericSeed     uint32
	DepthReached    int // 1-based, never above world.MaxDepth
	ShardsCollected int
	TurnsTaken      int
	Elapsed         time.Duration
	Victory         bool
}

// Record converts stats into their stored form.
func (s Stats) Record() storage.RunRecord {
	return storage.RunRecord{
		SeedString:      s.SeedString,
		NumericSeed:     s.NumericSeed,
		DepthReached:    s.DepthReached,
		ShardsCollected: s.ShardsCollected,
		TurnsTaken:      s.TurnsTaken,
		TimeMs:          s.Elapsed.Milliseconds(),
		Victory:         s.Victory,
	}
}

// StatsFromRecord converts a stored run back into stats.
func StatsFromRecord(r storage.RunRecord) Stats {
	return Stats{
		SeedString:      r.SeedString,
		NumericSeed:     r.NumericSeed,
		DepthReached:    r.DepthReached,
		ShardsCollected: r.ShardsCollected,
		TurnsTaken:      r.TurnsTaken,
		Elapsed:         time.Duration(r.TimeMs) * time.Millisecond,
		Victory:         r.Victory,
	}
}

// IsBetterRun reports whether next should replace current as the best run.
// Victory outranks depth, which outranks shards collected.
func IsBetterRun(next, current Stats) bool {
	if next.Victory != current.Victory {
		return next.Victory
	}
	if next.DepthReached != current.DepthReached {
		return next.DepthReached > current.DepthReached
	}
	return next.ShardsCollected > current.ShardsCollected
}

// Run is the mutable state of a run in progress.
type Run struct {
	Depth       int
	RoomIndex   int
	Layouts     []world.DepthLayout
	Player      *entity.Player
	Projectiles []entity.Projectile
	Fog         []bool // Cells visible this turn
	Stats       Stats
	IDs         *entity.IDGen
	Mode        Mode
	Difficulty  gamedata.Difficulty
	SeedString  string
	NumericSeed uint32
}

// World is everything the turn engine reads and mutates.
type World struct {
	Run         *Run
	Phase       Phase
	Message     string // Latest advisory line
	ShakeTimer  int    // Frames of screen shake left
	ScreenShake float64
	Sound       Sound

	pending string // Message set during the current resolution
}

// NewWorld starts a run in the first room of a generated run. The run takes
// ownership of the generation's layouts and id counter.
func NewWorld(gen *world.Generation, mode Mode) *World {
	first := &gen.Layouts[0].Rooms[0]
	run := &Run{
		Layouts:     gen.Layouts,
		Player:      entity.NewPlayer(gen.IDs.Next(), first.Spawn),
		IDs:         gen.IDs,
		Mode:        mode,
		Difficulty:  gen.Difficulty,
		SeedString:  gen.SeedString,
		NumericSeed: gen.Seed,
		Stats: Stats{
			SeedString:   gen.SeedString,
			NumericSeed:  gen.Seed,
			DepthReached: 1,
		},
	}

	w := &World{
		Run:   run,
		Phase: PhaseExploring,
		Sound: NopSound{},
	}
	first.Collected = 0
	w.resetFog()
	w.RefreshVisibility()
	return w
}

// Room returns the room the player is in.
func (w *World) Room() *world.Room {
	return &w.Run.Layouts[w.Run.Depth].Rooms[w.Run.RoomIndex]
}

// RefreshVisibility recomputes the fog from the player position and folds
// it into the room's seen mask.
func (w *World) RefreshVisibility() {
	room := w.Room()
	tm := room.TileMap
	w.Run.Fog = grid.ComputeVisibility(w.Run.Player.Pos, VisionRadius, tm.Size, func(p grid.Point) bool {
		return tm.At(p).IsTransparent()
	})
	for i, visible := range w.Run.Fog {
		if visible {
			room.Seen[i] = true
		}
	}
}

// EnterNextRoom moves the run past the current room. Leaving the last room
// of the last depth completes the run.
func (w *World) EnterNextRoom() {
	r := w.Run
	r.RoomIndex++
	if r.RoomIndex >= world.RoomsPerDepth {
		if r.Depth+1 >= world.MaxDepth {
			// The run ends in its final room so Room() stays valid.
			r.RoomIndex = world.RoomsPerDepth - 1
			r.Stats.DepthReached = world.MaxDepth
			w.finish(true)
			return
		}
		r.RoomIndex = 0
		r.Depth++
		r.Stats.DepthReached = max(r.Stats.DepthReached, r.Depth+1)
	}

	room := w.Room()
	room.Collected = 0
	r.Projectiles = nil
	r.Player.Pos = room.Spawn
	r.Player.Facing = entity.DefaultFacing
	w.Phase = PhaseExploring
	w.resetFog()
	w.RefreshVisibility()
}

// Step applies one accepted player intent. In turn mode a turn that was
// taken and did not end the room is followed by one hazard tick.
func (w *World) Step(action Action) Outcome {
	if w.Phase.Over() {
		return Outcome{}
	}

	out := ResolvePlayerAction(w, action)
	if !out.TookTurn {
		return out
	}
	w.RefreshVisibility()
	if out.Died {
		w.finish(false)
		return out
	}
	if out.EnteredPortal {
		w.EnterNextRoom()
		return out
	}

	if w.Run.Mode == ModeTurn {
		hz := AdvanceHazardsAndProjectiles(w)
		if hz.Message != "" {
			out.Message = hz.Message
		}
		if hz.Died {
			out.Died = true
			w.finish(false)
			return out
		}
		w.RefreshVisibility()
	}
	return out
}

// Tick advances hazards once, as the real-time clock does.
func (w *World) Tick() Outcome {
	if w.Phase.Over() {
		return Outcome{}
	}

	out := AdvanceHazardsAndProjectiles(w)
	if out.Died {
		w.finish(false)
	}
	w.RefreshVisibility()
	return out
}

// AddElapsed accumulates play time while the run is live.
func (w *World) AddElapsed(d time.Duration) {
	if !w.Phase.Over() {
		w.Run.Stats.Elapsed += d
	}
}

// SetMode switches hazard scheduling for the rest of the run.
func (w *World) SetMode(mode Mode) {
	w.Run.Mode = mode
}

func (w *World) finish(victory bool) {
	r := w.Run
	r.Stats.DepthReached = max(r.Stats.DepthReached, min(r.Depth+1, world.MaxDepth))
	r.Stats.Victory = victory
	if victory {
		w.Phase = PhaseRunComplete
	} else {
		w.Phase = PhaseDefeat
	}
}

func (w *World) resetFog() {
	w.Run.Fog = make([]bool, w.Room().TileMap.Size.Area())
}

func (w *World) setMessage(msg string) {
	w.Message = msg
	w.pending = msg
}

func (w *World) play(tone Tone) {
	if w.Sound != nil {
		w.Sound.Play(tone)
	}
}

// applyDamage hurts the player and reports whether the hit was lethal.
func (w *World) applyDamage(amount int) bool {
	w.play(ToneDamage)
	if w.ScreenShake > 0 {
		w.ShakeTimer = max(w.ShakeTimer, int(math.Ceil(8*w.ScreenShake)))
	}
	if w.Run.Player.TakeDamage(amount) {
		return true
	}
	w.setMessage(msgOuch())
	return false
}

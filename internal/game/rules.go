package game

import (
	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// ShardScore is added to the player's score per shard.
const ShardScore = 10

// Outcome reports what an action or hazard tick did.
type Outcome struct {
	TookTurn      bool
	Died          bool
	EnteredPortal bool
	Message       string // Advisory line, empty if nothing to report
}

// ResolvePlayerAction applies one player intent to the current room. Moves
// into walls, the map edge or a locked door without a key do not take a
// turn. Pause, restart and none never take a turn.
func ResolvePlayerAction(w *World, action Action) Outcome {
	var out Outcome
	w.pending = ""

	if delta, ok := action.Delta(); ok {
		out = attemptMove(w, delta)
	} else if action == ActionInteract {
		out = interact(w)
	}

	if out.TookTurn {
		w.Run.Stats.TurnsTaken++
	}
	out.Message = w.pending
	return out
}

func attemptMove(w *World, delta grid.Point) Outcome {
	if delta.IsZero() {
		return Outcome{TookTurn: true}
	}

	player := w.Run.Player
	tm := w.Room().TileMap
	next := player.Pos.Add(delta)
	if !grid.InBounds(next, tm.Size) {
		return Outcome{}
	}

	switch tm.At(next).Kind {
	case world.TileWall:
		return Outcome{}
	case world.TileLockedDoor:
		if player.Keys == 0 {
			w.setMessage(msgDoorLocked())
			return Outcome{}
		}
		tm.Unlock(next)
		player.Keys--
		w.setMessage(msgDoorUnlocked())
		w.play(TonePortal)
	}

	if !tm.IsPassable(next) {
		w.setMessage(msgBlocked())
		return Outcome{}
	}

	player.Move(delta)
	out := resolveTile(w, next)
	out.TookTurn = true
	return out
}

// resolveTile applies the effects of the player arriving on p: shard pickup,
// item pickup, hazard contact, portal entry, then the quota check. Hazard
// contact ends resolution early.
func resolveTile(w *World, p grid.Point) Outcome {
	room := w.Room()
	player := w.Run.Player

	if shard := room.ShardAt(p); shard != nil {
		shard.Alive = false
		room.Collected++
		player.Shards++
		player.Score += ShardScore
		w.Run.Stats.ShardsCollected++
		w.play(ToneShard)
	}

	if item := room.ItemAt(p); item != nil {
		collectItem(w, item)
	}

	if room.HazardAt(p) != nil {
		return Outcome{Died: w.applyDamage(1)}
	}

	var out Outcome
	if room.PortalActiveAt(p) {
		out.EnteredPortal = true
	}
	checkPortal(w)
	return out
}

func collectItem(w *World, item *entity.Item) {
	item.Alive = false
	player := w.Run.Player
	switch item.Kind {
	case entity.ItemKey:
		player.Keys++
		w.setMessage(msgKey())
	case entity.ItemPatch:
		player.Patch()
		w.setMessage(msgPatch())
	case entity.ItemBlink:
		player.BlinkCharges++
		w.setMessage(msgBlinkReady())
	}
	w.play(ToneStart)
}

// checkPortal opens the room's portal once the quota is met.
func checkPortal(w *World) {
	room := w.Room()
	if room.Portal == nil || room.Portal.Active {
		return
	}
	if room.QuotaMet() {
		room.Portal.Active = true
		w.Phase = PhasePortalActive
		w.setMessage(msgPortalOpen())
		w.play(TonePortal)
	}
}

// interact enters an active portal under the player, or else spends a blink
// charge to jump two cells along the facing.
func interact(w *World) Outcome {
	player := w.Run.Player
	room := w.Room()

	if room.PortalActiveAt(player.Pos) {
		return Outcome{TookTurn: true, EnteredPortal: true}
	}

	if player.BlinkCharges > 0 {
		target := player.Pos.Add(player.Facing.Scale(2))
		if room.TileMap.IsPassable(target) {
			player.Pos = target
			player.BlinkCharges--
			w.setMessage(msgBlink())
			w.play(TonePortal)
			out := resolveTile(w, target)
			out.TookTurn = true
			return out
		}
		w.setMessage(msgBlocked())
		return Outcome{}
	}

	w.setMessage(msgNothing())
	return Outcome{}
}

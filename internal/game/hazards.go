package game

import (
	"github.com/samdwyer/shardcrawler/internal/entity"
	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/logger"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// MaxProjectiles caps live projectiles per run. Shots fired beyond the cap
// are dropped.
const MaxProjectiles = 32

// AdvanceHazardsAndProjectiles runs one hazard tick on the current room:
// every live hazard in order, then every projectile. A lethal hit ends the
// tick.
func AdvanceHazardsAndProjectiles(w *World) (out Outcome) {
	out = Outcome{TookTurn: true}
	w.pending = ""
	defer func() { out.Message = w.pending }()
	room := w.Room()
	player := w.Run.Player

	for i := range room.Hazards {
		h := &room.Hazards[i]
		if !h.Alive {
			continue
		}

		switch h.Kind {
		case entity.HazardSentinel:
			moveSentinel(h, player.Pos, room.TileMap)
			if h.Pos == player.Pos && w.applyDamage(1) {
				out.Died = true
				return out
			}
		case entity.HazardTurret:
			h.Counter++
			if h.Counter >= h.FireRate {
				h.Counter = 0
				w.spawnProjectile(h.Pos, h.Facing)
			}
		case entity.HazardSpike:
			tickSpike(h)
			if h.Active && h.Pos == player.Pos && w.applyDamage(1) {
				out.Died = true
				return out
			}
		}
	}

	out.Died = advanceProjectiles(w)
	return out
}

// moveSentinel steps a rested sentinel one cell along the shortest path to
// target, then starts its cooldown.
func moveSentinel(h *entity.Hazard, target grid.Point, tm *world.TileMap) {
	if h.Cooldown > 0 {
		h.Cooldown--
		return
	}
	path := grid.FindPath(h.Pos, target, tm.Size, func(p grid.Point) bool {
		return !tm.At(p).BlocksTraversal()
	})
	if len(path) > 1 {
		h.Pos = path[1]
	}
	h.Cooldown = h.Delay
}

// tickSpike advances the spike timer. The spike is armed for the second half
// of each cycle.
func tickSpike(h *entity.Hazard) {
	if h.CycleLength <= 0 {
		return
	}
	h.Timer = (h.Timer + 1) % h.CycleLength
	h.Active = h.Timer >= h.CycleLength/2
}

func (w *World) spawnProjectile(pos, dir grid.Point) {
	if len(w.Run.Projectiles) >= MaxProjectiles {
		logger.For("game").WithField("cap", MaxProjectiles).Debug("projectile dropped")
		return
	}
	w.Run.Projectiles = append(w.Run.Projectiles, entity.NewProjectile(w.Run.IDs.Next(), pos, dir))
}

// advanceProjectiles moves every projectile one cell, expiring those that
// leave the map or hit blocking terrain, and reports whether a hit killed the
// player. Dead projectiles are removed either way.
func advanceProjectiles(w *World) bool {
	tm := w.Room().TileMap
	player := w.Run.Player
	died := false

	for i := range w.Run.Projectiles {
		p := &w.Run.Projectiles[i]
		if !p.Alive {
			continue
		}
		p.Pos = p.Pos.Add(p.Dir)
		if !grid.InBounds(p.Pos, tm.Size) || tm.At(p.Pos).BlocksTraversal() {
			p.Alive = false
			continue
		}
		if p.Pos == player.Pos {
			p.Alive = false
			if w.applyDamage(1) {
				died = true
				break
			}
		}
	}

	live := w.Run.Projectiles[:0]
	for _, p := range w.Run.Projectiles {
		if p.Alive {
			live = append(live, p)
		}
	}
	w.Run.Projectiles = live
	return died
}

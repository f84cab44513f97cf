package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/samdwyer/shardcrawler/internal/grid"
	"github.com/samdwyer/shardcrawler/internal/ui"
	"github.com/samdwyer/shardcrawler/internal/world"
)

// HUDLines returns the status lines shown under the map.
func HUDLines(w *World) []string {
	r := w.Run
	room := w.Room()
	p := r.Player

	portal := "sealed"
	if room.Portal != nil && room.Portal.Active {
		portal = "open"
	}

	return []string{
		fmt.Sprintf("Depth %d/%d  Room %d/%d  HP %d/%d  Shards %d/%d (%d left)  Portal %s",
			r.Depth+1, world.MaxDepth, r.RoomIndex+1, world.RoomsPerDepth,
			p.HP, p.MaxHP, room.Collected, room.ShardTarget, room.AliveShards(), portal),
		fmt.Sprintf("Keys %d  Blink %d  Score %d  Turns %d  Time %s",
			p.Keys, p.BlinkCharges, p.Score, r.Stats.TurnsTaken, formatElapsed(r.Stats.Elapsed)),
		fmt.Sprintf("Seed %s (#%d)  %s  %s mode", r.SeedString, r.NumericSeed, r.Difficulty, r.Mode),
	}
}

// OverlayLines returns the centered panel for non-play screens.
func OverlayLines(screen Screen, w *World, best *Stats, cfg Config) []string {
	switch screen {
	case ScreenTitle:
		seed := cfg.Seed
		if seed == "" {
			seed = "random"
		}
		lines := []string{
			"SHARDCRAWLER",
			"",
			fmt.Sprintf("Seed: %s", seed),
			fmt.Sprintf("Difficulty: %s  Mode: %s", cfg.Difficulty, cfg.Mode),
			"",
			"Collect shards to open each portal.",
			"Arrows/WASD move  Q wait  Space interact",
			"P pause  R restart  M mode  C colors  Esc quit",
			"",
			"Press Space to start",
		}
		if best != nil {
			lines = append(lines, "", bestLine(*best))
		}
		return lines
	case ScreenPause:
		return []string{"PAUSED", "", "P resume  R restart  M mode  C colors  Esc quit"}
	case ScreenSummary:
		s := w.Run.Stats
		title := "DEFEAT"
		if s.Victory {
			title = "VICTORY"
		}
		lines := []string{
			title,
			"",
			fmt.Sprintf("Seed %s (#%d)", s.SeedString, s.NumericSeed),
			fmt.Sprintf("Depth reached %d/%d", s.DepthReached, world.MaxDepth),
			fmt.Sprintf("Shards %d  Turns %d  Time %s", s.ShardsCollected, s.TurnsTaken, formatElapsed(s.Elapsed)),
		}
		if best != nil {
			lines = append(lines, bestLine(*best))
		}
		return append(lines, "", "R restart  Space title  Esc quit")
	default:
		return nil
	}
}

func bestLine(s Stats) string {
	result := "fell"
	if s.Victory {
		result = "escaped"
	}
	return fmt.Sprintf("Best: %s at depth %d with %d shards (seed %s)", result, s.DepthReached, s.ShardsCollected, s.SeedString)
}

func formatElapsed(d time.Duration) string {
	return d.Truncate(100 * time.Millisecond).String()
}

// shakeOffset consumes one frame of screen shake and returns the
// displacement to draw with.
func shakeOffset(w *World) grid.Point {
	if w.ShakeTimer <= 0 || w.ScreenShake <= 0 {
		return grid.Point{}
	}
	w.ShakeTimer--
	return grid.Point{X: rand.Intn(3) - 1, Y: rand.Intn(3) - 1}
}

// BuildFrame assembles the renderer input for the current state.
func BuildFrame(screen Screen, w *World, best *Stats, cfg Config) ui.Frame {
	if w == nil || screen == ScreenTitle {
		return ui.Frame{Overlay: OverlayLines(ScreenTitle, w, best, cfg)}
	}
	return ui.Frame{
		Room:        w.Room(),
		Fog:         w.Run.Fog,
		Player:      w.Run.Player,
		Projectiles: w.Run.Projectiles,
		HUD:         HUDLines(w),
		Message:     w.Message,
		Overlay:     OverlayLines(screen, w, best, cfg),
		Offset:      shakeOffset(w),
	}
}

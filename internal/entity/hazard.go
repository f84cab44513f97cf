package entity

import "github.com/samdwyer/shardcrawler/internal/grid"

// HazardKind discriminates the Hazard variants.
type HazardKind int

const (
	// HazardSentinel chases the player along shortest paths.
	HazardSentinel HazardKind = iota
	// HazardTurret sits still and fires projectiles along its facing.
	HazardTurret
	// HazardSpike toggles between armed and retracted on a fixed cycle.
	HazardSpike
)

// String returns the hazard kind name.
func (k HazardKind) String() string {
	switch k {
	case HazardSentinel:
		return "sentinel"
	case HazardTurret:
		return "turret"
	case HazardSpike:
		return "spike"
	default:
		return "unknown"
	}
}

// Symbol returns the display symbol for a hazard kind.
func (k HazardKind) Symbol() rune {
	switch k {
	case HazardSentinel:
		return 'S'
	case HazardTurret:
		return 'T'
	case HazardSpike:
		return '^'
	default:
		return '?'
	}
}

// Hazard is a tagged union over the hazard variants. Only the fields that
// belong to Kind are meaningful.
type Hazard struct {
	Base
	Kind HazardKind

	// Sentinel
	Cooldown int // Ticks left before the next move
	Delay    int // Cooldown applied after each move

	// Turret
	Facing   grid.Point // Direction projectiles travel
	FireRate int        // Ticks between shots
	Counter  int        // Ticks since the last shot

	// Spike
	CycleLength int  // Ticks per full armed/retracted cycle
	Timer       int  // Position within the cycle
	Active      bool // True while armed
}

// NewSentinel creates a sentinel ready to move on the first tick.
func NewSentinel(id int, pos grid.Point, delay int) Hazard {
	return Hazard{
		Base:  Base{ID: id, Pos: pos, Alive: true},
		Kind:  HazardSentinel,
		Delay: delay,
	}
}

// NewTurret creates a turret with an empty fire counter.
func NewTurret(id int, pos, facing grid.Point, fireRate int) Hazard {
	return Hazard{
		Base:     Base{ID: id, Pos: pos, Alive: true},
		Kind:     HazardTurret,
		Facing:   facing,
		FireRate: fireRate,
	}
}

// NewSpike creates a retracted spike at the start of its cycle.
func NewSpike(id int, pos grid.Point, cycleLength int) Hazard {
	return Hazard{
		Base:        Base{ID: id, Pos: pos, Alive: true},
		Kind:        HazardSpike,
		CycleLength: cycleLength,
	}
}

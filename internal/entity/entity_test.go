package entity

import (
	"testing"

	"github.com/samdwyer/shardcrawler/internal/grid"
)

func TestIDGenStrictlyIncreasing(t *testing.T) {
	ids := NewIDGen()
	if ids.Last() != 0 {
		t.Errorf("Last() before any Next = %d, want 0", ids.Last())
	}
	prev := 0
	for i := 0; i < 100; i++ {
		id := ids.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
	if ids.Last() != prev {
		t.Errorf("Last() = %d, want %d", ids.Last(), prev)
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got      string
		expected string
	}{
		{HazardSentinel.String(), "sentinel"},
		{HazardTurret.String(), "turret"},
		{HazardSpike.String(), "spike"},
		{HazardKind(99).String(), "unknown"},
		{ItemKey.String(), "key"},
		{ItemPatch.String(), "patch"},
		{ItemBlink.String(), "blink"},
		{ItemKind(99).String(), "unknown"},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("got %q, want %q", tt.got, tt.expected)
		}
	}
}

func TestHazardConstructors(t *testing.T) {
	pos := grid.Point{X: 3, Y: 4}

	s := NewSentinel(1, pos, 2)
	if s.Kind != HazardSentinel || s.Delay != 2 || s.Cooldown != 0 || !s.Alive {
		t.Errorf("unexpected sentinel: %+v", s)
	}

	tr := NewTurret(2, pos, grid.Point{X: -1}, 4)
	if tr.Kind != HazardTurret || tr.FireRate != 4 || tr.Facing != (grid.Point{X: -1}) {
		t.Errorf("unexpected turret: %+v", tr)
	}

	sp := NewSpike(3, pos, 5)
	if sp.Kind != HazardSpike || sp.CycleLength != 5 || sp.Active {
		t.Errorf("unexpected spike: %+v", sp)
	}
}

func TestBaseAt(t *testing.T) {
	shard := NewShard(1, grid.Point{X: 2, Y: 2})
	if !shard.At(grid.Point{X: 2, Y: 2}) {
		t.Error("live shard should be at its position")
	}
	shard.Alive = false
	if shard.At(grid.Point{X: 2, Y: 2}) {
		t.Error("dead shard should not match")
	}
}

func TestPlayerDamageAndPatch(t *testing.T) {
	p := NewPlayer(1, grid.Point{})
	if p.HP != 1 || p.MaxHP != 1 || p.Facing != DefaultFacing {
		t.Fatalf("unexpected new player: %+v", p)
	}

	for i := 0; i < 5; i++ {
		p.Patch()
	}
	if p.MaxHP != MaxPlayerHP || p.HP != MaxPlayerHP {
		t.Errorf("after patches HP=%d MaxHP=%d, want %d/%d", p.HP, p.MaxHP, MaxPlayerHP, MaxPlayerHP)
	}

	if p.TakeDamage(1) {
		t.Error("player with 3 HP should survive 1 damage")
	}
	if !p.TakeDamage(5) {
		t.Error("player should die from overkill")
	}
	if p.HP != 0 || p.Alive {
		t.Errorf("dead player HP=%d Alive=%v", p.HP, p.Alive)
	}
}

func TestPlayerMove(t *testing.T) {
	p := NewPlayer(1, grid.Point{X: 5, Y: 5})
	p.Move(grid.Point{X: -1})
	if p.Pos != (grid.Point{X: 4, Y: 5}) {
		t.Errorf("Pos = %v, want (4,5)", p.Pos)
	}
	if p.Facing != (grid.Point{X: -1}) {
		t.Errorf("Facing = %v, want (-1,0)", p.Facing)
	}
}

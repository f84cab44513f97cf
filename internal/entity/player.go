package entity

import "github.com/samdwyer/shardcrawler/internal/grid"

// MaxPlayerHP caps the maximum health that patches can raise.
const MaxPlayerHP = 3

// DefaultFacing is the facing a player takes on entering a room.
var DefaultFacing = grid.Point{X: 0, Y: 1}

// Player is the explorer controlled by the input collaborator.
type Player struct {
	Base
	HP, MaxHP    int
	Shards       int        // Shards collected over the whole run
	Keys         int        // Unspent keys
	BlinkCharges int        // Unspent blink charges
	Score        int        // Running score
	Facing       grid.Point // Last movement delta, used to aim blinks
	Symbol       rune       // Display symbol
}

// NewPlayer creates a fresh player at the given position.
func NewPlayer(id int, pos grid.Point) *Player {
	return &Player{
		Base:   Base{ID: id, Pos: pos, Alive: true},
		HP:     1,
		MaxHP:  1,
		Facing: DefaultFacing,
		Symbol: '@',
	}
}

// Move updates the player position by the given delta and faces that way.
func (p *Player) Move(delta grid.Point) {
	p.Pos = p.Pos.Add(delta)
	p.Facing = delta
}

// TakeDamage removes hp and reports whether the player died.
func (p *Player) TakeDamage(amount int) bool {
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
		return true
	}
	return false
}

// Patch raises max health up to MaxPlayerHP and heals one point.
func (p *Player) Patch() {
	if p.MaxHP < MaxPlayerHP {
		p.MaxHP++
	}
	p.HP = min(p.MaxHP, p.HP+1)
}

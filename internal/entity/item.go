package entity

import "github.com/samdwyer/shardcrawler/internal/grid"

// ItemKind represents a type of pickup.
type ItemKind int

const (
	// ItemKey unlocks the depth's locked door.
	ItemKey ItemKind = iota
	// ItemPatch restores and raises health.
	ItemPatch
	// ItemBlink grants one short-range teleport charge.
	ItemBlink
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemKey:
		return "key"
	case ItemPatch:
		return "patch"
	case ItemBlink:
		return "blink"
	default:
		return "unknown"
	}
}

// Symbol returns the display symbol for an item kind.
func (k ItemKind) Symbol() rune {
	switch k {
	case ItemKey:
		return 'k'
	case ItemPatch:
		return 'p'
	case ItemBlink:
		return 'b'
	default:
		return '?'
	}
}

// Item is a pickup lying on the floor.
type Item struct {
	Base
	Kind ItemKind
}

// NewItem creates an item of the given kind.
func NewItem(id int, pos grid.Point, kind ItemKind) Item {
	return Item{Base: Base{ID: id, Pos: pos, Alive: true}, Kind: kind}
}

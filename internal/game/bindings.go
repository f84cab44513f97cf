package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Bindings maps terminal keys to actions.
type Bindings struct {
	keys  map[tcell.Key]Action
	runes map[rune]Action
}

// DefaultBindings returns arrows for movement, Q to wait, Space to interact,
// P to pause and R to restart, with WASD as movement fallbacks.
func DefaultBindings() Bindings {
	return Bindings{
		keys: map[tcell.Key]Action{
			tcell.KeyUp:    ActionMoveUp,
			tcell.KeyDown:  ActionMoveDown,
			tcell.KeyLeft:  ActionMoveLeft,
			tcell.KeyRight: ActionMoveRight,
			tcell.KeyEnter: ActionInteract,
		},
		runes: map[rune]Action{
			'q': ActionWait,
			' ': ActionInteract,
			'p': ActionPause,
			'r': ActionRestart,
			'w': ActionMoveUp,
			's': ActionMoveDown,
			'a': ActionMoveLeft,
			'd': ActionMoveRight,
		},
	}
}

// BindRune maps a character key to an action, replacing any earlier
// binding for that character. Letters match either case.
func (b Bindings) BindRune(r rune, a Action) {
	b.runes[unicode.ToLower(r)] = a
}

// Resolve returns the action bound to a key event, or ActionNone.
func (b Bindings) Resolve(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		if a, ok := b.runes[unicode.ToLower(ev.Rune())]; ok {
			return a
		}
		return ActionNone
	}
	if a, ok := b.keys[ev.Key()]; ok {
		return a
	}
	return ActionNone
}

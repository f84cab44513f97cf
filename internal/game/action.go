package game

import "github.com/samdwyer/shardcrawler/internal/grid"

// Action is one player intent produced by the input collaborator.
type Action int

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionWait
	ActionInteract
	ActionPause
	ActionRestart
)

// String returns the binding name of the action.
func (a Action) String() string {
	switch a {
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionWait:
		return "wait"
	case ActionInteract:
		return "interact"
	case ActionPause:
		return "pause"
	case ActionRestart:
		return "restart"
	default:
		return "none"
	}
}

// Delta returns the movement vector for an action. Wait maps to the zero
// vector; ok is false for actions that are not movement.
func (a Action) Delta() (delta grid.Point, ok bool) {
	switch a {
	case ActionMoveUp:
		return grid.Point{X: 0, Y: -1}, true
	case ActionMoveDown:
		return grid.Point{X: 0, Y: 1}, true
	case ActionMoveLeft:
		return grid.Point{X: -1, Y: 0}, true
	case ActionMoveRight:
		return grid.Point{X: 1, Y: 0}, true
	case ActionWait:
		return grid.Point{}, true
	default:
		return grid.Point{}, false
	}
}

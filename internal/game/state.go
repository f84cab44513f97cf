// Package game provides the turn engine, run state and the interactive
// terminal driver.
package game

// Phase is where the current run stands.
type Phase int

const (
	// PhaseExploring is normal play with the room's portal still closed.
	PhaseExploring Phase = iota
	// PhasePortalActive means the room's quota is met and the portal is open.
	PhasePortalActive
	// PhaseRunComplete is the terminal victory phase.
	PhaseRunComplete
	// PhaseDefeat is the terminal phase entered when health reaches 0.
	PhaseDefeat
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseExploring:
		return "exploring"
	case PhasePortalActive:
		return "portal-active"
	case PhaseRunComplete:
		return "run-complete"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == PhaseRunComplete || p == PhaseDefeat
}

// Screen is the driver's presentation state.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenRun
	ScreenPause
	ScreenSummary
)

// String returns a human-readable screen name.
func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenRun:
		return "run"
	case ScreenPause:
		return "pause"
	case ScreenSummary:
		return "summary"
	default:
		return "unknown"
	}
}

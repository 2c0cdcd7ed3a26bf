// Package game provides the main game loop and session state.
package game

// State represents how the player's position is driven.
type State int

const (
	// StateManual is the default mode where arrow keys move the player one tile.
	StateManual State = iota
	// StateTracking replays position fixes from the tracker; arrow keys are ignored.
	StateTracking
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateManual:
		return "manual"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

package state

// RoundState represents the lifecycle stage of a round.
// Pause is a separate flag and never a state.
type RoundState int

const (
	StateIdle RoundState = iota
	StateIntro
	StateActive
	StateEnded
)

// String returns the string representation of the round state
func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateIntro:
		return "Intro"
	case StateActive:
		return "Active"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// CanAdvanceTo reports whether next is the single forward step from s.
// Ended only leaves through an explicit reset.
func (s RoundState) CanAdvanceTo(next RoundState) bool {
	switch s {
	case StateIdle:
		return next == StateIntro
	case StateIntro:
		return next == StateActive
	case StateActive:
		return next == StateEnded
	default:
		return false
	}
}

// Terminal reports whether the state only leaves through reset
func (s RoundState) Terminal() bool {
	return s == StateEnded
}

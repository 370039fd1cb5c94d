package system

// InputState is the per-tick input snapshot.
// Edge flags (Jump, Fire, Click) are true only on the tick the button went
// down; held flags stay true while pressed.
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Jump       bool
	Fire       bool
	EagleEye   bool
	SlowMotion bool

	PointerX float64
	PointerY float64
	Click    bool
}

// Horizontal returns -1, 0 or 1 from the left/right keys
func (in InputState) Horizontal() int {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	default:
		return 0
	}
}

// Vertical returns -1, 0 or 1 from the up/down keys
func (in InputState) Vertical() int {
	switch {
	case in.Up && !in.Down:
		return -1
	case in.Down && !in.Up:
		return 1
	default:
		return 0
	}
}

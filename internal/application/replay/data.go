package replay

import (
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single tick
type FrameInput struct {
	F  int     `json:"f"`            // Tick number
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	U  bool    `json:"u,omitempty"`  // Up
	D  bool    `json:"d,omitempty"`  // Down
	J  bool    `json:"j,omitempty"`  // Jump
	Fi bool    `json:"fi,omitempty"` // Fire
	E  bool    `json:"e,omitempty"`  // EagleEye
	S  bool    `json:"s,omitempty"`  // SlowMotion
	PX float64 `json:"px"`           // PointerX
	PY float64 `json:"py"`           // PointerY
	C  bool    `json:"c,omitempty"`  // Click
}

// NewFrameInput captures one tick of input
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		J:  in.Jump,
		Fi: in.Fire,
		E:  in.EagleEye,
		S:  in.SlowMotion,
		PX: in.PointerX,
		PY: in.PointerY,
		C:  in.Click,
	}
}

// Input converts the frame back into an input snapshot
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:       fi.L,
		Right:      fi.R,
		Up:         fi.U,
		Down:       fi.D,
		Jump:       fi.J,
		Fire:       fi.Fi,
		EagleEye:   fi.E,
		SlowMotion: fi.S,
		PointerX:   fi.PX,
		PointerY:   fi.PY,
		Click:      fi.C,
	}
}

// ReplayData contains all data needed to replay a round.
// Scenario is the setup the round actually used, remote or local.
type ReplayData struct {
	Version    string           `json:"version"`
	Seed       int64            `json:"seed"`
	Mode       entity.Mode      `json:"mode"`
	Difficulty string           `json:"difficulty"`
	TickRate   int              `json:"tickRate"`
	StartTime  string           `json:"startTime"`
	Scenario   *entity.Scenario `json:"scenario,omitempty"`
	Frames     []FrameInput     `json:"frames"`
}

package fx

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// ParticleData is a short-lived spark or dust puff
type ParticleData struct {
	X, Y    float64
	VX, VY  float64
	Life    int // frames remaining
	MaxLife int
	Kind    entity.CueKind
}

var Particle = donburi.NewComponentType[ParticleData]()

// TrackData is a footprint left by a tracked animal
type TrackData struct {
	X, Y float64
	Life int
}

var Track = donburi.NewComponentType[TrackData]()

// SquashData tweens a character's vertical scale back to 1 after a jump or landing
type SquashData struct {
	Role  entity.Role
	Tween *gween.Tween
	Scale float64
}

var Squash = donburi.NewComponentType[SquashData]()

// FlashData tweens the muzzle flash alpha of a shot
type FlashData struct {
	X, Y  float64
	Tween *gween.Tween
	Alpha float64
}

var Flash = donburi.NewComponentType[FlashData]()

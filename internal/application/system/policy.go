package system

import (
	"math"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// View is the read-only input to a decision
type View struct {
	World   *entity.World
	Self    *entity.Character
	Target  *entity.Character
	Elapsed float64 // seconds since Self's previous decision
}

// Policy maps a view of the world to an opponent action.
// Implementations must draw randomness only from rng.
type Policy interface {
	Decide(v View, profile entity.DifficultyProfile, rng entity.Rand) Action
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(v View, profile entity.DifficultyProfile, rng entity.Rand) Action

// Decide calls f
func (f PolicyFunc) Decide(v View, profile entity.DifficultyProfile, rng entity.Rand) Action {
	return f(v, profile, rng)
}

// DuelPolicy approaches from far, kites when near and strafes in between.
// It jumps and fires on per-decision rolls from the profile.
type DuelPolicy struct {
	// HeightGap is how much higher the target's feet must be to bias jumps
	HeightGap float64
}

// Decide implements Policy
func (d DuelPolicy) Decide(v View, p entity.DifficultyProfile, rng entity.Rand) Action {
	self, target := v.Self, v.Target
	if self == nil || target == nil || !self.Alive || !target.Alive {
		return Action{}
	}
	if self.Blocked && !self.Hesitating {
		return Action{Reconsider: true}
	}

	sx, _ := self.Center()
	tx, _ := target.Center()
	dx := tx - sx
	dist := math.Abs(dx)
	dir := sign(dx)
	if dir == 0 {
		dir = self.Facing
	}

	var a Action
	switch {
	case dist > p.FarDistance:
		a.Move, a.Speed = dir, p.ApproachSpeed
	case dist < p.NearDistance:
		a.Move, a.Speed = -dir, p.RetreatSpeed
	case p.StrafeSpeed > 0:
		a.Move, a.Speed = 1, p.StrafeSpeed
		if rng.Float64() < 0.5 {
			a.Move = -1
		}
	}
	a.DirX = float64(a.Move)

	if self.OnGround {
		chance := p.JumpChance
		if target.Bottom() < self.Bottom()-d.HeightGap {
			chance += p.HeightBias
		}
		if rng.Float64() < math.Min(chance, 1) {
			a.Jump = true
		}
	}

	if self.HasAmmo() && dist <= p.WeaponRange && rng.Float64() < p.FireChance {
		a.Fire = true
		a.AimX = float64(dir)
	}

	return a
}

// PursuitPolicy heads straight for the target and fires aimed shots in range.
// After a blocked stop it sidesteps perpendicular to the target.
type PursuitPolicy struct {
	Range float64
}

// Decide implements Policy
func (pp PursuitPolicy) Decide(v View, p entity.DifficultyProfile, rng entity.Rand) Action {
	self, target := v.Self, v.Target
	if self == nil || target == nil || !self.Alive || !target.Alive {
		return Action{}
	}
	if self.Blocked && !self.Hesitating {
		return Action{Reconsider: true}
	}

	sx, sy := self.Center()
	tx, ty := target.Center()
	dx, dy := tx-sx, ty-sy
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return Action{}
	}
	ux, uy := dx/dist, dy/dist

	speed := self.Speed
	if speed <= 0 {
		speed = p.ApproachSpeed
	}

	a := Action{DirX: ux, DirY: uy, Speed: speed, Move: sign(dx)}
	if self.Hesitating {
		// slide along the obstacle
		if rng.Float64() < 0.5 {
			a.DirX, a.DirY = -uy, ux
		} else {
			a.DirX, a.DirY = uy, -ux
		}
	}

	if self.FireCooldown <= 0 && self.HasAmmo() && dist < pp.Range && rng.Float64() < p.FireChance {
		a.Fire = true
		a.AimX, a.AimY = ux, uy
	}

	return a
}

// WanderPolicy picks a random heading each decision.
// Used by hunted animals, which never fire.
type WanderPolicy struct{}

// Decide implements Policy
func (WanderPolicy) Decide(v View, _ entity.DifficultyProfile, rng entity.Rand) Action {
	self := v.Self
	if self == nil || !self.Alive {
		return Action{}
	}

	dx := rng.Float64()*2 - 1
	dy := rng.Float64()*2 - 1
	return Action{
		Move:  sign(dx),
		DirX:  dx,
		DirY:  dy,
		Speed: self.Speed / 2,
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

package system

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// Action is what an opponent wants to do until its next decision
type Action struct {
	Move  int     // horizontal intent: -1, 0 or 1
	DirX  float64 // heading for free 2D movement
	DirY  float64
	Speed float64

	Jump bool
	Fire bool
	AimX float64 // fire direction
	AimY float64

	// Reconsider stops the opponent for one decision after it was blocked
	Reconsider bool
}

// Velocity returns the velocity the action asks for
func (a Action) Velocity() (float64, float64) {
	return a.DirX * a.Speed, a.DirY * a.Speed
}

// Apply writes the action's movement into a character.
// Jump and Fire are left to the mode since they need world access.
func (a Action) Apply(c *entity.Character, gravity bool) {
	if a.Reconsider {
		c.VX = 0
		if !gravity {
			c.VY = 0
		}
		c.Hesitating = true
		return
	}

	c.Hesitating = false
	vx, vy := a.Velocity()
	c.VX = vx
	if !gravity {
		c.VY = vy
	}
}

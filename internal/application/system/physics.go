package system

import (
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// PhysicsSystem advances characters and projectiles.
// It is deterministic: the same world and dt always produce the same result.
type PhysicsSystem struct {
	config *config.PhysicsSettings
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsSettings) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// Report describes what an integration step removed or repaired
type Report struct {
	// Expired holds projectiles despawned for TTL or leaving the world
	Expired []entity.Projectile
	// Faults counts entities whose state went non-finite and was restored
	Faults int
}

// Integrate advances every live entity by dt seconds.
// With gravity the vertical axis falls and lands on obstacles; without it
// movement is free 2D and obstacles are walls on both axes.
func (s *PhysicsSystem) Integrate(w *entity.World, dt float64, gravity bool) Report {
	var report Report

	for _, c := range w.Characters() {
		if !s.moveCharacter(w, c, dt, gravity) {
			report.Faults++
		}
	}

	report.Expired = s.moveProjectiles(w, dt)
	for _, p := range report.Expired {
		w.Despawn(p.ID)
	}

	return report
}

// moveCharacter returns false when the state had to be restored
func (s *PhysicsSystem) moveCharacter(w *entity.World, c *entity.Character, dt float64, gravity bool) bool {
	if !entity.Finite(c.X, c.Y, c.VX, c.VY) {
		s.repair(w.Bounds, c)
		return false
	}

	step := dt * c.Scale()
	prevX, prevY := c.X, c.Y

	if gravity {
		s.applyGravity(c, step)
		c.OnGround = false
	}
	c.Blocked = false

	// Horizontal: obstacles act as walls
	if dx := c.VX * step; dx != 0 {
		if len(blockers(w, c, dx, 0)) > 0 {
			c.Blocked = true
		} else {
			c.X += dx
		}
	}

	// Vertical
	if dy := c.VY * step; dy != 0 {
		s.moveVertical(w, c, dy, gravity)
	}

	s.clampToBounds(w.Bounds, c, gravity)

	if !entity.Finite(c.X, c.Y, c.VX, c.VY) {
		c.X, c.Y = prevX, prevY
		c.VX, c.VY = 0, 0
		return false
	}

	if c.VX > 0 {
		c.Facing = 1
	} else if c.VX < 0 {
		c.Facing = -1
	}
	return true
}

// repair zeroes a non-finite velocity and pulls a non-finite position back
// into the world
func (s *PhysicsSystem) repair(b entity.Rect, c *entity.Character) {
	c.VX, c.VY = 0, 0
	if !entity.Finite(c.X) {
		c.X = b.X
	}
	if !entity.Finite(c.Y) {
		c.Y = b.Y
	}
	s.clampToBounds(b, c, false)
}

// applyGravity applies gravity acceleration, capped at the max fall speed
func (s *PhysicsSystem) applyGravity(c *entity.Character, step float64) {
	c.VY += s.config.Gravity * step
	if c.VY > s.config.MaxFallSpeed {
		c.VY = s.config.MaxFallSpeed
	}
}

func (s *PhysicsSystem) moveVertical(w *entity.World, c *entity.Character, dy float64, gravity bool) {
	hits := blockers(w, c, 0, dy)
	if len(hits) == 0 {
		c.Y += dy
		return
	}

	if !gravity {
		c.Blocked = true
		return
	}

	if dy < 0 {
		// Head bump
		c.VY = 0
		return
	}

	// Falling: land on the highest surface that was below the feet
	top := hits[0].Y
	for _, h := range hits[1:] {
		if h.Y < top {
			top = h.Y
		}
	}
	if c.Bottom() <= top+landingTolerance {
		c.Y = top - c.H
	}
	// stand on whatever stopped the fall
	c.VY = 0
	c.OnGround = true
}

// blockers returns the obstacles the character would newly enter by moving
// dx, dy. Obstacles it already overlaps never block, so an embedded
// character can still move out.
func blockers(w *entity.World, c *entity.Character, dx, dy float64) []entity.Obstacle {
	hits := w.ObstaclesOverlapping(c.Rect().Translate(dx, dy))
	if len(hits) == 0 {
		return nil
	}
	cur := c.Rect()
	n := 0
	for _, h := range hits {
		if !h.Overlaps(cur) {
			hits[n] = h
			n++
		}
	}
	return hits[:n]
}

// landingTolerance allows landing when the feet start marginally inside
const landingTolerance = 0.5

func (s *PhysicsSystem) clampToBounds(b entity.Rect, c *entity.Character, gravity bool) {
	if c.X < b.X {
		c.X = b.X
		c.Blocked = c.VX < 0 || c.Blocked
	} else if c.X+c.W > b.Right() {
		c.X = b.Right() - c.W
		c.Blocked = c.VX > 0 || c.Blocked
	}

	if c.Y < b.Y {
		c.Y = b.Y
		if gravity && c.VY < 0 {
			c.VY = 0
		}
	} else if c.Bottom() >= b.Bottom() {
		c.Y = b.Bottom() - c.H
		if gravity {
			if c.VY > 0 {
				c.VY = 0
			}
			c.OnGround = true
		}
	}
}

// moveProjectiles advances projectiles and returns the expired ones
func (s *PhysicsSystem) moveProjectiles(w *entity.World, dt float64) []entity.Projectile {
	var expired []entity.Projectile

	for _, p := range w.Projectiles() {
		if p.TTL <= 0 {
			expired = append(expired, *p)
			continue
		}
		p.TTL--
		p.X += p.VX * dt
		p.Y += p.VY * dt

		cx, cy := p.Center()
		if !entity.Finite(cx, cy) || !w.Bounds.Contains(cx, cy) {
			expired = append(expired, *p)
		}
	}

	return expired
}

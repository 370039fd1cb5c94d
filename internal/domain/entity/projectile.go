package entity

import "math"

// Projectile is a bullet or a hitscan reticle.
// TTL counts remaining ticks; a projectile is expired once TTL reaches zero
// at the start of an integration step.
type Projectile struct {
	ID     EntityID
	Owner  Role
	X, Y   float64 // top-left corner
	VX, VY float64 // pixels per second
	W, H   float64
	TTL    int
	Damage int
}

// NewBullet creates a projectile travelling horizontally in direction dir
func NewBullet(owner Role, cx, cy float64, dir int, speed float64, size float64, ttl, damage int) Projectile {
	if dir == 0 {
		dir = 1
	}
	return Projectile{
		Owner:  owner,
		X:      cx - size/2,
		Y:      cy - size/2,
		VX:     float64(dir) * speed,
		W:      size,
		H:      size,
		TTL:    ttl,
		Damage: damage,
	}
}

// NewAimedBullet creates a projectile from (cx, cy) toward (tx, ty)
func NewAimedBullet(owner Role, cx, cy, tx, ty, speed, size float64, ttl, damage int) Projectile {
	dx := tx - cx
	dy := ty - cy
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		dx, dy, dist = 1, 0, 1
	}
	return Projectile{
		Owner:  owner,
		X:      cx - size/2,
		Y:      cy - size/2,
		VX:     dx / dist * speed,
		VY:     dy / dist * speed,
		W:      size,
		H:      size,
		TTL:    ttl,
		Damage: damage,
	}
}

// NewReticle creates a stationary one-tick projectile centred on a point.
// Used for hitscan shots where the radius is the forgiveness of the aim.
func NewReticle(owner Role, cx, cy, radius float64, damage int) Projectile {
	return Projectile{
		Owner:  owner,
		X:      cx - radius,
		Y:      cy - radius,
		W:      radius * 2,
		H:      radius * 2,
		TTL:    1,
		Damage: damage,
	}
}

// Rect returns the projectile's bounding box
func (p *Projectile) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the projectile centre
func (p *Projectile) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// Radius returns the radius used for circle overlap tests
func (p *Projectile) Radius() float64 {
	return p.W / 2
}

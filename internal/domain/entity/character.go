package entity

// UnlimitedAmmo marks a character whose ammo never runs out
const UnlimitedAmmo = -1

// Character is a player, opponent or hunted animal
type Character struct {
	ID   EntityID
	Role Role
	Kind string // e.g. "gunslinger", "outlaw", "bear"

	X, Y   float64 // top-left corner
	VX, VY float64 // pixels per second
	W, H   float64
	Facing int // -1 left, 1 right

	Health    int
	MaxHealth int
	Ammo      int
	Alive     bool

	// Set by the integrator each tick
	OnGround bool
	Blocked  bool

	// Set when a blocked opponent was told to stop and reconsider
	Hesitating bool

	Speed     float64 // movement speed in pixels per second
	TimeScale float64 // integration speed factor; zero means 1
	Points    int     // score awarded for eliminating this character

	Tracked       bool    // marked by eagle eye
	FireCooldown  float64 // seconds until the next shot is allowed
	DecisionTimer float64 // seconds until the next policy decision
	SinceDecision float64 // seconds since the last policy decision
}

// NewCharacter creates an alive character with full health
func NewCharacter(role Role, kind string, x, y, w, h float64, health int) Character {
	facing := 1
	if role == RoleOpponent {
		facing = -1
	}
	return Character{
		Role:      role,
		Kind:      kind,
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		Facing:    facing,
		Health:    health,
		MaxHealth: health,
		Alive:     true,
	}
}

// Rect returns the character's bounding box
func (c *Character) Rect() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// Center returns the centre of the bounding box
func (c *Character) Center() (float64, float64) {
	return c.X + c.W/2, c.Y + c.H/2
}

// Scale returns the integration speed factor
func (c *Character) Scale() float64 {
	if c.TimeScale <= 0 {
		return 1
	}
	return c.TimeScale
}

// Bottom returns the Y coordinate of the feet
func (c *Character) Bottom() float64 {
	return c.Y + c.H
}

// Radius returns the radius used for circle overlap tests
func (c *Character) Radius() float64 {
	return c.W / 2
}

// HasAmmo reports whether the character may fire
func (c *Character) HasAmmo() bool {
	return c.Ammo == UnlimitedAmmo || c.Ammo > 0
}

// SpendAmmo consumes one round; returns false when empty
func (c *Character) SpendAmmo() bool {
	if c.Ammo == UnlimitedAmmo {
		return true
	}
	if c.Ammo <= 0 {
		return false
	}
	c.Ammo--
	return true
}

// TakeDamage reduces health, never below zero.
// Returns true if this damage killed the character.
func (c *Character) TakeDamage(amount int) bool {
	if !c.Alive || amount <= 0 {
		return false
	}
	c.Health -= amount
	if c.Health <= 0 {
		c.Health = 0
		c.Alive = false
		return true
	}
	return false
}

// Heal restores health up to MaxHealth
func (c *Character) Heal(amount int) {
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
}

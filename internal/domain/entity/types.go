package entity

import (
	"errors"
	"fmt"
)

// EntityID is a unique identifier for an entity within one world
type EntityID uint32

// Role tags which side a character or projectile belongs to
type Role int

const (
	RolePlayer Role = iota
	RoleOpponent
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Opposite returns the role on the other side
func (r Role) Opposite() Role {
	if r == RolePlayer {
		return RoleOpponent
	}
	return RolePlayer
}

// Mode names a game mode
type Mode string

const (
	ModeDuel     Mode = "duel"
	ModeChase    Mode = "chase"
	ModeTracking Mode = "tracking"
)

// ErrUnknownMode is returned when a mode name is not recognised
var ErrUnknownMode = errors.New("unknown game mode")

// ParseMode converts a mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDuel, ModeChase, ModeTracking:
		return Mode(s), nil
	case "hunt":
		return ModeTracking, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Shape selects the overlap rule used between projectiles and characters
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// HitKind distinguishes what a projectile struck
type HitKind int

const (
	HitCharacter HitKind = iota
	HitObstacle
)

// String returns the string representation of the hit kind
func (k HitKind) String() string {
	if k == HitObstacle {
		return "obstacle"
	}
	return "character"
}

// HitEvent reports a single projectile impact.
// X and Y are the projectile centre at the moment of impact.
type HitEvent struct {
	ProjectileID EntityID
	TargetID     EntityID
	Kind         HitKind
	Owner        Role
	X, Y         float64
}

// Contact reports a player overlapping an opponent
type Contact struct {
	PlayerID   EntityID
	OpponentID EntityID
	Distance   float64
}

// Point is a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

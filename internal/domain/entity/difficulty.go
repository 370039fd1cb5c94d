package entity

import (
	"errors"
	"fmt"
	"math"
)

// Difficulty names a difficulty preset
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used when a requested preset is unknown
const DefaultDifficulty = DifficultyMedium

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidProfile    = errors.New("invalid difficulty profile")
)

// ParseDifficulty converts a difficulty key into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	case "normal":
		return DifficultyMedium, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// DifficultyProfile is the tunable parameter set of opponent behavior.
// Chances are probabilities in [0,1] rolled once per decision.
type DifficultyProfile struct {
	Name Difficulty

	ApproachSpeed   float64 // pixels per second
	RetreatSpeed    float64
	StrafeSpeed     float64
	JumpChance      float64
	HeightBias      float64 // added to JumpChance when the target stands higher
	FireChance      float64
	ProjectileSpeed float64

	DecisionIntervalMs float64

	FarDistance  float64 // approach beyond this horizontal distance
	NearDistance float64 // retreat inside this horizontal distance
	WeaponRange  float64

	ScoreMultiplier float64
}

// DecisionInterval returns the decision cadence in seconds
func (p DifficultyProfile) DecisionInterval() float64 {
	return p.DecisionIntervalMs / 1000
}

// Validate checks every field is finite and non-negative and chances are
// probabilities.
func (p DifficultyProfile) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"approachSpeed", p.ApproachSpeed},
		{"retreatSpeed", p.RetreatSpeed},
		{"strafeSpeed", p.StrafeSpeed},
		{"jumpChance", p.JumpChance},
		{"heightBias", p.HeightBias},
		{"fireChance", p.FireChance},
		{"projectileSpeed", p.ProjectileSpeed},
		{"decisionIntervalMs", p.DecisionIntervalMs},
		{"farDistance", p.FarDistance},
		{"nearDistance", p.NearDistance},
		{"weaponRange", p.WeaponRange},
		{"scoreMultiplier", p.ScoreMultiplier},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidProfile, f.name, f.v)
		}
	}
	if p.JumpChance > 1 || p.FireChance > 1 || p.HeightBias > 1 {
		return fmt.Errorf("%w: chances must be within [0,1]", ErrInvalidProfile)
	}
	if p.DecisionIntervalMs == 0 {
		return fmt.Errorf("%w: decisionIntervalMs must be positive", ErrInvalidProfile)
	}
	if p.NearDistance > p.FarDistance {
		return fmt.Errorf("%w: nearDistance exceeds farDistance", ErrInvalidProfile)
	}
	return nil
}

// DefaultProfiles returns the built-in presets.
// Harder presets decide faster and fire more often.
func DefaultProfiles() map[Difficulty]DifficultyProfile {
	return map[Difficulty]DifficultyProfile{
		DifficultyEasy: {
			Name:               DifficultyEasy,
			ApproachSpeed:      120,
			RetreatSpeed:       90,
			StrafeSpeed:        60,
			JumpChance:         0.2,
			HeightBias:         0.1,
			FireChance:         0.3,
			ProjectileSpeed:    400,
			DecisionIntervalMs: 260,
			FarDistance:        300,
			NearDistance:       120,
			WeaponRange:        400,
			ScoreMultiplier:    1.0,
		},
		DifficultyMedium: {
			Name:               DifficultyMedium,
			ApproachSpeed:      150,
			RetreatSpeed:       120,
			StrafeSpeed:        80,
			JumpChance:         0.35,
			HeightBias:         0.15,
			FireChance:         0.45,
			ProjectileSpeed:    500,
			DecisionIntervalMs: 200,
			FarDistance:        300,
			NearDistance:       120,
			WeaponRange:        400,
			ScoreMultiplier:    1.2,
		},
		DifficultyHard: {
			Name:               DifficultyHard,
			ApproachSpeed:      180,
			RetreatSpeed:       150,
			StrafeSpeed:        100,
			JumpChance:         0.45,
			HeightBias:         0.2,
			FireChance:         0.65,
			ProjectileSpeed:    600,
			DecisionIntervalMs: 150,
			FarDistance:        280,
			NearDistance:       110,
			WeaponRange:        450,
			ScoreMultiplier:    1.5,
		},
	}
}

package config

import (
	"fmt"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// DifficultyConfig is one preset in difficulty.yaml
type DifficultyConfig struct {
	ApproachSpeed      float64 `yaml:"approachSpeed"`
	RetreatSpeed       float64 `yaml:"retreatSpeed"`
	StrafeSpeed        float64 `yaml:"strafeSpeed"`
	JumpChance         float64 `yaml:"jumpChance"`
	HeightBias         float64 `yaml:"heightBias"`
	FireChance         float64 `yaml:"fireChance"`
	ProjectileSpeed    float64 `yaml:"projectileSpeed"`
	DecisionIntervalMs float64 `yaml:"decisionIntervalMs"`
	FarDistance        float64 `yaml:"farDistance"`
	NearDistance       float64 `yaml:"nearDistance"`
	WeaponRange        float64 `yaml:"weaponRange"`
	ScoreMultiplier    float64 `yaml:"scoreMultiplier"`
}

// Profile converts the preset into a domain profile
func (d DifficultyConfig) Profile(name entity.Difficulty) entity.DifficultyProfile {
	return entity.DifficultyProfile{
		Name:               name,
		ApproachSpeed:      d.ApproachSpeed,
		RetreatSpeed:       d.RetreatSpeed,
		StrafeSpeed:        d.StrafeSpeed,
		JumpChance:         d.JumpChance,
		HeightBias:         d.HeightBias,
		FireChance:         d.FireChance,
		ProjectileSpeed:    d.ProjectileSpeed,
		DecisionIntervalMs: d.DecisionIntervalMs,
		FarDistance:        d.FarDistance,
		NearDistance:       d.NearDistance,
		WeaponRange:        d.WeaponRange,
		ScoreMultiplier:    d.ScoreMultiplier,
	}
}

// Profile resolves a difficulty key.
// Unknown keys fall back to the default preset and report the error so the
// caller can log it; the returned profile is always usable.
func (c *GameConfig) Profile(key string) (entity.DifficultyProfile, error) {
	profiles := c.Difficulty
	if len(profiles) == 0 {
		profiles = entity.DefaultProfiles()
	}

	name, err := entity.ParseDifficulty(key)
	if err == nil {
		if p, ok := profiles[name]; ok {
			return p, nil
		}
		err = fmt.Errorf("%w: %q not configured", entity.ErrUnknownDifficulty, key)
	}

	if p, ok := profiles[entity.DefaultDifficulty]; ok {
		return p, err
	}
	return entity.DefaultProfiles()[entity.DefaultDifficulty], err
}

// ScoringFor returns the scoring coefficients of a mode
func (c *GameConfig) ScoringFor(mode entity.Mode) ScoringConfig {
	if s, ok := c.Scoring[string(mode)]; ok {
		return s
	}
	return DefaultScoring()
}

// DefaultScoring is used for modes without configured coefficients
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		WinBonus:            500,
		ParTime:             60,
		TimeBonusPerSecond:  10,
		AccuracyWeight:      5,
		AmmoBonus:           25,
		ComboBonus:          20,
		ConsolationPerShot:  10,
		ConsolationAccuracy: 2,
		ConsolationShare:    0.25,
		ReactionFloorMs:     150,
		ReactionCeilMs:      3000,
		LossPenaltyMs:       200,
		StrategyScoreCap:    2000,
	}
}

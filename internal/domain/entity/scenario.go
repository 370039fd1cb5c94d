package entity

import (
	"errors"
	"fmt"
)

// ErrMalformedScenario is returned for scenarios that cannot seed a round
var ErrMalformedScenario = errors.New("malformed scenario")

// Scenario is the per-round setup produced by the scenario service.
// Positions are percentages of the arena size in [0,100]; the first entry
// is the player and the second the lead opponent.
type Scenario struct {
	Mode          Mode       `json:"mode"`
	Difficulty    Difficulty `json:"difficulty"`
	Positions     []Point    `json:"positions"`
	Objectives    string     `json:"objectives"`
	OpponentSkill float64    `json:"opponent_skill"`
	Environment   string     `json:"environment"`
}

// Validate checks the scenario can seed a round
func (s Scenario) Validate() error {
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedScenario, err)
	}
	if len(s.Positions) < 2 {
		return fmt.Errorf("%w: need 2 positions, got %d", ErrMalformedScenario, len(s.Positions))
	}
	for i, p := range s.Positions[:2] {
		if !Finite(p.X, p.Y) || p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			return fmt.Errorf("%w: position %d out of range (%v,%v)", ErrMalformedScenario, i, p.X, p.Y)
		}
	}
	if !Finite(s.OpponentSkill) || s.OpponentSkill < 0 || s.OpponentSkill > 1 {
		return fmt.Errorf("%w: opponent_skill %v", ErrMalformedScenario, s.OpponentSkill)
	}
	return nil
}

// Place converts a scenario position into world coordinates inside bounds
func (s Scenario) Place(i int, bounds Rect) (float64, float64) {
	if i >= len(s.Positions) {
		return bounds.X + bounds.W/2, bounds.Y + bounds.H/2
	}
	p := s.Positions[i]
	return bounds.X + p.X/100*bounds.W, bounds.Y + p.Y/100*bounds.H
}

// Rand is a source of uniformly distributed floats in [0,1)
type Rand interface {
	Float64() float64
}

var environments = []string{"desert", "canyon", "saloon", "ghost town", "forest"}

var objectives = map[Mode]string{
	ModeDuel:     "Outdraw the outlaw before they outdraw you",
	ModeChase:    "Survive every wave of outlaws",
	ModeTracking: "Track and bring down ten animals",
}

// LocalScenario builds a scenario without the remote service
func LocalScenario(mode Mode, diff Difficulty, rng Rand) Scenario {
	skill := map[Difficulty]float64{
		DifficultyEasy:   0.3,
		DifficultyMedium: 0.6,
		DifficultyHard:   0.9,
	}[diff]

	return Scenario{
		Mode:       mode,
		Difficulty: diff,
		Positions: []Point{
			{X: 10 + rng.Float64()*10, Y: 50},
			{X: 80 + rng.Float64()*10, Y: 50},
		},
		Objectives:    objectives[mode],
		OpponentSkill: skill,
		Environment:   environments[int(rng.Float64()*float64(len(environments)))%len(environments)],
	}
}

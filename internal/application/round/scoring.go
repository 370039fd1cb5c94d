package round

import (
	"math"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// Scorer turns round metrics into the final result.
// Every formula is monotonic: more accuracy, more ammo left, more combo
// and faster wins never lower the score or rating.
type Scorer struct {
	cfg        config.ScoringConfig
	multiplier float64
	killBased  bool
}

// NewScorer creates a scorer; a non-positive multiplier counts as 1
func NewScorer(cfg config.ScoringConfig, multiplier float64, killBased bool) Scorer {
	if multiplier <= 0 || math.IsNaN(multiplier) {
		multiplier = 1
	}
	return Scorer{cfg: cfg, multiplier: multiplier, killBased: killBased}
}

// Accuracy returns the result accuracy percentage
func (s Scorer) Accuracy(m Metrics) float64 {
	if s.killBased {
		return m.PreciseAccuracy()
	}
	return m.Accuracy()
}

// Score computes the final score
func (s Scorer) Score(m Metrics, outcome entity.Outcome) int {
	acc := s.Accuracy(m)

	var base float64
	if outcome == entity.OutcomeWin {
		timeBonus := math.Max(0, (s.cfg.ParTime-m.Elapsed)*s.cfg.TimeBonusPerSecond)
		ammoBonus := float64(m.AmmoLeft) * s.cfg.AmmoBonus
		comboBonus := float64(m.MaxCombo) * s.cfg.ComboBonus
		base = s.cfg.WinBonus + float64(m.Score) + timeBonus + acc*s.cfg.AccuracyWeight + ammoBonus + comboBonus
	} else {
		base = float64(m.Shots)*s.cfg.ConsolationPerShot +
			acc*s.cfg.ConsolationAccuracy +
			float64(m.Score)*s.cfg.ConsolationShare
	}

	return int(math.Round(math.Max(0, base) * s.multiplier))
}

// ReactionTimeMs is the average time per decisive hit, clamped to the
// configured floor and ceiling. Lower is better; losing adds a penalty.
func (s Scorer) ReactionTimeMs(m Metrics, outcome entity.Outcome) float64 {
	decisive := m.Hits
	if s.killBased {
		decisive = m.Kills
	}
	if decisive < 1 {
		decisive = 1
	}

	rt := m.Elapsed * 1000 / float64(decisive)
	rt = clamp(rt, s.cfg.ReactionFloorMs, s.cfg.ReactionCeilMs)
	if outcome != entity.OutcomeWin {
		rt += s.cfg.LossPenaltyMs
	}
	return rt
}

// StrategyRating blends ammo conservation, score against the cap and
// accuracy into a 0..100 rating; non-wins are halved.
func (s Scorer) StrategyRating(m Metrics, score int, outcome entity.Outcome) float64 {
	acc := s.Accuracy(m)

	conservation := acc
	if m.AmmoStart > 0 {
		conservation = float64(m.AmmoLeft) / float64(m.AmmoStart) * 100
	}

	scorePart := 0.0
	if s.cfg.StrategyScoreCap > 0 {
		scorePart = math.Min(float64(score), s.cfg.StrategyScoreCap) / s.cfg.StrategyScoreCap * 100
	}

	rating := conservation*0.35 + scorePart*0.35 + acc*0.3
	if outcome != entity.OutcomeWin {
		rating *= 0.5
	}
	return clamp(rating, 0, 100)
}

// Performance is the 0..100 figure behind the letter grade
func (s Scorer) Performance(accuracy, strategy float64, maxCombo int, outcome entity.Outcome) float64 {
	perf := accuracy*0.3 + strategy*0.45 + math.Min(float64(maxCombo)*2, 15)
	if outcome == entity.OutcomeWin {
		perf += 10
	}
	return clamp(perf, 0, 100)
}

// Result assembles the scored part of a round result
func (s Scorer) Result(m Metrics, outcome entity.Outcome) entity.RoundResult {
	score := s.Score(m, outcome)
	acc := s.Accuracy(m)
	strategy := s.StrategyRating(m, score, outcome)

	return entity.RoundResult{
		Outcome:        outcome,
		Score:          score,
		Accuracy:       acc,
		ReactionTimeMs: s.ReactionTimeMs(m, outcome),
		StrategyRating: strategy,
		Grade:          entity.GradeFor(s.Performance(acc, strategy, m.MaxCombo, outcome)),
		DurationMs:     int64(math.Round(m.Elapsed * 1000)),
		Kills:          m.Kills,
		MaxCombo:       m.MaxCombo,
		Wave:           m.Wave,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if hi > lo && v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

package round

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

func createTestScorer(multiplier float64) Scorer {
	return NewScorer(config.Default().ScoringFor(entity.ModeChase), multiplier, false)
}

func baseMetrics() Metrics {
	return Metrics{
		Shots:     20,
		Hits:      10,
		Kills:     8,
		Elapsed:   60,
		MaxCombo:  4,
		Score:     800,
		Wave:      3,
		AmmoStart: 30,
		AmmoLeft:  10,
	}
}

func TestScorer_MonotonicScore(t *testing.T) {
	s := createTestScorer(1.2)

	tests := []struct {
		name   string
		better func(m *Metrics)
	}{
		{"more accurate", func(m *Metrics) { m.Hits = 15 }},
		{"faster", func(m *Metrics) { m.Elapsed = 30 }},
		{"more ammo left", func(m *Metrics) { m.AmmoLeft = 20 }},
		{"longer combo", func(m *Metrics) { m.MaxCombo = 8 }},
		{"higher running score", func(m *Metrics) { m.Score = 1200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baseMetrics()
			improved := baseMetrics()
			tt.better(&improved)

			assert.Greater(t, s.Score(improved, entity.OutcomeWin), s.Score(base, entity.OutcomeWin))
			assert.GreaterOrEqual(t, s.StrategyRating(improved, s.Score(improved, entity.OutcomeWin), entity.OutcomeWin),
				s.StrategyRating(base, s.Score(base, entity.OutcomeWin), entity.OutcomeWin))
		})
	}
}

func TestScorer_TimeBonusClampedAtZero(t *testing.T) {
	s := createTestScorer(1)
	slow := baseMetrics()
	slow.Elapsed = 1000
	slower := baseMetrics()
	slower.Elapsed = 5000

	assert.Equal(t, s.Score(slow, entity.OutcomeWin), s.Score(slower, entity.OutcomeWin))
}

func TestScorer_DifficultyMultiplier(t *testing.T) {
	m := baseMetrics()
	easy := createTestScorer(1.0).Score(m, entity.OutcomeWin)
	medium := createTestScorer(1.2).Score(m, entity.OutcomeWin)
	hard := createTestScorer(1.5).Score(m, entity.OutcomeWin)

	assert.Less(t, easy, medium)
	assert.Less(t, medium, hard)
	assert.Equal(t, easy, createTestScorer(0).Score(m, entity.OutcomeWin), "zero multiplier counts as 1")
}

func TestScorer_ConsolationBelowWin(t *testing.T) {
	s := createTestScorer(1)
	m := baseMetrics()

	win := s.Score(m, entity.OutcomeWin)
	loss := s.Score(m, entity.OutcomeLoss)
	timeout := s.Score(m, entity.OutcomeTimeout)

	assert.Less(t, loss, win)
	assert.Equal(t, loss, timeout)
	assert.Positive(t, loss)

	more := m
	more.Shots = 30
	assert.Greater(t, s.Score(more, entity.OutcomeLoss), 0)
}

func TestScorer_ReactionTime(t *testing.T) {
	cfg := config.Default().ScoringFor(entity.ModeChase)
	s := NewScorer(cfg, 1, false)

	m := Metrics{Hits: 10, Elapsed: 20}
	assert.InDelta(t, 2000.0, s.ReactionTimeMs(m, entity.OutcomeWin), 1e-9)
	assert.InDelta(t, 2000.0+cfg.LossPenaltyMs, s.ReactionTimeMs(m, entity.OutcomeLoss), 1e-9)

	assert.Equal(t, cfg.ReactionFloorMs, s.ReactionTimeMs(Metrics{Hits: 100, Elapsed: 1}, entity.OutcomeWin))
	assert.Equal(t, cfg.ReactionCeilMs, s.ReactionTimeMs(Metrics{Elapsed: 600}, entity.OutcomeWin))

	faster := Metrics{Hits: 10, Elapsed: 10}
	assert.Less(t, s.ReactionTimeMs(faster, entity.OutcomeWin), s.ReactionTimeMs(m, entity.OutcomeWin))
}

func TestScorer_KillBasedReaction(t *testing.T) {
	s := NewScorer(config.Default().ScoringFor(entity.ModeTracking), 1, true)
	m := Metrics{Shots: 40, Hits: 20, Kills: 10, Precise: 6, Elapsed: 50}

	assert.InDelta(t, 5000.0, s.ReactionTimeMs(m, entity.OutcomeWin), 1e-9, "average kill time")
	assert.Equal(t, 60.0, s.Accuracy(m))
}

func TestScorer_RatingsBounded(t *testing.T) {
	s := createTestScorer(1.5)

	cases := []Metrics{
		{},
		{Shots: 1},
		{Hits: 5, Shots: 5, AmmoStart: 5, AmmoLeft: 5, Score: 1e6, MaxCombo: 100},
		{Elapsed: 1e7},
	}
	for _, m := range cases {
		for _, o := range []entity.Outcome{entity.OutcomeWin, entity.OutcomeLoss, entity.OutcomeTimeout} {
			r := s.Result(m, o)
			assert.False(t, math.IsNaN(r.Accuracy))
			assert.GreaterOrEqual(t, r.StrategyRating, 0.0)
			assert.LessOrEqual(t, r.StrategyRating, 100.0)
			assert.GreaterOrEqual(t, r.Score, 0)
			assert.NotEmpty(t, r.Grade)
		}
	}
}

func TestScorer_LossHalvesStrategy(t *testing.T) {
	s := createTestScorer(1)
	m := baseMetrics()

	win := s.StrategyRating(m, 1000, entity.OutcomeWin)
	loss := s.StrategyRating(m, 1000, entity.OutcomeLoss)
	assert.InDelta(t, win/2, loss, 1e-9)
}

func TestScorer_Grades(t *testing.T) {
	s := createTestScorer(1)

	perfect := s.Result(Metrics{Shots: 10, Hits: 10, AmmoStart: 20, AmmoLeft: 10, Score: 5000, MaxCombo: 10}, entity.OutcomeWin)
	assert.Equal(t, entity.GradeS, perfect.Grade)

	poor := s.Result(Metrics{Shots: 10, Hits: 1}, entity.OutcomeLoss)
	assert.Equal(t, entity.GradeF, poor.Grade)
}

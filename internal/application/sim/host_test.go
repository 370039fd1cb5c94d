package sim

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bountyhunter/internal/application/state"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

type recorder struct {
	results []entity.RoundResult
	stats   []Stats
	cues    []entity.Cue
}

func (r *recorder) RoundEnded(res entity.RoundResult) { r.results = append(r.results, res) }
func (r *recorder) LiveStats(s Stats)                  { r.stats = append(r.stats, s) }
func (r *recorder) Cue(c entity.Cue)                   { r.cues = append(r.cues, c) }

type stubScenarios struct {
	scenario entity.Scenario
	err      error
	calls    int
}

func (s *stubScenarios) Scenario(_ context.Context, mode entity.Mode, diff entity.Difficulty) (entity.Scenario, error) {
	s.calls++
	if s.err != nil {
		return entity.Scenario{}, s.err
	}
	sc := s.scenario
	sc.Mode, sc.Difficulty = mode, diff
	return sc, nil
}

func createTestGameConfig() *config.GameConfig {
	return config.Default()
}

func createTestHost(t *testing.T, cfg *config.GameConfig, opts Options) (*Host, *recorder) {
	t.Helper()
	rec := &recorder{}
	if opts.Dispatcher == nil {
		opts.Dispatcher = rec
	}
	if opts.Difficulty == "" {
		opts.Difficulty = "medium"
	}
	h, err := New(cfg, opts)
	require.NoError(t, err)
	return h, rec
}

// createActiveHost starts and begins a round
func createActiveHost(t *testing.T, cfg *config.GameConfig, opts Options) (*Host, *recorder) {
	t.Helper()
	h, rec := createTestHost(t, cfg, opts)
	require.NoError(t, h.Start(context.Background()))
	require.NoError(t, h.Begin())
	return h, rec
}

// snapshot copies everything a tick could change
type snapshot struct {
	characters  []entity.Character
	projectiles []entity.Projectile
	metrics     any
}

func takeSnapshot(h *Host) snapshot {
	var s snapshot
	for _, c := range h.World().Characters() {
		s.characters = append(s.characters, *c)
	}
	for _, p := range h.World().Projectiles() {
		s.projectiles = append(s.projectiles, *p)
	}
	s.metrics = h.Metrics()
	return s
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(createTestGameConfig(), Options{Mode: "poker"})
	assert.ErrorIs(t, err, entity.ErrUnknownMode)
}

func TestHost_Lifecycle(t *testing.T) {
	h, _ := createTestHost(t, createTestGameConfig(), Options{Mode: entity.ModeDuel, Seed: 1})
	assert.Equal(t, state.StateIdle, h.State())
	assert.ErrorIs(t, h.Begin(), ErrNoRound)
	assert.ErrorIs(t, h.Pause(), ErrNoRound)

	require.NoError(t, h.Start(context.Background()))
	assert.Equal(t, state.StateIntro, h.State())
	assert.Empty(t, h.World().Characters(), "characters spawn at begin")
	assert.Error(t, h.Start(context.Background()))

	require.NoError(t, h.Begin())
	assert.Equal(t, state.StateActive, h.State())
	assert.NotNil(t, h.World().Player())
	assert.Len(t, h.World().Opponents(), 1)

	h.Reset()
	assert.Equal(t, state.StateIdle, h.State())
	assert.Nil(t, h.World())
	require.NoError(t, h.Start(context.Background()))
}

func TestHost_AutoBegin(t *testing.T) {
	cfg := createTestGameConfig()
	cfg.Round.IntroSeconds = 0.5
	h, _ := createTestHost(t, cfg, Options{Mode: entity.ModeChase, Seed: 1})
	require.NoError(t, h.Start(context.Background()))

	for i := 0; i < 29; i++ {
		h.Tick(system.InputState{})
	}
	assert.Equal(t, state.StateIntro, h.State())

	h.Tick(system.InputState{})
	assert.Equal(t, state.StateActive, h.State())
	assert.Zero(t, h.Ticks(), "intro ticks are not simulated")
}

func TestHost_ManualBeginWaits(t *testing.T) {
	cfg := createTestGameConfig()
	cfg.Round.AutoBegin = false
	h, _ := createTestHost(t, cfg, Options{Mode: entity.ModeChase, Seed: 1})
	require.NoError(t, h.Start(context.Background()))

	for i := 0; i < 1000; i++ {
		h.Tick(system.InputState{})
	}
	assert.Equal(t, state.StateIntro, h.State())
}

func TestHost_UnknownDifficultyFallsBack(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	h, _ := createTestHost(t, createTestGameConfig(), Options{Mode: entity.ModeDuel, Difficulty: "nightmare", Logger: logger})
	require.NoError(t, h.Start(context.Background()))

	assert.Equal(t, entity.DifficultyMedium, h.Profile().Name)
	assert.Contains(t, logs.String(), "falling back to default difficulty")
	assert.Contains(t, logs.String(), "nightmare")
}

func TestHost_ScenarioFallback(t *testing.T) {
	tests := []struct {
		name     string
		source   *stubScenarios
		expected func(t *testing.T, sc entity.Scenario)
	}{
		{
			name:   "service failure",
			source: &stubScenarios{err: errors.New("connection refused")},
			expected: func(t *testing.T, sc entity.Scenario) {
				assert.NoError(t, sc.Validate())
				assert.Equal(t, 0.6, sc.OpponentSkill)
			},
		},
		{
			name:   "malformed scenario",
			source: &stubScenarios{scenario: entity.Scenario{Positions: []entity.Point{{X: 500, Y: 1}}}},
			expected: func(t *testing.T, sc entity.Scenario) {
				assert.Len(t, sc.Positions, 2)
				assert.LessOrEqual(t, sc.Positions[0].X, 20.0)
			},
		},
		{
			name: "service scenario used",
			source: &stubScenarios{scenario: entity.Scenario{
				Positions:     []entity.Point{{X: 27, Y: 50}, {X: 45, Y: 50}},
				OpponentSkill: 0.25,
				Environment:   "canyon",
			}},
			expected: func(t *testing.T, sc entity.Scenario) {
				assert.Equal(t, "canyon", sc.Environment)
				assert.Equal(t, 0.25, sc.OpponentSkill)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := createTestHost(t, createTestGameConfig(), Options{Mode: entity.ModeDuel, Scenarios: tt.source})
			require.NoError(t, h.Start(context.Background()))
			assert.Equal(t, 1, tt.source.calls)
			tt.expected(t, h.Scenario())
		})
	}
}

func TestHost_PauseFreezesWorld(t *testing.T) {
	h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeChase, Seed: 7})

	for i := 0; i < 30; i++ {
		h.Tick(system.InputState{Right: true})
	}
	require.NoError(t, h.Pause())
	before := takeSnapshot(h)
	statsBefore := len(rec.stats)

	for i := 0; i < 120; i++ {
		h.Tick(system.InputState{Left: true, Down: true, Click: true, PointerX: 10, PointerY: 10})
	}

	assert.Equal(t, before, takeSnapshot(h), "paused ticks change nothing")
	assert.Equal(t, statsBefore, len(rec.stats))
	assert.True(t, h.Paused())

	require.NoError(t, h.Resume())
	h.Tick(system.InputState{Left: true})
	assert.NotEqual(t, before, takeSnapshot(h))
}

func TestHost_Deterministic(t *testing.T) {
	script := func(tick int) system.InputState {
		return system.InputState{
			Left:     tick%90 < 30,
			Right:    tick%90 >= 60,
			Up:       tick%50 < 20,
			Click:    tick%17 == 0,
			PointerX: float64(tick%800) + 0.5,
			PointerY: float64(tick*7%600) + 0.5,
		}
	}

	for _, m := range []entity.Mode{entity.ModeDuel, entity.ModeChase, entity.ModeTracking} {
		t.Run(string(m), func(t *testing.T) {
			run := func() (snapshot, Stats, []entity.RoundResult) {
				h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: m, Seed: 99})
				for i := 0; i < 600; i++ {
					h.Tick(script(i))
				}
				return takeSnapshot(h), h.Stats(), rec.results
			}

			s1, st1, r1 := run()
			s2, st2, r2 := run()
			assert.Equal(t, s1, s2)
			assert.Equal(t, st1, st2)
			assert.Equal(t, r1, r2)
		})
	}
}

func TestHost_DuelSingleShotWin(t *testing.T) {
	// close enough that the shot lands before the opponent's first decision
	source := &stubScenarios{scenario: entity.Scenario{
		Positions:     []entity.Point{{X: 27, Y: 50}, {X: 40, Y: 50}},
		OpponentSkill: 0.5,
	}}
	h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeDuel, Seed: 3, Scenarios: source})

	h.Tick(system.InputState{Fire: true})
	require.Equal(t, 1, h.Metrics().Shots)

	for i := 0; i < 60 && h.Metrics().Hits == 0; i++ {
		h.Tick(system.InputState{})
		if h.Metrics().Hits > 0 {
			assert.Equal(t, state.StateEnded, h.State(), "ends on the hitting tick")
		}
	}

	require.Equal(t, state.StateEnded, h.State())
	require.Len(t, rec.results, 1)
	r := rec.results[0]
	assert.Equal(t, entity.OutcomeWin, r.Outcome)
	assert.Equal(t, 100.0, r.Accuracy)
	assert.GreaterOrEqual(t, float64(r.Score), (500+1000)*1.2)
	assert.NotEmpty(t, r.RoundID)
	assert.Equal(t, entity.ModeDuel, r.Mode)

	for i := 0; i < 30; i++ {
		h.Tick(system.InputState{Fire: true})
	}
	assert.Len(t, rec.results, 1, "ended rounds ignore further ticks")
	assert.Equal(t, 1, h.Metrics().Shots)
}

func TestHost_DuelScenarioInsideWall(t *testing.T) {
	// 25% of the arena puts the player's spawn on the west wall
	source := &stubScenarios{scenario: entity.Scenario{
		Positions:     []entity.Point{{X: 25, Y: 50}, {X: 85, Y: 50}},
		OpponentSkill: 0.5,
	}}
	cfg := createTestGameConfig()
	cfg.Duel.Opponent.Ammo = 0
	h, _ := createActiveHost(t, cfg, Options{Mode: entity.ModeDuel, Seed: 4, Scenarios: source})

	player := h.World().Player()
	require.NotNil(t, player)
	assert.False(t, h.World().Blocked(player.Rect()))

	start := player.X
	for i := 0; i < 30; i++ {
		h.Tick(system.InputState{Right: true})
	}
	assert.Greater(t, player.X, start)
	assert.True(t, player.OnGround)

	mid := player.X
	for i := 0; i < 30; i++ {
		h.Tick(system.InputState{Left: true})
	}
	assert.Less(t, player.X, mid)
}

func TestHost_TimeOut(t *testing.T) {
	cfg := createTestGameConfig()
	cfg.Duel.TimeLimit = 1
	cfg.Duel.Opponent.Ammo = 0
	h, rec := createActiveHost(t, cfg, Options{Mode: entity.ModeDuel, Seed: 5})

	for i := 0; i < 120; i++ {
		h.Tick(system.InputState{})
	}

	require.Len(t, rec.results, 1)
	assert.Equal(t, entity.OutcomeTimeout, rec.results[0].Outcome)
	assert.InDelta(t, 60, h.Ticks(), 1)
}

func TestHost_LiveStatsEveryActiveTick(t *testing.T) {
	h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeChase, Seed: 2})

	for i := 0; i < 10; i++ {
		h.Tick(system.InputState{})
	}

	require.Len(t, rec.stats, 10)
	last := rec.stats[9]
	assert.Equal(t, 10, last.Tick)
	assert.Equal(t, 100, last.MaxHealth)
	assert.Equal(t, 20, last.Ammo)
	assert.Equal(t, 3, last.Opponents)
	assert.Equal(t, 1, last.Wave)
}

func TestHost_MissedShotsBreakCombo(t *testing.T) {
	h, _ := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeTracking, Seed: 4})

	// the top-left corner is kept clear of animals by the edge margin
	h.Tick(system.InputState{Click: true, PointerX: 5, PointerY: 5})
	h.Tick(system.InputState{})

	m := h.Metrics()
	assert.Equal(t, 1, m.Shots)
	assert.Equal(t, 1, m.Misses)
	assert.Equal(t, 0, m.Combo)
}

func TestHost_PanickingPolicyDegrades(t *testing.T) {
	var logs bytes.Buffer
	wrap := func(system.Policy) system.Policy {
		return system.PolicyFunc(func(system.View, entity.DifficultyProfile, entity.Rand) system.Action {
			panic("decision service exploded")
		})
	}
	h, rec := createActiveHost(t, createTestGameConfig(), Options{
		Mode:       entity.ModeChase,
		Seed:       8,
		WrapPolicy: wrap,
		Logger:     slog.New(slog.NewTextHandler(&logs, nil)),
	})

	for i := 0; i < 60; i++ {
		h.Tick(system.InputState{})
	}

	assert.Positive(t, h.Faults())
	assert.Equal(t, 60, h.Ticks(), "ticking continues")
	assert.Len(t, rec.stats, 60)
	assert.Contains(t, logs.String(), "decision service exploded")
}

func TestHost_ResetCancelsTimers(t *testing.T) {
	h, _ := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeChase, Seed: 6})
	for _, e := range h.World().Opponents() {
		h.World().Despawn(e.ID)
	}

	for i := 0; i < 90 && h.timers.Len() == 0; i++ {
		h.Tick(system.InputState{})
	}
	require.Equal(t, 1, h.timers.Len(), "next wave scheduled")
	assert.Equal(t, 2, h.Metrics().Wave)

	h.Reset()
	assert.Equal(t, 0, h.timers.Len())
}

func TestHost_StopIsFinal(t *testing.T) {
	h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeChase, Seed: 1})
	h.Tick(system.InputState{})

	h.Stop()
	h.Stop()
	before := takeSnapshot(h)

	for i := 0; i < 10; i++ {
		h.Tick(system.InputState{Right: true})
	}
	assert.Equal(t, before, takeSnapshot(h))
	assert.Len(t, rec.stats, 1)
	assert.ErrorIs(t, h.Start(context.Background()), ErrStopped)
	assert.ErrorIs(t, h.Begin(), ErrStopped)
}

func TestHost_WrapPolicyCachedPerOpponent(t *testing.T) {
	wraps := 0
	h, _ := createActiveHost(t, createTestGameConfig(), Options{
		Mode: entity.ModeChase,
		Seed: 1,
		WrapPolicy: func(p system.Policy) system.Policy {
			wraps++
			return p
		},
	})

	for i := 0; i < 120; i++ {
		h.Tick(system.InputState{})
	}
	assert.Equal(t, 3, wraps)
}

func TestHost_Cues(t *testing.T) {
	h, rec := createActiveHost(t, createTestGameConfig(), Options{Mode: entity.ModeDuel, Seed: 1})

	for i := 0; i < 5; i++ {
		h.Tick(system.InputState{})
	}
	h.Tick(system.InputState{Jump: true})
	for i := 0; i < 120; i++ {
		h.Tick(system.InputState{})
	}

	kinds := map[entity.CueKind]int{}
	for _, c := range rec.cues {
		kinds[c.Kind]++
	}
	assert.Positive(t, kinds[entity.CueJump])
	assert.Positive(t, kinds[entity.CueLand])
}

func TestCallbacks_Optional(t *testing.T) {
	var ended int
	var d Dispatcher = Callbacks{OnRoundEnded: func(entity.RoundResult) { ended++ }}

	d.RoundEnded(entity.RoundResult{})
	d.LiveStats(Stats{})
	d.Cue(entity.Cue{})
	assert.Equal(t, 1, ended)

	a, b := &recorder{}, &recorder{}
	Fanout{a, b}.Cue(entity.Cue{Kind: entity.CueShot})
	assert.Len(t, a.cues, 1)
	assert.Len(t, b.cues, 1)
}

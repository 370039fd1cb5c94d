package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

func createTestChase(t *testing.T) (*Chase, *testHarness) {
	t.Helper()
	c := NewChase(createTestGameConfig().Chase)
	return c, createTestEnv(t, c)
}

// clearWave removes every outlaw, then progresses until the wave resolves
func clearWave(t *testing.T, c *Chase, h *testHarness) (effect struct{ wave, points int }, outcome entity.Outcome) {
	t.Helper()
	for _, e := range h.env.World.Opponents() {
		h.env.World.Despawn(e.ID)
	}
	for i := 0; i < 120; i++ {
		e := c.Progress(h.env)
		if e.Points > 0 || e.Outcome != entity.OutcomeNone {
			effect.wave, effect.points = e.Wave, e.Points
			return effect, e.Outcome
		}
	}
	t.Fatal("wave never cleared")
	return effect, entity.OutcomeNone
}

func TestChase_Arena(t *testing.T) {
	c := NewChase(createTestGameConfig().Chase)

	bounds, obstacles := c.Arena(testRNG())

	assert.Equal(t, entity.Rect{W: 800, H: 600}, bounds)
	assert.Len(t, obstacles, 8)
	centre := entity.Rect{X: 300, Y: 200, W: 200, H: 200}
	for i, o := range obstacles {
		assert.Equal(t, 40.0, o.W)
		assert.False(t, o.Overlaps(centre), "obstacle %d blocks the spawn", i)
		for _, other := range obstacles[i+1:] {
			assert.False(t, o.Overlaps(other))
		}
	}
}

func TestChase_EnemiesForWave(t *testing.T) {
	c := NewChase(createTestGameConfig().Chase)

	tests := []struct {
		wave     int
		expected int
	}{
		{1, 3},
		{2, 4},
		{3, 4},
		{4, 5},
		{5, 5},
		{20, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, c.EnemiesForWave(tt.wave), "wave %d", tt.wave)
	}
}

func TestChase_Setup(t *testing.T) {
	c, h := createTestChase(t)

	p := h.env.World.Player()
	require.NotNil(t, p)
	assert.Equal(t, 20, p.Ammo)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 1, c.Wave())

	opps := h.env.World.Opponents()
	assert.Len(t, opps, 3)
	for _, e := range opps {
		assert.Equal(t, entity.UnlimitedAmmo, e.Ammo)
		assert.Equal(t, 30, e.Health)
		assert.Equal(t, 100, e.Points)
		assert.True(t, h.env.World.Bounds.Contains(e.X, e.Y))
		assert.GreaterOrEqual(t, e.Speed, 120.0)
		assert.LessOrEqual(t, e.Speed, 240.0)
	}
	assert.Equal(t, 1, h.countCues(entity.CueWave))
}

func TestChase_WaveNeedsMinimumTime(t *testing.T) {
	c, h := createTestChase(t)
	for _, e := range h.env.World.Opponents() {
		h.env.World.Despawn(e.ID)
	}

	for i := 0; i < 50; i++ {
		assert.Zero(t, c.Progress(h.env).Points, "tick %d", i)
	}
	assert.Equal(t, 1, c.Wave())
}

func TestChase_WaveClearMidRound(t *testing.T) {
	c, h := createTestChase(t)

	// clear waves 1 and 2
	for wave := 1; wave < 3; wave++ {
		_, outcome := clearWave(t, c, h)
		require.Equal(t, entity.OutcomeNone, outcome)
		h.timers.fire()
	}
	require.Equal(t, 3, c.Wave())
	require.Len(t, h.env.World.Opponents(), 4)

	c.player.Ammo = 5
	effect, outcome := clearWave(t, c, h)

	assert.Equal(t, entity.OutcomeNone, outcome, "round stays active")
	assert.Equal(t, 4, effect.wave)
	assert.Equal(t, 600, effect.points)
	assert.Equal(t, 15, c.player.Ammo, "wave clear replenishes ammo")
	assert.Empty(t, h.env.World.Opponents(), "next wave waits for its timer")
	assert.Equal(t, []int{120, 120, 120}, h.timers.ticks)

	assert.Zero(t, c.Progress(h.env).Points, "no double clear while the spawn is pending")

	h.timers.fire()
	assert.Len(t, h.env.World.Opponents(), 5)
}

func TestChase_AmmoCap(t *testing.T) {
	c, h := createTestChase(t)
	c.player.Ammo = 45

	clearWave(t, c, h)
	assert.Equal(t, 50, c.player.Ammo)
}

func TestChase_FinalWaveWins(t *testing.T) {
	c, h := createTestChase(t)

	for wave := 1; wave < 5; wave++ {
		_, outcome := clearWave(t, c, h)
		require.Equal(t, entity.OutcomeNone, outcome)
		h.timers.fire()
	}
	require.Equal(t, 5, c.Wave())

	effect, outcome := clearWave(t, c, h)
	assert.Equal(t, entity.OutcomeWin, outcome)
	assert.Equal(t, 1000, effect.points)
}

func TestChase_ResolveHit(t *testing.T) {
	c, h := createTestChase(t)
	w := h.env.World
	enemy := w.Opponents()[0]

	e := c.ResolveHit(w, entity.HitEvent{TargetID: enemy.ID, Kind: entity.HitCharacter, Owner: entity.RolePlayer})
	assert.True(t, e.Hit)
	assert.Equal(t, 15, e.DamageDealt)
	assert.Zero(t, e.Kills)
	assert.Equal(t, 15, enemy.Health)

	e = c.ResolveHit(w, entity.HitEvent{TargetID: enemy.ID, Kind: entity.HitCharacter, Owner: entity.RolePlayer})
	assert.Equal(t, 1, e.Kills)
	assert.Equal(t, 100, e.Points)
	assert.Nil(t, w.Character(enemy.ID), "dead outlaws are despawned")

	e = c.ResolveHit(w, entity.HitEvent{Kind: entity.HitObstacle, Owner: entity.RolePlayer})
	assert.True(t, e.Miss)
}

func TestChase_PlayerDamage(t *testing.T) {
	c, h := createTestChase(t)
	w := h.env.World
	p := c.player

	e := c.ResolveHit(w, entity.HitEvent{TargetID: p.ID, Kind: entity.HitCharacter, Owner: entity.RoleOpponent})
	assert.Equal(t, 10, e.DamageTaken)
	assert.Equal(t, 90, p.Health)

	contact := entity.Contact{PlayerID: p.ID}
	for i := 0; i < 89; i++ {
		e = c.ResolveContact(w, contact)
		require.Equal(t, entity.OutcomeNone, e.Outcome)
	}
	e = c.ResolveContact(w, contact)
	assert.Equal(t, 1, e.DamageTaken)
	assert.Equal(t, entity.OutcomeLoss, e.Outcome)
	assert.False(t, p.Alive)

	assert.Equal(t, 0, c.ResolveContact(w, contact).DamageTaken, "dead players take no more damage")
}

func TestChase_ControlAimsAtPointer(t *testing.T) {
	c, h := createTestChase(t)
	p := c.player
	px, py := p.Center()

	shots := c.Control(h.env, system.InputState{Click: true, PointerX: px, PointerY: py + 100, Left: true})

	assert.Equal(t, 1, shots)
	assert.Equal(t, -300.0, p.VX)
	assert.Equal(t, 19, p.Ammo)
	require.Len(t, h.env.World.Projectiles(), 1)
	b := h.env.World.Projectiles()[0]
	assert.InDelta(t, 0.0, b.VX, 1e-9)
	assert.InDelta(t, 480.0, b.VY, 1e-9)
	assert.Equal(t, 15, b.Damage)
}

func TestChase_EnemyFireCooldown(t *testing.T) {
	c, h := createTestChase(t)
	e := h.env.World.Opponents()[0]
	e.FireCooldown = 0

	c.Act(h.env, e, system.Action{DirX: 1, Speed: 100, Fire: true, AimX: 1})
	require.Len(t, h.env.World.Projectiles(), 1)
	assert.GreaterOrEqual(t, e.FireCooldown, 1.0)
	assert.LessOrEqual(t, e.FireCooldown, 2.5)
	assert.Equal(t, 100.0, e.VX)

	c.Act(h.env, e, system.Action{Fire: true, AimX: 1})
	assert.Len(t, h.env.World.Projectiles(), 1, "cooling down")

	before := e.FireCooldown
	c.Progress(h.env)
	assert.InDelta(t, before-testDT, e.FireCooldown, 1e-9)
}

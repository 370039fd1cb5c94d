package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(Rect{W: 800, H: 480}, []Rect{
		{X: 392, Y: 380, W: 16, H: 60},
		{X: 0, Y: 440, W: 800, H: 40},
	})
	require.NoError(t, err)
	return w
}

func TestNewWorld_RejectsEmptyBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds Rect
	}{
		{"zero", Rect{}},
		{"zero width", Rect{W: 0, H: 100}},
		{"negative height", Rect{W: 100, H: -1}},
		{"nan", Rect{W: math.NaN(), H: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWorld(tt.bounds, nil)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, ErrEmptyBounds)
		})
	}
}

func TestNewWorld_SkipsEmptyObstacles(t *testing.T) {
	w, err := NewWorld(Rect{W: 100, H: 100}, []Rect{
		{X: 10, Y: 10, W: 10, H: 10},
		{X: 20, Y: 20, W: 0, H: 10},
	})
	require.NoError(t, err)
	assert.Len(t, w.Obstacles(), 1)
}

func TestWorld_SpawnAndDespawn(t *testing.T) {
	w := createTestWorld(t)

	p := w.SpawnCharacter(NewCharacter(RolePlayer, "gunslinger", 100, 400, 20, 40, 100))
	require.NotNil(t, p)
	o := w.SpawnCharacter(NewCharacter(RoleOpponent, "outlaw", 600, 400, 20, 40, 100))
	require.NotNil(t, o)

	assert.NotEqual(t, p.ID, o.ID)
	assert.Len(t, w.Characters(), 2)
	assert.Same(t, p, w.Player())
	assert.Equal(t, 1, w.OpponentCount())

	require.True(t, w.Despawn(o.ID))
	assert.Len(t, w.Characters(), 1)
	assert.Nil(t, w.Character(o.ID))
	assert.False(t, w.Despawn(o.ID), "double despawn must report false")
}

func TestWorld_DespawnedProjectileExcludedImmediately(t *testing.T) {
	w := createTestWorld(t)

	a := w.SpawnProjectile(NewBullet(RolePlayer, 10, 10, 1, 100, 4, 10, 1))
	b := w.SpawnProjectile(NewBullet(RolePlayer, 20, 10, 1, 100, 4, 10, 1))
	require.NotNil(t, a)
	require.NotNil(t, b)

	w.Despawn(a.ID)

	for _, p := range w.Projectiles() {
		assert.NotEqual(t, a.ID, p.ID)
	}
	assert.Len(t, w.Projectiles(), 1)
}

func TestWorld_SpawnGate(t *testing.T) {
	w := createTestWorld(t)
	open := false
	w.SetSpawnGate(func() bool { return open })

	assert.Nil(t, w.SpawnCharacter(NewCharacter(RoleOpponent, "outlaw", 0, 0, 10, 10, 10)))
	assert.Nil(t, w.SpawnProjectile(NewBullet(RoleOpponent, 0, 0, 1, 1, 4, 1, 1)))
	assert.Empty(t, w.Characters())
	assert.Empty(t, w.Projectiles())

	open = true
	assert.NotNil(t, w.SpawnCharacter(NewCharacter(RoleOpponent, "outlaw", 0, 0, 10, 10, 10)))
}

func TestWorld_SpawnRejectsNaN(t *testing.T) {
	w := createTestWorld(t)

	c := NewCharacter(RolePlayer, "gunslinger", math.NaN(), 0, 10, 10, 10)
	assert.Nil(t, w.SpawnCharacter(c))

	p := NewBullet(RolePlayer, 0, 0, 1, math.Inf(1), 4, 1, 1)
	assert.Nil(t, w.SpawnProjectile(p))
}

func TestWorld_ProjectileCapPerOwner(t *testing.T) {
	w := createTestWorld(t)

	for i := 0; i < MaxProjectilesPerOwner; i++ {
		require.NotNil(t, w.SpawnProjectile(NewBullet(RolePlayer, 10, 10, 1, 100, 4, 10, 1)))
	}
	assert.Nil(t, w.SpawnProjectile(NewBullet(RolePlayer, 10, 10, 1, 100, 4, 10, 1)))

	// the other owner has its own pool
	assert.NotNil(t, w.SpawnProjectile(NewBullet(RoleOpponent, 10, 10, 1, 100, 4, 10, 1)))
	assert.Equal(t, MaxProjectilesPerOwner, w.ProjectileCount(RolePlayer))
}

func TestWorld_ObstaclesOverlapping(t *testing.T) {
	w := createTestWorld(t)

	hits := w.ObstaclesOverlapping(Rect{X: 395, Y: 400, W: 4, H: 4})
	require.Len(t, hits, 1)
	assert.Equal(t, 392.0, hits[0].X)

	// spans the wall and the ground
	both := w.ObstaclesOverlapping(Rect{X: 390, Y: 430, W: 20, H: 20})
	require.Len(t, both, 2)
	assert.Less(t, both[0].ID, both[1].ID)

	assert.Empty(t, w.ObstaclesOverlapping(Rect{X: 100, Y: 100, W: 10, H: 10}))
	assert.False(t, w.Blocked(Rect{X: 100, Y: 100, W: 10, H: 10}))

	// touching the top of the ground is not overlapping
	assert.False(t, w.Blocked(Rect{X: 100, Y: 400, W: 20, H: 40}))
}

func TestCharacter_DamageAndAmmo(t *testing.T) {
	c := NewCharacter(RoleOpponent, "outlaw", 0, 0, 10, 10, 30)
	c.Ammo = 1

	assert.True(t, c.HasAmmo())
	assert.True(t, c.SpendAmmo())
	assert.False(t, c.HasAmmo())
	assert.False(t, c.SpendAmmo())

	assert.False(t, c.TakeDamage(15))
	assert.Equal(t, 15, c.Health)
	assert.True(t, c.TakeDamage(40))
	assert.Equal(t, 0, c.Health, "health never goes below zero")
	assert.False(t, c.Alive)
	assert.False(t, c.TakeDamage(5), "dead characters take no further damage")

	c.Ammo = UnlimitedAmmo
	assert.True(t, c.SpendAmmo())
	assert.Equal(t, UnlimitedAmmo, c.Ammo)
}

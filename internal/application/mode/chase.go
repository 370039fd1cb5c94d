package mode

import (
	"github.com/younwookim/bountyhunter/internal/application/round"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// obstaclePlacementAttempts bounds the random search for obstacle spots
const obstaclePlacementAttempts = 50

// Chase is wave survival in a top-down arena.
// Clearing the last wave wins; losing all health loses.
type Chase struct {
	config config.ChaseConfig
	policy system.PursuitPolicy

	player       *entity.Character
	wave         int
	waveTime     float64
	spawnPending bool
}

// NewChase creates chase rules
func NewChase(cfg config.ChaseConfig) *Chase {
	return &Chase{
		config: cfg,
		policy: system.PursuitPolicy{Range: cfg.FireRange},
	}
}

func (c *Chase) Name() entity.Mode { return entity.ModeChase }

func (c *Chase) bounds() entity.Rect {
	return entity.Rect{W: c.config.Width, H: c.config.Height}
}

// Arena scatters obstacles away from the centre spawn
func (c *Chase) Arena(rng entity.Rand) (entity.Rect, []entity.Rect) {
	b := c.bounds()
	size := c.config.ObstacleSize
	cx, cy := b.Center()
	keepClear := entity.Rect{X: cx - 100, Y: cy - 100, W: 200, H: 200}

	var obstacles []entity.Rect
	for i := 0; i < c.config.ObstacleCount; i++ {
		for attempt := 0; attempt < obstaclePlacementAttempts; attempt++ {
			r := entity.Rect{
				X: between(rng, 50, b.W-50-size),
				Y: between(rng, 50, b.H-50-size),
				W: size,
				H: size,
			}
			if r.Overlaps(keepClear) || overlapsAny(r, obstacles) {
				continue
			}
			obstacles = append(obstacles, r)
			break
		}
	}
	return b, obstacles
}

func overlapsAny(r entity.Rect, rs []entity.Rect) bool {
	for _, o := range rs {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func (c *Chase) Gravity() bool          { return false }
func (c *Chase) Shape() entity.Shape    { return entity.ShapeCircle }
func (c *Chase) ContactMargin() float64 { return 0 }
func (c *Chase) TimeLimit() float64     { return c.config.TimeLimit }
func (c *Chase) KillBased() bool        { return false }

// Wave returns the current wave number
func (c *Chase) Wave() int { return c.wave }

// Setup spawns the player in the centre and the first wave
func (c *Chase) Setup(env *Env) error {
	pc := c.config.Player
	cx, cy := env.World.Bounds.Center()
	p := entity.NewCharacter(entity.RolePlayer, "gunslinger", cx-pc.Width/2, cy-pc.Height/2, pc.Width, pc.Height, pc.Health)
	p.Ammo = pc.Ammo
	p.Speed = pc.Speed

	c.player = env.World.SpawnCharacter(p)
	if c.player == nil {
		return errSpawnRejected
	}

	c.wave = 1
	c.spawnWave(env)
	return nil
}

// EnemiesForWave returns how many outlaws a wave sends
func (c *Chase) EnemiesForWave(wave int) int {
	return min(c.config.BaseEnemies+wave/2, c.config.MaxEnemies)
}

// spawnWave places the current wave's enemies along the arena edges
func (c *Chase) spawnWave(env *Env) {
	b := env.World.Bounds
	ec := c.config.Enemy
	skill := env.Scenario.OpponentSkill
	if skill <= 0 {
		skill = 0.5
	}
	maxSpeed := c.config.EnemySpeedMin + (c.config.EnemySpeedMax-c.config.EnemySpeedMin)*(0.5+skill/2)

	for i := 0; i < c.EnemiesForWave(c.wave); i++ {
		var x, y float64
		switch int(env.Rand.Float64() * 4) {
		case 0:
			x, y = between(env.Rand, b.X, b.Right()-ec.Width), b.Y
		case 1:
			x, y = b.Right()-ec.Width, between(env.Rand, b.Y, b.Bottom()-ec.Height)
		case 2:
			x, y = between(env.Rand, b.X, b.Right()-ec.Width), b.Bottom()-ec.Height
		default:
			x, y = b.X, between(env.Rand, b.Y, b.Bottom()-ec.Height)
		}

		e := entity.NewCharacter(entity.RoleOpponent, "outlaw", x, y, ec.Width, ec.Height, ec.Health)
		e.Ammo = ec.Ammo
		e.Speed = between(env.Rand, c.config.EnemySpeedMin, maxSpeed)
		e.Points = c.config.KillPoints
		e.FireCooldown = between(env.Rand, c.config.FireCooldownMin, c.config.FireCooldownMax)
		env.World.SpawnCharacter(e)
	}

	c.waveTime = 0
	cx, cy := b.Center()
	env.cue(entity.CueWave, entity.RoleOpponent, cx, cy)
}

// Control moves the player freely and fires toward the pointer
func (c *Chase) Control(env *Env, in system.InputState) int {
	p := c.player
	if p == nil || !p.Alive {
		return 0
	}

	p.VX = float64(in.Horizontal()) * p.Speed
	p.VY = float64(in.Vertical()) * p.Speed

	if in.Fire || in.Click {
		cx, cy := p.Center()
		b := entity.NewAimedBullet(entity.RolePlayer, cx, cy, in.PointerX, in.PointerY,
			c.config.BulletSpeed, c.config.BulletSize, ttl(env, c.config.BulletTTL), c.config.BulletDamage)
		if shoot(env, p, b) {
			return 1
		}
	}
	return 0
}

func (c *Chase) DecisionInterval(p entity.DifficultyProfile) float64 {
	return p.DecisionInterval()
}

func (c *Chase) Policy(*entity.Character) system.Policy { return c.policy }

// Act steers an outlaw and fires an aimed shot on a random cooldown
func (c *Chase) Act(env *Env, e *entity.Character, a system.Action) {
	a.Apply(e, false)
	if !a.Fire || e.FireCooldown > 0 {
		return
	}

	cx, cy := e.Center()
	b := entity.NewAimedBullet(entity.RoleOpponent, cx, cy, cx+a.AimX, cy+a.AimY,
		c.config.EnemyBulletSpeed, c.config.BulletSize, ttl(env, c.config.BulletTTL), c.config.EnemyBulletDamage)
	if shoot(env, e, b) {
		e.FireCooldown = between(env.Rand, c.config.FireCooldownMin, c.config.FireCooldownMax)
	}
}

// ResolveHit applies bullet damage; kills despawn the outlaw
func (c *Chase) ResolveHit(w *entity.World, ev entity.HitEvent) round.Effect {
	if ev.Kind == entity.HitObstacle {
		if ev.Owner == entity.RolePlayer {
			return round.Effect{Miss: true}
		}
		return round.Effect{}
	}

	target := w.Character(ev.TargetID)
	if target == nil || !target.Alive {
		return round.Effect{}
	}

	if ev.Owner == entity.RoleOpponent {
		return hitPlayer(target, c.config.EnemyBulletDamage)
	}

	e := round.Effect{Hit: true, DamageDealt: min(c.config.BulletDamage, target.Health)}
	if target.TakeDamage(c.config.BulletDamage) {
		e.Kills = 1
		e.Points = target.Points
		w.Despawn(target.ID)
	}
	return e
}

// ResolveContact drains the player's health while an outlaw touches them
func (c *Chase) ResolveContact(w *entity.World, ct entity.Contact) round.Effect {
	return hitPlayer(w.Character(ct.PlayerID), c.config.ContactDamage)
}

// Progress ticks fire cooldowns and advances waves.
// A wave is clear once no outlaws remain and it has run MinWaveTime.
func (c *Chase) Progress(env *Env) round.Effect {
	for _, e := range env.World.Opponents() {
		if e.FireCooldown > 0 {
			e.FireCooldown -= env.DT
		}
	}

	if c.spawnPending {
		return round.Effect{}
	}
	c.waveTime += env.DT
	if env.World.OpponentCount() > 0 || c.waveTime < c.config.MinWaveTime {
		return round.Effect{}
	}

	e := round.Effect{Points: c.wave * c.config.WavePoints}
	if c.wave >= c.config.MaxWaves {
		e.Outcome = entity.OutcomeWin
		return e
	}

	c.wave++
	e.Wave = c.wave
	if c.player != nil && c.player.Ammo != entity.UnlimitedAmmo {
		c.player.Ammo = min(c.player.Ammo+c.config.AmmoPerWave, c.config.MaxAmmo)
	}

	c.spawnPending = true
	env.After(env.Ticks(c.config.WaveDelay), func() {
		c.spawnPending = false
		c.spawnWave(env)
	})
	return e
}

package mode

import (
	"errors"

	"github.com/younwookim/bountyhunter/internal/application/round"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// errSpawnRejected is returned when the world refuses a setup spawn
var errSpawnRejected = errors.New("spawn rejected")

// Duel is a one-on-one gunfight on a platform arena with gravity.
// The first character hit ends the round.
type Duel struct {
	config config.DuelConfig
	arena  *config.Arena
	policy system.DuelPolicy

	player   *entity.Character
	opponent *entity.Character
}

// NewDuel creates duel rules on the given arena
func NewDuel(cfg config.DuelConfig, arena *config.Arena) *Duel {
	return &Duel{
		config: cfg,
		arena:  arena,
		policy: system.DuelPolicy{HeightGap: cfg.Player.Height / 2},
	}
}

func (d *Duel) Name() entity.Mode { return entity.ModeDuel }

func (d *Duel) Arena(entity.Rand) (entity.Rect, []entity.Rect) {
	return d.arena.Bounds(), d.arena.Obstacles
}

func (d *Duel) Gravity() bool          { return true }
func (d *Duel) Shape() entity.Shape    { return entity.ShapeRect }
func (d *Duel) ContactMargin() float64 { return 0 }
func (d *Duel) TimeLimit() float64     { return d.config.TimeLimit }
func (d *Duel) KillBased() bool        { return false }

// Setup places both fighters on their spawns.
// The scenario shifts each fighter horizontally.
func (d *Duel) Setup(env *Env) error {
	bounds := env.World.Bounds

	spawn := func(role entity.Role, key string, idx int, fc config.FighterConfig) *entity.Character {
		sp := d.arena.Spawns[key]
		x := sp.X
		if idx < len(env.Scenario.Positions) {
			x, _ = env.Scenario.Place(idx, bounds)
		}
		x = min(max(x, bounds.X), bounds.Right()-fc.Width)
		x = clearSpawnX(env.World, x, sp.Y, fc.Width, fc.Height, sp.X)

		c := entity.NewCharacter(role, key, x, sp.Y, fc.Width, fc.Height, fc.Health)
		c.Ammo = fc.Ammo
		c.Speed = fc.Speed
		return env.World.SpawnCharacter(c)
	}

	d.player = spawn(entity.RolePlayer, "player", 0, d.config.Player)
	d.opponent = spawn(entity.RoleOpponent, "opponent", 1, d.config.Opponent)
	if d.player == nil || d.opponent == nil {
		return errSpawnRejected
	}
	d.opponent.Speed = env.Profile.ApproachSpeed
	return nil
}

// clearSpawnX returns the x nearest to x where a w by h fighter at y is
// inside the bounds and clear of obstacles, or fallback when none is.
func clearSpawnX(world *entity.World, x, y, w, h, fallback float64) float64 {
	b := world.Bounds
	fits := func(x float64) bool {
		return x >= b.X && x+w <= b.Right() && !world.Blocked(entity.Rect{X: x, Y: y, W: w, H: h})
	}
	if fits(x) {
		return x
	}
	for d := 1.0; d <= b.W; d++ {
		if fits(x + d) {
			return x + d
		}
		if fits(x - d) {
			return x - d
		}
	}
	return fallback
}

// Control moves the player, jumps from the ground and fires forward
func (d *Duel) Control(env *Env, in system.InputState) int {
	p := d.player
	if p == nil || !p.Alive {
		return 0
	}

	p.VX = float64(in.Horizontal()) * p.Speed
	if (in.Jump || in.Up) && p.OnGround {
		d.jump(env, p)
	}

	if in.Fire || in.Click {
		cx, cy := p.Center()
		b := entity.NewBullet(entity.RolePlayer, cx, cy, p.Facing,
			d.config.BulletSpeed, d.config.BulletSize, ttl(env, d.config.BulletTTL), p.Health)
		if shoot(env, p, b) {
			return 1
		}
	}
	return 0
}

func (d *Duel) jump(env *Env, c *entity.Character) {
	c.VY = -d.config.JumpForce
	c.OnGround = false
	cx, _ := c.Center()
	env.cue(entity.CueJump, c.Role, cx, c.Bottom())
}

func (d *Duel) DecisionInterval(p entity.DifficultyProfile) float64 {
	return p.DecisionInterval()
}

func (d *Duel) Policy(*entity.Character) system.Policy { return d.policy }

// Act applies an opponent decision
func (d *Duel) Act(env *Env, c *entity.Character, a system.Action) {
	a.Apply(c, true)
	if a.Jump && c.OnGround {
		d.jump(env, c)
	}
	if a.Fire {
		dir := int(sign(a.AimX))
		if dir != 0 {
			c.Facing = dir
		}
		cx, cy := c.Center()
		b := entity.NewBullet(entity.RoleOpponent, cx, cy, c.Facing,
			env.Profile.ProjectileSpeed, d.config.BulletSize, ttl(env, d.config.BulletTTL), c.Health)
		shoot(env, c, b)
	}
}

// ResolveHit ends the round on the first character hit
func (d *Duel) ResolveHit(w *entity.World, ev entity.HitEvent) round.Effect {
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

	if ev.Owner == entity.RolePlayer {
		dealt := target.Health
		target.TakeDamage(target.Health)
		return round.Effect{
			Hit:         true,
			DamageDealt: dealt,
			Kills:       1,
			Points:      d.config.WinPoints,
			Outcome:     entity.OutcomeWin,
		}
	}

	e := hitPlayer(target, target.Health)
	e.Outcome = entity.OutcomeLoss
	return e
}

// ResolveContact is a no-op; fighters may stand together
func (d *Duel) ResolveContact(*entity.World, entity.Contact) round.Effect {
	return round.Effect{}
}

// Progress ends a round nobody can still win
func (d *Duel) Progress(env *Env) round.Effect {
	if d.player == nil || d.opponent == nil {
		return round.Effect{}
	}
	if d.player.HasAmmo() || d.opponent.HasAmmo() || len(env.World.Projectiles()) > 0 {
		return round.Effect{}
	}
	return round.Effect{Outcome: entity.OutcomeTimeout}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

package mode

import (
	"fmt"
	"math"

	"github.com/younwookim/bountyhunter/internal/application/round"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// Env is the host state a mode works against.
// The host owns it and replaces it on reset, so timers scheduled through
// After may capture it.
type Env struct {
	World    *entity.World
	Rand     entity.Rand
	Profile  entity.DifficultyProfile
	Scenario entity.Scenario
	DT       float64 // seconds per tick

	// After schedules fn to run after n ticks; cancelled on reset and stop
	After func(n int, fn func())
	// Cue emits a cosmetic event
	Cue func(entity.Cue)
}

func (e *Env) cue(kind entity.CueKind, role entity.Role, x, y float64) {
	if e.Cue != nil {
		e.Cue(entity.Cue{Kind: kind, Role: role, X: x, Y: y})
	}
}

// Ticks converts seconds to a tick count of at least 1
func (e *Env) Ticks(seconds float64) int {
	if e.DT <= 0 {
		return 1
	}
	n := int(math.Round(seconds / e.DT))
	if n < 1 {
		return 1
	}
	return n
}

// Mode holds the rules of one game mode for one round.
// A Mode carries round-scoped counters; create a fresh one per round.
type Mode interface {
	round.Rules

	Name() entity.Mode
	// Arena returns the world bounds and static obstacles
	Arena(rng entity.Rand) (entity.Rect, []entity.Rect)
	Gravity() bool
	Shape() entity.Shape
	ContactMargin() float64
	TimeLimit() float64
	// KillBased reports whether accuracy counts precise kills
	KillBased() bool

	// Setup spawns the round's characters once the round is active
	Setup(env *Env) error
	// Control applies player input and returns the shots fired
	Control(env *Env, in system.InputState) int
	// DecisionInterval is the policy cadence in seconds
	DecisionInterval(profile entity.DifficultyProfile) float64
	Policy(c *entity.Character) system.Policy
	// Act applies an opponent decision, including jumps and shots
	Act(env *Env, c *entity.Character, a system.Action)
	// Progress runs per-tick mode rules after collisions
	Progress(env *Env) round.Effect
}

// New creates the rules for a mode
func New(name entity.Mode, cfg *config.GameConfig) (Mode, error) {
	switch name {
	case entity.ModeDuel:
		arena := cfg.DuelArena
		if arena == nil {
			arena = config.DefaultArena()
		}
		return NewDuel(cfg.Duel, arena), nil
	case entity.ModeChase:
		return NewChase(cfg.Chase), nil
	case entity.ModeTracking:
		return NewTracking(cfg.Tracking), nil
	}
	return nil, fmt.Errorf("%w: %q", entity.ErrUnknownMode, name)
}

// shoot spawns p for c if it has ammo; ammo is only spent on success
func shoot(env *Env, c *entity.Character, p entity.Projectile) bool {
	if !c.Alive || !c.HasAmmo() {
		return false
	}
	spawned := env.World.SpawnProjectile(p)
	if spawned == nil {
		return false
	}
	c.SpendAmmo()
	cx, cy := spawned.Center()
	env.cue(entity.CueShot, c.Role, cx, cy)
	return true
}

// between returns a roll in [lo, hi)
func between(rng entity.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// ttl converts a lifetime in seconds to integration ticks
func ttl(env *Env, seconds float64) int {
	return env.Ticks(seconds)
}

// hitPlayer damages the player and reports the effect
func hitPlayer(player *entity.Character, damage int) round.Effect {
	if player == nil || !player.Alive || damage <= 0 {
		return round.Effect{}
	}
	e := round.Effect{DamageTaken: min(damage, player.Health)}
	if player.TakeDamage(damage) {
		e.Outcome = entity.OutcomeLoss
	}
	return e
}

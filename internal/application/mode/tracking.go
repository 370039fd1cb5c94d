package mode

import (
	"slices"

	"github.com/younwookim/bountyhunter/internal/application/round"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// minSpawnDistance keeps new animals away from the hunter
const minSpawnDistance = 150

// Tracking is a top-down hunt with hitscan shots at the pointer.
// Reaching the kill goal wins.
type Tracking struct {
	config  config.TrackingConfig
	species []string

	player *entity.Character
	ticks  int
	kills  int

	eagleActive   int // ticks left
	eagleCooldown int // ticks until eagle eye is ready again
	slowed        bool
}

// NewTracking creates tracking rules
func NewTracking(cfg config.TrackingConfig) *Tracking {
	species := make([]string, 0, len(cfg.Species))
	for name := range cfg.Species {
		species = append(species, name)
	}
	slices.Sort(species)

	return &Tracking{config: cfg, species: species}
}

func (t *Tracking) Name() entity.Mode { return entity.ModeTracking }

func (t *Tracking) Arena(entity.Rand) (entity.Rect, []entity.Rect) {
	return entity.Rect{W: t.config.Width, H: t.config.Height}, nil
}

func (t *Tracking) Gravity() bool          { return false }
func (t *Tracking) Shape() entity.Shape    { return entity.ShapeCircle }
func (t *Tracking) ContactMargin() float64 { return t.config.ProximityMargin }
func (t *Tracking) TimeLimit() float64     { return t.config.TimeLimit }
func (t *Tracking) KillBased() bool        { return true }

// Kills returns the animals brought down this round
func (t *Tracking) Kills() int { return t.kills }

// EagleEye returns the active and cooldown ticks left
func (t *Tracking) EagleEye() (active, cooldown int) {
	return t.eagleActive, t.eagleCooldown
}

// Setup places the hunter in the centre and releases the first animals
func (t *Tracking) Setup(env *Env) error {
	pc := t.config.Player
	cx, cy := env.World.Bounds.Center()
	p := entity.NewCharacter(entity.RolePlayer, "hunter", cx-pc.Width/2, cy-pc.Height/2, pc.Width, pc.Height, pc.Health)
	p.Ammo = pc.Ammo
	p.Speed = pc.Speed

	t.player = env.World.SpawnCharacter(p)
	if t.player == nil {
		return errSpawnRejected
	}

	for i := 0; i < t.config.InitialAnimals; i++ {
		t.spawnAnimal(env)
	}
	return nil
}

func (t *Tracking) spawnAnimal(env *Env) *entity.Character {
	if len(t.species) == 0 {
		return nil
	}
	name := t.species[int(env.Rand.Float64()*float64(len(t.species)))%len(t.species)]
	sp := t.config.Species[name]

	b := env.World.Bounds
	m := t.config.EdgeMargin
	px, py := t.player.Center()

	var x, y float64
	for attempt := 0; attempt < obstaclePlacementAttempts; attempt++ {
		x = between(env.Rand, b.X+m, b.Right()-m-sp.Size)
		y = between(env.Rand, b.Y+m, b.Bottom()-m-sp.Size)
		if entity.Distance(x+sp.Size/2, y+sp.Size/2, px, py) >= minSpawnDistance {
			break
		}
	}

	a := entity.NewCharacter(entity.RoleOpponent, name, x, y, sp.Size, sp.Size, sp.Health)
	a.Ammo = 0
	a.Speed = sp.Speed
	a.Points = sp.Points
	if t.slowed {
		a.TimeScale = t.config.SlowMotion
	}
	return env.World.SpawnCharacter(a)
}

// Control moves the hunter, toggles slow motion, triggers eagle eye and
// shoots a reticle at the pointer on click
func (t *Tracking) Control(env *Env, in system.InputState) int {
	p := t.player
	if p == nil || !p.Alive {
		return 0
	}

	p.VX = float64(in.Horizontal()) * p.Speed
	p.VY = float64(in.Vertical()) * p.Speed

	t.slowed = in.SlowMotion
	scale := 1.0
	if t.slowed {
		scale = t.config.SlowMotion
	}
	for _, a := range env.World.Opponents() {
		a.TimeScale = scale
	}

	if in.EagleEye && t.eagleActive == 0 && t.eagleCooldown == 0 {
		t.eagleActive = env.Ticks(t.config.EagleEye.Duration)
		px, py := p.Center()
		env.cue(entity.CueEagle, entity.RolePlayer, px, py)
	}

	if in.Click || in.Fire {
		r := entity.NewReticle(entity.RolePlayer, in.PointerX, in.PointerY, t.config.ShotRadius, 1)
		if shoot(env, p, r) {
			return 1
		}
	}
	return 0
}

func (t *Tracking) DecisionInterval(entity.DifficultyProfile) float64 {
	return t.config.WanderInterval
}

func (t *Tracking) Policy(*entity.Character) system.Policy { return system.WanderPolicy{} }

func (t *Tracking) Act(_ *Env, a *entity.Character, act system.Action) {
	act.Apply(a, false)
}

// ResolveHit wounds the animal; the killing shot scores its points and is
// precise when it lands within a quarter of the animal's size of its centre
func (t *Tracking) ResolveHit(w *entity.World, ev entity.HitEvent) round.Effect {
	if ev.Owner != entity.RolePlayer {
		return round.Effect{}
	}
	if ev.Kind == entity.HitObstacle {
		return round.Effect{Miss: true}
	}

	a := w.Character(ev.TargetID)
	if a == nil || !a.Alive {
		return round.Effect{}
	}

	e := round.Effect{Hit: true, DamageDealt: 1}
	if !a.TakeDamage(1) {
		return e
	}

	e.Kills = 1
	e.Points = a.Points
	ax, ay := a.Center()
	if entity.Distance(ev.X, ev.Y, ax, ay) <= a.W/4 {
		e.Precise = 1
	}
	w.Despawn(a.ID)

	t.kills++
	if t.kills >= t.config.KillGoal {
		e.Outcome = entity.OutcomeWin
	}
	return e
}

// ResolveContact drains the hunter while an animal is too close
func (t *Tracking) ResolveContact(w *entity.World, ct entity.Contact) round.Effect {
	return hitPlayer(w.Character(ct.PlayerID), t.config.ProximityDamage)
}

// Progress spawns animals, runs eagle eye and drops tracks
func (t *Tracking) Progress(env *Env) round.Effect {
	t.ticks++
	var e round.Effect

	if t.ticks%env.Ticks(t.config.SpawnInterval) == 0 && env.World.OpponentCount() < t.config.MaxAnimals {
		t.spawnAnimal(env)
	}

	switch {
	case t.eagleActive > 0:
		t.eagleActive--
		e.Tracked, e.Points = t.markInRange(env.World)
		if t.eagleActive == 0 {
			t.eagleCooldown = env.Ticks(t.config.EagleEye.Cooldown)
		}
	case t.eagleCooldown > 0:
		t.eagleCooldown--
	}

	if t.ticks%env.Ticks(t.config.TrackInterval) == 0 {
		for _, a := range env.World.Opponents() {
			ax, _ := a.Center()
			env.cue(entity.CueTrack, entity.RoleOpponent, ax, a.Bottom())
		}
	}
	return e
}

// markInRange tracks untracked animals near the hunter
func (t *Tracking) markInRange(w *entity.World) (marked, points int) {
	if t.player == nil {
		return 0, 0
	}
	px, py := t.player.Center()
	for _, a := range w.Opponents() {
		if a.Tracked {
			continue
		}
		ax, ay := a.Center()
		if entity.Distance(ax, ay, px, py) <= t.config.EagleEye.Range {
			a.Tracked = true
			marked++
			points += t.config.EagleEye.Points
		}
	}
	return marked, points
}

package fx

import (
	"math"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

const (
	particleLife  = 20
	trackLife     = 180
	maxParticles  = 256
	squashSeconds = 0.25
	flashSeconds  = 0.1
)

// Effects turns simulation cues into cosmetic entities.
// It has its own random source so visuals never disturb the simulation.
type Effects struct {
	world  donburi.World
	rng    *rand.Rand
	active bool

	live      int
	particles int
}

// NewEffects creates an effects world
func NewEffects(seed int64) *Effects {
	return &Effects{
		world:  donburi.NewWorld(),
		rng:    rand.New(rand.NewSource(seed)),
		active: true,
	}
}

// SetActive gates both cue intake and updates, e.g. while paused
func (e *Effects) SetActive(active bool) { e.active = active }

// Len returns the number of live effect entities
func (e *Effects) Len() int { return e.live }

func (e *Effects) create(c donburi.IComponentType) *donburi.Entry {
	e.live++
	return e.world.Entry(e.world.Create(c))
}

// Cue spawns the effect for one cue
func (e *Effects) Cue(c entity.Cue) {
	if !e.active {
		return
	}

	switch c.Kind {
	case entity.CueShot:
		e.flash(c.X, c.Y)
	case entity.CueHit:
		e.burst(c, 6, 80)
	case entity.CueKill:
		e.burst(c, 16, 140)
	case entity.CueJump:
		e.squash(c.Role, 1.25)
	case entity.CueLand:
		e.squash(c.Role, 0.75)
		e.burst(c, 4, 40)
	case entity.CueTrack:
		entry := e.create(Track)
		Track.SetValue(entry, TrackData{X: c.X, Y: c.Y, Life: trackLife})
	}
}

func (e *Effects) burst(c entity.Cue, n int, speed float64) {
	for i := 0; i < n && e.particles < maxParticles; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		v := speed * (0.5 + e.rng.Float64()/2)

		e.particles++
		entry := e.create(Particle)
		Particle.SetValue(entry, ParticleData{
			X:       c.X,
			Y:       c.Y,
			VX:      math.Cos(angle) * v,
			VY:      math.Sin(angle) * v,
			Life:    particleLife,
			MaxLife: particleLife,
			Kind:    c.Kind,
		})
	}
}

// squash restarts the scale tween of a role
func (e *Effects) squash(role entity.Role, scale float64) {
	tw := gween.New(float32(scale), 1, squashSeconds, ease.OutQuad)

	var found bool
	Squash.Each(e.world, func(entry *donburi.Entry) {
		s := Squash.Get(entry)
		if s.Role == role {
			s.Tween, s.Scale = tw, scale
			found = true
		}
	})
	if found {
		return
	}

	entry := e.create(Squash)
	Squash.SetValue(entry, SquashData{Role: role, Tween: tw, Scale: scale})
}

func (e *Effects) flash(x, y float64) {
	entry := e.create(Flash)
	Flash.SetValue(entry, FlashData{
		X:     x,
		Y:     y,
		Tween: gween.New(1, 0, flashSeconds, ease.Linear),
		Alpha: 1,
	})
}

// Update advances every effect by dt seconds and removes finished ones
func (e *Effects) Update(dt float64) {
	if !e.active {
		return
	}
	var done []*donburi.Entry

	Particle.Each(e.world, func(entry *donburi.Entry) {
		p := Particle.Get(entry)
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life--
		if p.Life <= 0 {
			done = append(done, entry)
			e.particles--
		}
	})

	Track.Each(e.world, func(entry *donburi.Entry) {
		t := Track.Get(entry)
		t.Life--
		if t.Life <= 0 {
			done = append(done, entry)
		}
	})

	Squash.Each(e.world, func(entry *donburi.Entry) {
		s := Squash.Get(entry)
		cur, finished := s.Tween.Update(float32(dt))
		s.Scale = float64(cur)
		if finished {
			done = append(done, entry)
		}
	})

	Flash.Each(e.world, func(entry *donburi.Entry) {
		f := Flash.Get(entry)
		cur, finished := f.Tween.Update(float32(dt))
		f.Alpha = float64(cur)
		if finished {
			done = append(done, entry)
		}
	})

	for _, entry := range done {
		entry.Remove()
	}
	e.live -= len(done)
}

// Clear removes every effect
func (e *Effects) Clear() {
	e.world = donburi.NewWorld()
	e.live, e.particles = 0, 0
}

// Scale returns the current vertical scale of a role's sprite
func (e *Effects) Scale(role entity.Role) float64 {
	scale := 1.0
	Squash.Each(e.world, func(entry *donburi.Entry) {
		if s := Squash.Get(entry); s.Role == role {
			scale = s.Scale
		}
	})
	return scale
}

// Particles calls fn for every live particle
func (e *Effects) Particles(fn func(ParticleData)) {
	Particle.Each(e.world, func(entry *donburi.Entry) { fn(*Particle.Get(entry)) })
}

// Tracks calls fn for every footprint
func (e *Effects) Tracks(fn func(TrackData)) {
	Track.Each(e.world, func(entry *donburi.Entry) { fn(*Track.Get(entry)) })
}

// Flashes calls fn for every muzzle flash
func (e *Effects) Flashes(fn func(FlashData)) {
	Flash.Each(e.world, func(entry *donburi.Entry) { fn(*Flash.Get(entry)) })
}

package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/solarlune/resolv"
)

// MaxProjectilesPerOwner caps concurrent projectiles for each role
const MaxProjectilesPerOwner = 20

const (
	solidTag       = "solid"
	broadphaseCell = 16
)

// ErrEmptyBounds is returned when a world is created without area
var ErrEmptyBounds = errors.New("world bounds must have positive size")

// World holds every live entity of a round.
// Characters and projectiles are kept in spawn order; despawned entities
// are removed immediately so iteration never sees them.
type World struct {
	Bounds Rect

	obstacles   []Obstacle
	characters  []*Character
	projectiles []*Projectile
	nextID      EntityID

	space  *resolv.Space
	solids map[*resolv.Object]int
	gate   func() bool
}

// NewWorld creates a world with static obstacles.
// Obstacles without area are skipped.
func NewWorld(bounds Rect, obstacles []Rect) (*World, error) {
	if bounds.Empty() || !Finite(bounds.X, bounds.Y, bounds.W, bounds.H) {
		return nil, fmt.Errorf("%w: %vx%v", ErrEmptyBounds, bounds.W, bounds.H)
	}

	w := &World{
		Bounds:      bounds,
		obstacles:   make([]Obstacle, 0, len(obstacles)),
		characters:  make([]*Character, 0, 16),
		projectiles: make([]*Projectile, 0, 2*MaxProjectilesPerOwner),
		solids:      make(map[*resolv.Object]int, len(obstacles)),
	}

	cellsW := int(bounds.Right()) + broadphaseCell
	cellsH := int(bounds.Bottom()) + broadphaseCell
	w.space = resolv.NewSpace(cellsW, cellsH, broadphaseCell, broadphaseCell)

	for _, r := range obstacles {
		if r.Empty() || !Finite(r.X, r.Y, r.W, r.H) {
			continue
		}
		w.nextID++
		o := Obstacle{ID: w.nextID, Rect: r}
		w.obstacles = append(w.obstacles, o)

		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, solidTag)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		w.space.Add(obj)
		w.solids[obj] = len(w.obstacles) - 1
	}

	return w, nil
}

// SetSpawnGate installs a predicate consulted on every spawn.
// Spawns are ignored while the gate returns false. A nil gate is open.
func (w *World) SetSpawnGate(gate func() bool) {
	w.gate = gate
}

func (w *World) spawnAllowed() bool {
	return w.gate == nil || w.gate()
}

// SpawnCharacter adds a character and assigns its ID.
// Returns nil when spawning is gated or the state is not finite.
func (w *World) SpawnCharacter(c Character) *Character {
	if !w.spawnAllowed() {
		return nil
	}
	if !Finite(c.X, c.Y, c.VX, c.VY, c.W, c.H) {
		return nil
	}
	w.nextID++
	c.ID = w.nextID
	if c.Facing == 0 {
		c.Facing = 1
	}
	ch := &c
	w.characters = append(w.characters, ch)
	return ch
}

// SpawnProjectile adds a projectile and assigns its ID.
// Returns nil when gated, not finite, or the owner is at its cap.
func (w *World) SpawnProjectile(p Projectile) *Projectile {
	if !w.spawnAllowed() {
		return nil
	}
	if !Finite(p.X, p.Y, p.VX, p.VY, p.W, p.H) {
		return nil
	}
	if w.ProjectileCount(p.Owner) >= MaxProjectilesPerOwner {
		return nil
	}
	w.nextID++
	p.ID = w.nextID
	pp := &p
	w.projectiles = append(w.projectiles, pp)
	return pp
}

// Despawn removes a character or projectile. Returns false if not found.
func (w *World) Despawn(id EntityID) bool {
	for i, p := range w.projectiles {
		if p.ID == id {
			w.projectiles = append(w.projectiles[:i], w.projectiles[i+1:]...)
			return true
		}
	}
	for i, c := range w.characters {
		if c.ID == id {
			w.characters = append(w.characters[:i], w.characters[i+1:]...)
			return true
		}
	}
	return false
}

// Characters returns live characters in spawn order.
// The slice must not be modified or retained across a despawn.
func (w *World) Characters() []*Character {
	return w.characters
}

// Projectiles returns live projectiles in spawn order.
// The slice must not be modified or retained across a despawn.
func (w *World) Projectiles() []*Projectile {
	return w.projectiles
}

// Obstacles returns the static obstacles
func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}

// Character finds a live character by ID
func (w *World) Character(id EntityID) *Character {
	for _, c := range w.characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Projectile finds a live projectile by ID
func (w *World) Projectile(id EntityID) *Projectile {
	for _, p := range w.projectiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Player returns the first player character, or nil
func (w *World) Player() *Character {
	for _, c := range w.characters {
		if c.Role == RolePlayer {
			return c
		}
	}
	return nil
}

// Opponents returns alive opponents in spawn order
func (w *World) Opponents() []*Character {
	out := make([]*Character, 0, len(w.characters))
	for _, c := range w.characters {
		if c.Role == RoleOpponent && c.Alive {
			out = append(out, c)
		}
	}
	return out
}

// OpponentCount returns the number of alive opponents
func (w *World) OpponentCount() int {
	n := 0
	for _, c := range w.characters {
		if c.Role == RoleOpponent && c.Alive {
			n++
		}
	}
	return n
}

// ProjectileCount returns the live projectile count for an owner
func (w *World) ProjectileCount(owner Role) int {
	n := 0
	for _, p := range w.projectiles {
		if p.Owner == owner {
			n++
		}
	}
	return n
}

// ObstaclesOverlapping returns obstacles whose area intersects r,
// in obstacle order.
func (w *World) ObstaclesOverlapping(r Rect) []Obstacle {
	if len(w.obstacles) == 0 || r.Empty() {
		return nil
	}

	probe := resolv.NewObject(r.X, r.Y, r.W, r.H)
	w.space.Add(probe)
	check := probe.Check(0, 0, solidTag)
	w.space.Remove(probe)
	if check == nil {
		return nil
	}

	var idx []int
	for _, obj := range check.ObjectsByTags(solidTag) {
		i, ok := w.solids[obj]
		if !ok || !w.obstacles[i].Overlaps(r) {
			continue
		}
		idx = append(idx, i)
	}
	if len(idx) == 0 {
		return nil
	}

	// resolv reports by cell; restore a stable order
	slices.Sort(idx)
	out := make([]Obstacle, 0, len(idx))
	last := -1
	for _, i := range idx {
		if i == last {
			continue
		}
		out = append(out, w.obstacles[i])
		last = i
	}
	return out
}

// Blocked reports whether r intersects any obstacle
func (w *World) Blocked(r Rect) bool {
	return len(w.ObstaclesOverlapping(r)) > 0
}

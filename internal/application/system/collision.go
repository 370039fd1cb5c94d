package system

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// CollisionSystem reports projectile impacts and character contacts.
// It never mutates the world.
type CollisionSystem struct {
	shape entity.Shape
}

// NewCollisionSystem creates a collision system using one overlap rule for
// every projectile/character pair.
func NewCollisionSystem(shape entity.Shape) *CollisionSystem {
	return &CollisionSystem{shape: shape}
}

// DetectHits returns at most one event per projectile, in spawn order.
// Obstacles take precedence over characters: cover blocks shots.
func (s *CollisionSystem) DetectHits(w *entity.World) []entity.HitEvent {
	var events []entity.HitEvent

	for _, p := range w.Projectiles() {
		cx, cy := p.Center()

		if obs := w.ObstaclesOverlapping(p.Rect()); len(obs) > 0 {
			events = append(events, entity.HitEvent{
				ProjectileID: p.ID,
				TargetID:     obs[0].ID,
				Kind:         entity.HitObstacle,
				Owner:        p.Owner,
				X:            cx,
				Y:            cy,
			})
			continue
		}

		for _, c := range w.Characters() {
			if !c.Alive || c.Role == p.Owner {
				continue
			}
			if s.projectileOverlaps(p, c) {
				events = append(events, entity.HitEvent{
					ProjectileID: p.ID,
					TargetID:     c.ID,
					Kind:         entity.HitCharacter,
					Owner:        p.Owner,
					X:            cx,
					Y:            cy,
				})
				break
			}
		}
	}

	return events
}

func (s *CollisionSystem) projectileOverlaps(p *entity.Projectile, c *entity.Character) bool {
	if s.shape == entity.ShapeCircle {
		px, py := p.Center()
		cx, cy := c.Center()
		return entity.CirclesOverlap(px, py, p.Radius(), cx, cy, c.Radius())
	}
	return p.Rect().Overlaps(c.Rect())
}

// DetectContacts reports alive opponents touching the player.
// margin widens the player's reach on every side.
func (s *CollisionSystem) DetectContacts(w *entity.World, margin float64) []entity.Contact {
	player := w.Player()
	if player == nil || !player.Alive {
		return nil
	}
	px, py := player.Center()

	var contacts []entity.Contact
	for _, c := range w.Characters() {
		if c.Role != entity.RoleOpponent || !c.Alive {
			continue
		}
		cx, cy := c.Center()
		dist := entity.Distance(px, py, cx, cy)

		var touching bool
		if s.shape == entity.ShapeCircle {
			touching = dist < player.Radius()+c.Radius()+margin
		} else {
			reach := entity.Rect{
				X: player.X - margin,
				Y: player.Y - margin,
				W: player.W + 2*margin,
				H: player.H + 2*margin,
			}
			touching = reach.Overlaps(c.Rect())
		}

		if touching {
			contacts = append(contacts, entity.Contact{
				PlayerID:   player.ID,
				OpponentID: c.ID,
				Distance:   dist,
			})
		}
	}

	return contacts
}

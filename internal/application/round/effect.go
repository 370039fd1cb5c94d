package round

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// Effect is the metrics change caused by one resolved event
type Effect struct {
	Hit         bool // a player shot connected
	Miss        bool // a player shot was wasted
	DamageDealt int
	DamageTaken int
	Kills       int
	Precise     int
	Points      int
	Tracked     int
	Wave        int // new wave number, zero leaves it unchanged

	// Outcome ends the round when not OutcomeNone
	Outcome entity.Outcome
}

// Rules turns mode-specific events into effects.
// Implementations may mutate the world (despawn, damage) but never metrics.
type Rules interface {
	ResolveHit(w *entity.World, ev entity.HitEvent) Effect
	ResolveContact(w *entity.World, c entity.Contact) Effect
}

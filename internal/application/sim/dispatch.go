package sim

import "github.com/younwookim/bountyhunter/internal/domain/entity"

// Stats is the advisory live snapshot sent every active tick
type Stats struct {
	Tick      int
	Elapsed   float64
	Health    int
	MaxHealth int
	Ammo      int
	Score     int
	Accuracy  float64
	Combo     int
	MaxCombo  int
	Wave      int
	Kills     int
	Opponents int
}

// Dispatcher receives everything the simulation reports outward.
// Calls are synchronous on the tick; implementations must not block.
type Dispatcher interface {
	// RoundEnded is called exactly once per round
	RoundEnded(entity.RoundResult)
	// LiveStats is best effort
	LiveStats(Stats)
	// Cue carries cosmetic events
	Cue(entity.Cue)
}

// Callbacks implements Dispatcher with optional funcs
type Callbacks struct {
	OnRoundEnded func(entity.RoundResult)
	OnLiveStats  func(Stats)
	OnCue        func(entity.Cue)
}

func (c Callbacks) RoundEnded(r entity.RoundResult) {
	if c.OnRoundEnded != nil {
		c.OnRoundEnded(r)
	}
}

func (c Callbacks) LiveStats(s Stats) {
	if c.OnLiveStats != nil {
		c.OnLiveStats(s)
	}
}

func (c Callbacks) Cue(cue entity.Cue) {
	if c.OnCue != nil {
		c.OnCue(cue)
	}
}

// Fanout forwards to several dispatchers in order
type Fanout []Dispatcher

func (f Fanout) RoundEnded(r entity.RoundResult) {
	for _, d := range f {
		d.RoundEnded(r)
	}
}

func (f Fanout) LiveStats(s Stats) {
	for _, d := range f {
		d.LiveStats(s)
	}
}

func (f Fanout) Cue(c entity.Cue) {
	for _, d := range f {
		d.Cue(c)
	}
}

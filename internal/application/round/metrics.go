package round

// Metrics accumulates the counters of one round
type Metrics struct {
	Shots       int
	Hits        int
	Misses      int
	Kills       int
	Precise     int // kills landed near the target's centre
	DamageDealt int
	DamageTaken int

	Ticks   int
	Elapsed float64 // seconds while active and not paused

	Combo    int
	MaxCombo int
	Score    int // running score before the final formula
	Wave     int
	Tracked  int

	AmmoStart int // highest ammo count seen; zero when unlimited
	AmmoLeft  int
}

// Accuracy returns hits/shots as a percentage, or 0 without shots
func (m Metrics) Accuracy() float64 {
	if m.Shots <= 0 {
		return 0
	}
	acc := float64(m.Hits) * 100 / float64(m.Shots)
	if acc > 100 {
		return 100
	}
	return acc
}

// PreciseAccuracy returns precise/kills as a percentage, or 0 without kills
func (m Metrics) PreciseAccuracy() float64 {
	if m.Kills <= 0 {
		return 0
	}
	return float64(m.Precise) * 100 / float64(m.Kills)
}

func (m *Metrics) hit() {
	m.Hits++
	m.Combo++
	if m.Combo > m.MaxCombo {
		m.MaxCombo = m.Combo
	}
}

func (m *Metrics) breakCombo() {
	m.Combo = 0
}

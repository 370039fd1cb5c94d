package entity

// Outcome is how a round ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeTimeout
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "win":
		*o = OutcomeWin
	case "loss":
		*o = OutcomeLoss
	case "timeout":
		*o = OutcomeTimeout
	default:
		*o = OutcomeNone
	}
	return nil
}

// Grade is the letter rating shown on the results screen
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps a performance score in [0,100] to a letter
func GradeFor(perf float64) Grade {
	switch {
	case perf >= 90:
		return GradeS
	case perf >= 80:
		return GradeA
	case perf >= 70:
		return GradeB
	case perf >= 50:
		return GradeC
	case perf >= 35:
		return GradeD
	default:
		return GradeF
	}
}

// RoundResult is produced exactly once per round
type RoundResult struct {
	RoundID    string     `json:"roundId"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Outcome    Outcome    `json:"outcome"`

	Score          int     `json:"score"`
	Accuracy       float64 `json:"accuracy"`
	ReactionTimeMs float64 `json:"reactionTimeMs"`
	StrategyRating float64 `json:"strategyRating"`

	Grade      Grade `json:"grade"`
	DurationMs int64 `json:"durationMs"`
	Kills      int   `json:"kills"`
	MaxCombo   int   `json:"maxCombo"`
	Wave       int   `json:"wave,omitempty"`
}

// Won reports whether the player won the round
func (r RoundResult) Won() bool {
	return r.Outcome == OutcomeWin
}

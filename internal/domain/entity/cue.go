package entity

// CueKind names a cosmetic event
type CueKind string

const (
	CueShot  CueKind = "shot"
	CueHit   CueKind = "hit"
	CueKill  CueKind = "kill"
	CueJump  CueKind = "jump"
	CueLand  CueKind = "land"
	CueTrack CueKind = "track"
	CueWave  CueKind = "wave"
	CueEagle CueKind = "eagle"
)

// Cue is a fire-and-forget signal for effects and sound.
// Nothing in the simulation depends on cues being delivered.
type Cue struct {
	Kind CueKind
	Role Role
	X, Y float64
}

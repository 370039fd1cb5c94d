package round

import (
	"errors"
	"fmt"

	"github.com/younwookim/bountyhunter/internal/application/state"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

var (
	// ErrInvalidTransition is returned for a lifecycle call in the wrong state
	ErrInvalidTransition = errors.New("invalid round transition")
	// ErrNotEnded is returned by Finalize before the round has ended
	ErrNotEnded = errors.New("round has not ended")
)

// Config parameterises a Machine for one mode and difficulty
type Config struct {
	Mode      entity.Mode
	Profile   entity.DifficultyProfile
	Scoring   config.ScoringConfig
	TimeLimit float64 // seconds; zero disables the time-out
	// KillBased scores accuracy and reaction time per kill instead of per shot
	KillBased bool
}

// Machine drives the round lifecycle and owns the round metrics
type Machine struct {
	cfg    Config
	rules  Rules
	scorer Scorer

	state   state.RoundState
	paused  bool
	roundID string
	metrics Metrics
	outcome entity.Outcome

	result     entity.RoundResult
	finalized  bool
	duplicates int

	// OnEnded is called once with the final result when the round ends
	OnEnded func(entity.RoundResult)
}

// NewMachine creates an idle round machine
func NewMachine(cfg Config, rules Rules) *Machine {
	return &Machine{
		cfg:    cfg,
		rules:  rules,
		scorer: NewScorer(cfg.Scoring, cfg.Profile.ScoreMultiplier, cfg.KillBased),
	}
}

// State returns the lifecycle state
func (m *Machine) State() state.RoundState { return m.state }

// Paused reports whether the active round is suspended
func (m *Machine) Paused() bool { return m.paused }

// Running reports whether the round accepts ticks
func (m *Machine) Running() bool { return m.state == state.StateActive && !m.paused }

// Metrics returns a copy of the current metrics
func (m *Machine) Metrics() Metrics { return m.metrics }

// Outcome returns how the round ended, or OutcomeNone
func (m *Machine) Outcome() entity.Outcome { return m.outcome }

// RoundID returns the id assigned at Start
func (m *Machine) RoundID() string { return m.roundID }

// Config returns the machine configuration
func (m *Machine) Config() Config { return m.cfg }

// Duplicates counts Finalize calls after the result was computed
func (m *Machine) Duplicates() int { return m.duplicates }

func (m *Machine) advance(next state.RoundState) error {
	if !m.state.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, m.state, next)
	}
	m.state = next
	return nil
}

// Start moves Idle to Intro
func (m *Machine) Start(roundID string) error {
	if err := m.advance(state.StateIntro); err != nil {
		return err
	}
	m.roundID = roundID
	return nil
}

// Begin moves Intro to Active
func (m *Machine) Begin() error {
	if err := m.advance(state.StateActive); err != nil {
		return err
	}
	if m.metrics.Wave == 0 {
		m.metrics.Wave = 1
	}
	return nil
}

// Pause suspends an active round
func (m *Machine) Pause() error {
	if m.state != state.StateActive || m.paused {
		return fmt.Errorf("%w: pause while %s", ErrInvalidTransition, m.describe())
	}
	m.paused = true
	return nil
}

// Resume continues a paused round
func (m *Machine) Resume() error {
	if m.state != state.StateActive || !m.paused {
		return fmt.Errorf("%w: resume while %s", ErrInvalidTransition, m.describe())
	}
	m.paused = false
	return nil
}

func (m *Machine) describe() string {
	if m.paused {
		return m.state.String() + " (paused)"
	}
	return m.state.String()
}

// RecordShots counts shots fired by the player
func (m *Machine) RecordShots(n int) {
	if !m.Running() || n <= 0 {
		return
	}
	m.metrics.Shots += n
}

// TrackAmmo records the player's current ammo.
// Unlimited ammo is ignored.
func (m *Machine) TrackAmmo(left int) {
	if left < 0 || m.state != state.StateActive {
		return
	}
	m.metrics.AmmoLeft = left
	if left > m.metrics.AmmoStart {
		m.metrics.AmmoStart = left
	}
}

// OnHit resolves a hit event through the mode rules.
// Ignored unless the round is running.
func (m *Machine) OnHit(w *entity.World, ev entity.HitEvent) Effect {
	if !m.Running() {
		return Effect{}
	}
	e := m.rules.ResolveHit(w, ev)
	m.Apply(e)
	return e
}

// OnContact resolves a contact through the mode rules
func (m *Machine) OnContact(w *entity.World, c entity.Contact) Effect {
	if !m.Running() {
		return Effect{}
	}
	e := m.rules.ResolveContact(w, c)
	m.Apply(e)
	return e
}

// Apply folds an effect into the metrics and ends the round on an outcome
func (m *Machine) Apply(e Effect) {
	if !m.Running() {
		return
	}

	mt := &m.metrics
	if e.Hit {
		mt.hit()
	}
	if e.Miss {
		mt.Misses++
		mt.breakCombo()
	}
	if e.DamageTaken > 0 {
		mt.DamageTaken += e.DamageTaken
		mt.breakCombo()
	}
	if e.DamageDealt > 0 {
		mt.DamageDealt += e.DamageDealt
	}
	mt.Kills += e.Kills
	mt.Precise += e.Precise
	mt.Score += e.Points
	mt.Tracked += e.Tracked
	if e.Wave > 0 {
		mt.Wave = e.Wave
	}

	if e.Outcome != entity.OutcomeNone {
		m.End(e.Outcome)
	}
}

// Advance accounts one tick of dt seconds and ends the round on time-out
func (m *Machine) Advance(dt float64) {
	if !m.Running() {
		return
	}
	m.metrics.Ticks++
	m.metrics.Elapsed += dt

	if m.cfg.TimeLimit > 0 && m.metrics.Elapsed >= m.cfg.TimeLimit {
		m.End(entity.OutcomeTimeout)
	}
}

// End moves Active to Ended and finalizes the result.
// Returns false if the round was not active; the first outcome wins.
func (m *Machine) End(outcome entity.Outcome) bool {
	if m.state != state.StateActive {
		return false
	}
	m.state = state.StateEnded
	m.paused = false
	m.outcome = outcome

	m.result = m.scorer.Result(m.metrics, outcome)
	m.result.RoundID = m.roundID
	m.result.Mode = m.cfg.Mode
	m.result.Difficulty = m.cfg.Profile.Name
	m.finalized = true

	if m.OnEnded != nil {
		m.OnEnded(m.result)
	}
	return true
}

// Finalize returns the round result.
// The result is computed once when the round ends; every call returns that
// same value and extra calls are counted as duplicates.
func (m *Machine) Finalize() (entity.RoundResult, error) {
	if !m.finalized {
		return entity.RoundResult{}, ErrNotEnded
	}
	m.duplicates++
	return m.result, nil
}

// Result returns the final result without counting a duplicate
func (m *Machine) Result() (entity.RoundResult, bool) {
	return m.result, m.finalized
}

// Reset returns to Idle with fresh metrics
func (m *Machine) Reset() {
	onEnded := m.OnEnded
	*m = Machine{
		cfg:     m.cfg,
		rules:   m.rules,
		scorer:  m.scorer,
		OnEnded: onEnded,
	}
}

package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/younwookim/bountyhunter/internal/application/mode"
	"github.com/younwookim/bountyhunter/internal/application/round"
	"github.com/younwookim/bountyhunter/internal/application/state"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

var (
	// ErrStopped is returned by lifecycle calls on a stopped host
	ErrStopped = errors.New("simulation host stopped")
	// ErrNoRound is returned when no round has been started
	ErrNoRound = errors.New("no round started")
)

// ScenarioSource supplies the setup of a round
type ScenarioSource interface {
	Scenario(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (entity.Scenario, error)
}

// Options configures a Host
type Options struct {
	Mode       entity.Mode
	Difficulty string
	Seed       int64
	// TickRate is ticks per second; zero uses the display framerate
	TickRate int

	Logger     *slog.Logger
	Dispatcher Dispatcher
	Scenarios  ScenarioSource
	// WrapPolicy decorates every opponent policy, e.g. with a remote one
	WrapPolicy func(system.Policy) system.Policy
}

// Host owns the world, metrics and round state and is their only writer.
// It is not safe for concurrent use; drive it from one goroutine.
type Host struct {
	cfg      *config.GameConfig
	opts     Options
	log      *slog.Logger
	dispatch Dispatcher
	dt       float64

	rng       *rand.Rand
	physics   *system.PhysicsSystem
	collision *system.CollisionSystem

	mode     mode.Mode
	profile  entity.DifficultyProfile
	scenario entity.Scenario
	world    *entity.World
	machine  *round.Machine
	env      *mode.Env
	policies map[entity.EntityID]system.Policy

	timers     timerQueue
	introTicks int
	tick       int
	faults     int
	stopped    bool
}

// New creates a host for one mode. Rounds are created by Start.
func New(cfg *config.GameConfig, opts Options) (*Host, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if _, err := mode.New(opts.Mode, cfg); err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = Callbacks{}
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = cfg.Display.Framerate
	}
	if rate <= 0 {
		rate = 60
	}

	return &Host{
		cfg:      cfg,
		opts:     opts,
		log:      opts.Logger.With("mode", string(opts.Mode)),
		dispatch: opts.Dispatcher,
		dt:       1 / float64(rate),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		physics:  system.NewPhysicsSystem(&cfg.Physics),
	}, nil
}

// DT returns the seconds simulated per tick
func (h *Host) DT() float64 { return h.dt }

// World returns the current world, or nil before Start
func (h *Host) World() *entity.World { return h.world }

// Mode returns the current mode rules, or nil before Start
func (h *Host) Mode() mode.Mode { return h.mode }

// Profile returns the resolved difficulty profile
func (h *Host) Profile() entity.DifficultyProfile { return h.profile }

// Scenario returns the scenario of the current round
func (h *Host) Scenario() entity.Scenario { return h.scenario }

// Faults counts recovered panics and repaired entities
func (h *Host) Faults() int { return h.faults }

// Ticks returns the number of simulated ticks this round
func (h *Host) Ticks() int { return h.tick }

// Stopped reports whether Stop was called
func (h *Host) Stopped() bool { return h.stopped }

// State returns the round state; Idle when no round exists
func (h *Host) State() state.RoundState {
	if h.machine == nil {
		return state.StateIdle
	}
	return h.machine.State()
}

// Paused reports whether the active round is suspended
func (h *Host) Paused() bool {
	return h.machine != nil && h.machine.Paused()
}

// Metrics returns the current round metrics
func (h *Host) Metrics() round.Metrics {
	if h.machine == nil {
		return round.Metrics{}
	}
	return h.machine.Metrics()
}

// Result returns the final result once the round has ended
func (h *Host) Result() (entity.RoundResult, bool) {
	if h.machine == nil {
		return entity.RoundResult{}, false
	}
	return h.machine.Result()
}

// Start prepares a round and moves it to Intro.
// Unknown difficulties and failing scenario sources fall back to defaults.
func (h *Host) Start(ctx context.Context) error {
	if h.stopped {
		return ErrStopped
	}
	if h.machine != nil {
		return fmt.Errorf("%w: start while %s", round.ErrInvalidTransition, h.machine.State())
	}

	profile, err := h.cfg.Profile(h.opts.Difficulty)
	if err != nil {
		h.log.Warn("falling back to default difficulty", "requested", h.opts.Difficulty, "using", string(profile.Name), "error", err)
	}

	m, err := mode.New(h.opts.Mode, h.cfg)
	if err != nil {
		return err
	}

	bounds, obstacles := m.Arena(h.rng)
	world, err := entity.NewWorld(bounds, obstacles)
	if err != nil {
		return fmt.Errorf("failed to create world: %w", err)
	}

	scenario := h.fetchScenario(ctx, profile.Name)

	machine := round.NewMachine(round.Config{
		Mode:      h.opts.Mode,
		Profile:   profile,
		Scoring:   h.cfg.ScoringFor(h.opts.Mode),
		TimeLimit: m.TimeLimit(),
		KillBased: m.KillBased(),
	}, m)
	machine.OnEnded = h.roundEnded

	id, err := uuid.NewRandomFromReader(h.rng)
	if err != nil {
		return fmt.Errorf("failed to create round id: %w", err)
	}
	if err := machine.Start(id.String()); err != nil {
		return err
	}

	world.SetSpawnGate(machine.Running)

	h.mode = m
	h.profile = profile
	h.scenario = scenario
	h.world = world
	h.machine = machine
	h.collision = system.NewCollisionSystem(m.Shape())
	h.policies = make(map[entity.EntityID]system.Policy)
	h.introTicks = int(math.Round(h.cfg.Round.IntroSeconds / h.dt))
	h.tick = 0
	h.env = &mode.Env{
		World:    world,
		Rand:     h.rng,
		Profile:  profile,
		Scenario: scenario,
		DT:       h.dt,
		After:    h.timers.After,
		Cue:      h.cue,
	}

	h.log.Info("round started", "round", id.String(), "difficulty", string(profile.Name), "environment", scenario.Environment)
	return nil
}

// fetchScenario always draws the local scenario first so the RNG stream is
// the same whether or not the source answers.
func (h *Host) fetchScenario(ctx context.Context, diff entity.Difficulty) entity.Scenario {
	local := entity.LocalScenario(h.opts.Mode, diff, h.rng)
	if h.opts.Scenarios == nil {
		return local
	}

	sc, err := h.opts.Scenarios.Scenario(ctx, h.opts.Mode, diff)
	if err == nil {
		err = sc.Validate()
	}
	if err != nil {
		h.log.Warn("using local scenario", "error", err)
		return local
	}
	return sc
}

// Begin moves Intro to Active and spawns the round's characters
func (h *Host) Begin() error {
	if h.stopped {
		return ErrStopped
	}
	if h.machine == nil {
		return ErrNoRound
	}
	if err := h.machine.Begin(); err != nil {
		return err
	}

	if err := h.mode.Setup(h.env); err != nil {
		h.log.Error("round setup failed", "error", err)
		h.machine.End(entity.OutcomeNone)
		return fmt.Errorf("failed to set up round: %w", err)
	}

	interval := h.mode.DecisionInterval(h.profile)
	for _, c := range h.world.Opponents() {
		c.DecisionTimer = interval
	}
	if p := h.world.Player(); p != nil {
		h.machine.TrackAmmo(p.Ammo)
	}
	return nil
}

// Pause suspends the active round
func (h *Host) Pause() error {
	if h.machine == nil {
		return ErrNoRound
	}
	return h.machine.Pause()
}

// Resume continues a paused round
func (h *Host) Resume() error {
	if h.machine == nil {
		return ErrNoRound
	}
	return h.machine.Resume()
}

// Reset cancels pending timers and returns to Idle with a fresh world
func (h *Host) Reset() {
	h.timers.clear()
	h.mode = nil
	h.world = nil
	h.machine = nil
	h.env = nil
	h.policies = nil
	h.scenario = entity.Scenario{}
	h.introTicks = 0
	h.tick = 0
}

// Stop cancels pending timers and stops ticking for good.
// Safe to call more than once.
func (h *Host) Stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	h.timers.clear()
	h.log.Info("simulation stopped", "ticks", h.tick, "faults", h.faults)
}

// Tick advances the simulation by one step with the given input.
// Does nothing while paused, stopped or outside Intro/Active.
func (h *Host) Tick(in system.InputState) {
	if h.stopped || h.machine == nil {
		return
	}

	switch h.machine.State() {
	case state.StateIntro:
		if h.cfg.Round.AutoBegin {
			h.introTicks--
			if h.introTicks <= 0 {
				if err := h.Begin(); err != nil {
					h.log.Error("auto begin failed", "error", err)
				}
			}
		}
		return
	case state.StateActive:
		if h.machine.Paused() {
			return
		}
	default:
		return
	}

	h.tick++
	var report system.Report

	steps := []struct {
		name string
		fn   func()
	}{
		{"input", func() { h.applyInput(in) }},
		{"timers", h.timers.advance},
		{"integrate", func() { report = h.integrate() }},
		{"expired", func() { h.expired(report) }},
		{"hits", h.hits},
		{"contacts", h.contacts},
		{"progress", h.progress},
		{"advance", func() { h.machine.Advance(h.dt) }},
		{"decide", h.decide},
	}
	for _, s := range steps {
		if !h.machine.Running() {
			break
		}
		h.guard(s.name, s.fn)
	}

	if h.machine.Running() {
		h.guard("stats", func() { h.dispatch.LiveStats(h.Stats()) })
	}
}

// guard runs one tick step and turns a panic into a logged fault
func (h *Host) guard(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.faults++
			h.log.Error("tick step failed", "step", step, "tick", h.tick, "panic", r)
		}
	}()
	fn()
}

func (h *Host) applyInput(in system.InputState) {
	shots := h.mode.Control(h.env, in)
	h.machine.RecordShots(shots)
}

func (h *Host) integrate() system.Report {
	gravity := h.mode.Gravity()

	var airborne map[entity.EntityID]bool
	if gravity {
		airborne = make(map[entity.EntityID]bool)
		for _, c := range h.world.Characters() {
			if !c.OnGround {
				airborne[c.ID] = true
			}
		}
	}

	report := h.physics.Integrate(h.world, h.dt, gravity)
	if report.Faults > 0 {
		h.faults += report.Faults
		h.log.Warn("repaired non-finite entities", "count", report.Faults, "tick", h.tick)
	}

	for _, c := range h.world.Characters() {
		if airborne[c.ID] && c.OnGround {
			cx, _ := c.Center()
			h.cue(entity.Cue{Kind: entity.CueLand, Role: c.Role, X: cx, Y: c.Bottom()})
		}
	}
	return report
}

// expired counts player shots that left the world or timed out as misses
func (h *Host) expired(report system.Report) {
	for _, p := range report.Expired {
		if p.Owner == entity.RolePlayer {
			h.machine.Apply(round.Effect{Miss: true})
		}
	}
}

func (h *Host) hits() {
	events := h.collision.DetectHits(h.world)
	for _, ev := range events {
		h.world.Despawn(ev.ProjectileID)
	}

	for _, ev := range events {
		e := h.machine.OnHit(h.world, ev)
		if e.Hit {
			h.cue(entity.Cue{Kind: entity.CueHit, Role: ev.Owner, X: ev.X, Y: ev.Y})
		}
		if e.Kills > 0 {
			h.cue(entity.Cue{Kind: entity.CueKill, Role: ev.Owner, X: ev.X, Y: ev.Y})
		}
	}
}

func (h *Host) contacts() {
	for _, c := range h.collision.DetectContacts(h.world, h.mode.ContactMargin()) {
		h.machine.OnContact(h.world, c)
	}
}

func (h *Host) progress() {
	h.machine.Apply(h.mode.Progress(h.env))
	if p := h.world.Player(); p != nil {
		h.machine.TrackAmmo(p.Ammo)
	}
}

// decide runs opponent policies on their cadence
func (h *Host) decide() {
	target := h.world.Player()
	interval := h.mode.DecisionInterval(h.profile)

	for _, c := range h.world.Opponents() {
		c.SinceDecision += h.dt
		c.DecisionTimer -= h.dt
		if c.DecisionTimer > 0 {
			continue
		}
		c.DecisionTimer += interval
		if c.DecisionTimer <= 0 {
			c.DecisionTimer = interval
		}

		view := system.View{World: h.world, Self: c, Target: target, Elapsed: c.SinceDecision}
		a := h.policy(c).Decide(view, h.profile, h.rng)
		c.SinceDecision = 0
		h.mode.Act(h.env, c, a)
	}
}

func (h *Host) policy(c *entity.Character) system.Policy {
	if p, ok := h.policies[c.ID]; ok {
		return p
	}
	p := h.mode.Policy(c)
	if h.opts.WrapPolicy != nil {
		p = h.opts.WrapPolicy(p)
	}
	h.policies[c.ID] = p
	return p
}

// Stats builds the live snapshot
func (h *Host) Stats() Stats {
	m := h.Metrics()
	s := Stats{
		Tick:     h.tick,
		Elapsed:  m.Elapsed,
		Score:    m.Score,
		Combo:    m.Combo,
		MaxCombo: m.MaxCombo,
		Wave:     m.Wave,
		Kills:    m.Kills,
		Accuracy: m.Accuracy(),
	}
	if h.machine != nil && h.machine.Config().KillBased {
		s.Accuracy = m.PreciseAccuracy()
	}
	if h.world != nil {
		if p := h.world.Player(); p != nil {
			s.Health, s.MaxHealth, s.Ammo = p.Health, p.MaxHealth, p.Ammo
		}
		s.Opponents = h.world.OpponentCount()
	}
	return s
}

func (h *Host) cue(c entity.Cue) {
	defer func() {
		if r := recover(); r != nil {
			h.faults++
			h.log.Error("cue dispatch failed", "cue", string(c.Kind), "panic", r)
		}
	}()
	h.dispatch.Cue(c)
}

func (h *Host) roundEnded(r entity.RoundResult) {
	h.timers.clear()
	h.log.Info("round ended", "round", r.RoundID, "outcome", r.Outcome.String(), "score", r.Score)

	defer func() {
		if rec := recover(); rec != nil {
			h.faults++
			h.log.Error("round end dispatch failed", "panic", rec)
		}
	}()
	h.dispatch.RoundEnded(r)
}

// Package playing provides the scene that runs one round.
package playing

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/bountyhunter/internal/application/fx"
	"github.com/younwookim/bountyhunter/internal/application/replay"
	"github.com/younwookim/bountyhunter/internal/application/scene"
	"github.com/younwookim/bountyhunter/internal/application/sim"
	"github.com/younwookim/bountyhunter/internal/application/state"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// ResultSaver stores finished rounds
type ResultSaver interface {
	Save(entity.RoundResult) error
}

// Options configures a Playing scene
type Options struct {
	Mode       entity.Mode
	Difficulty string
	// Seed of the round; zero draws one from the clock
	Seed int64

	Scenarios  sim.ScenarioSource
	WrapPolicy func(system.Policy) system.Policy
	Logger     *slog.Logger
	Store      ResultSaver

	// Record enables input recording; RecordPath empty generates a name
	Record     bool
	RecordPath string

	// Finished builds the scene shown after the round ends
	Finished func(entity.RoundResult) scene.Scene
}

// Playing is the main gameplay scene
type Playing struct {
	config  *config.GameConfig
	opts    Options
	host    *sim.Host
	effects *fx.Effects
	dt      float64
	seed    int64

	screenW int
	screenH int

	input    func() system.InputState
	recorder *replay.Recorder

	stats    sim.Stats
	result   *entity.RoundResult
	startErr error
}

// New creates a Playing scene. The round starts on OnEnter.
func New(cfg *config.GameConfig, opts Options) (*Playing, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &Playing{
		config:  cfg,
		opts:    opts,
		effects: fx.NewEffects(seed),
		seed:    seed,
		screenW: cfg.Display.ScreenWidth,
		screenH: cfg.Display.ScreenHeight,
		input:   readInput,
	}

	host, err := sim.New(cfg, sim.Options{
		Mode:       opts.Mode,
		Difficulty: opts.Difficulty,
		Seed:       seed,
		Logger:     opts.Logger,
		Scenarios:  opts.Scenarios,
		WrapPolicy: opts.WrapPolicy,
		Dispatcher: sim.Callbacks{
			OnRoundEnded: p.roundEnded,
			OnLiveStats:  func(s sim.Stats) { p.stats = s },
			OnCue:        p.effects.Cue,
		},
	})
	if err != nil {
		return nil, err
	}
	p.host = host
	p.dt = host.DT()

	if opts.Record {
		p.recorder = replay.NewRecorder(seed, opts.Mode, opts.Difficulty, int(1/p.dt+0.5))
		log.Printf("Recording enabled (seed: %d)", seed)
	}

	return p, nil
}

// OnEnter starts the round (implements scene.Scene)
func (p *Playing) OnEnter() {
	if p.host.State() != state.StateIdle {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := p.host.Start(ctx); err != nil {
		p.startErr = err
		log.Printf("Failed to start round: %v", err)
		return
	}
	if p.recorder != nil {
		p.recorder.SetScenario(p.host.Scenario())
	}
}

// OnExit stops the host and saves any recording (implements scene.Scene)
func (p *Playing) OnExit() {
	p.host.Stop()
	p.finishRecording()
}

// Update ticks the simulation once (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.startErr != nil {
		return nil, fmt.Errorf("failed to start round: %w", p.startErr)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}

	in := p.input()
	if p.consumesTick() && p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	p.host.Tick(in)
	p.effects.Update(p.dt)

	if p.result != nil && p.opts.Finished != nil {
		return p.opts.Finished(*p.result), nil
	}
	return nil, nil
}

// consumesTick reports whether the next host tick will do anything
func (p *Playing) consumesTick() bool {
	switch p.host.State() {
	case state.StateIntro:
		return true
	case state.StateActive:
		return !p.host.Paused()
	default:
		return false
	}
}

func (p *Playing) togglePause() {
	var err error
	if p.host.Paused() {
		err = p.host.Resume()
	} else {
		err = p.host.Pause()
	}
	if err != nil {
		return
	}
	p.effects.SetActive(!p.host.Paused())
}

func (p *Playing) roundEnded(r entity.RoundResult) {
	p.result = &r
	log.Printf("Round %s ended: %s score=%d accuracy=%.1f reaction=%.0fms strategy=%.1f grade=%s",
		r.RoundID, r.Outcome, r.Score, r.Accuracy, r.ReactionTimeMs, r.StrategyRating, r.Grade)

	if p.opts.Store != nil {
		if err := p.opts.Store.Save(r); err != nil {
			log.Printf("Failed to save result: %v", err)
		}
	}
	p.finishRecording()
}

// finishRecording saves the recording once and stops it
func (p *Playing) finishRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.saveRecording()
	p.recorder.Stop()
}

// saveRecording writes what has been recorded so far
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename(p.opts.Mode)
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Host returns the simulation host
func (p *Playing) Host() *sim.Host { return p.host }

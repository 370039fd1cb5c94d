package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/younwookim/bountyhunter/internal/application/game"
	"github.com/younwookim/bountyhunter/internal/application/scene"
	"github.com/younwookim/bountyhunter/internal/application/scene/playing"
	"github.com/younwookim/bountyhunter/internal/application/scene/results"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
	"github.com/younwookim/bountyhunter/internal/infrastructure/remote"
	"github.com/younwookim/bountyhunter/internal/infrastructure/storage"
)

const appName = "bountyhunter"

// session builds the scenes of one game launch
type session struct {
	cfg     *config.GameConfig
	opts    playing.Options
	store   *storage.ResultStore
	decider *remote.DecisionClient
}

// newRound builds a fresh Playing scene; every round after the first draws a new seed
func (s *session) newRound() (scene.Scene, error) {
	opts := s.opts
	opts.Finished = s.finished
	if s.decider != nil && s.decider.Connected() {
		s.decider.NewRound()
		opts.WrapPolicy = s.decider.Wrap
	}
	s.opts.Seed = 0
	return playing.New(s.cfg, opts)
}

func (s *session) finished(r entity.RoundResult) scene.Scene {
	var best *entity.RoundResult
	if s.store != nil {
		if e, ok, err := s.store.Best(r.Mode); err != nil {
			log.Printf("Failed to read leaderboard: %v", err)
		} else if ok {
			best = &e.RoundResult
		}
	}
	return results.New(r, best, s.cfg.Display.ScreenWidth, s.cfg.Display.ScreenHeight, s.newRound)
}

// loadConfig reads configs from dir, or the embedded copy when dir is empty
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	modeFlag := flag.String("mode", envOr("BOUNTY_MODE", "duel"), "Game mode: duel, chase or tracking")
	difficultyFlag := flag.String("difficulty", envOr("BOUNTY_DIFFICULTY", "medium"), "Difficulty: easy, medium or hard")
	seedFlag := flag.Int64("seed", 0, "Seed of the first round (0 = time based)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Re-simulate a recording headlessly and print the result")
	configFlag := flag.String("config", "", "Config directory (default: embedded configs)")
	scenarioURL := flag.String("scenario-url", os.Getenv("BOUNTY_SCENARIO_URL"), "Base URL of the scenario service")
	decisionURL := flag.String("decision-url", os.Getenv("BOUNTY_DECISION_URL"), "WebSocket URL of the decision service")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		if err := runReplay(context.Background(), cfg, *replayFlag, os.Stdout, logger); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	m, err := entity.ParseMode(*modeFlag)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	s := &session{
		cfg: cfg,
		opts: playing.Options{
			Mode:       m,
			Difficulty: *difficultyFlag,
			Seed:       *seedFlag,
			Logger:     logger,
			Record:     *recordFlag != "",
			RecordPath: *recordFlag,
		},
	}

	if store, err := storage.OpenResultStore(envOr("BOUNTY_APP_NAME", appName)); err != nil {
		log.Printf("Results will not be saved: %v", err)
	} else {
		s.store = store
		s.opts.Store = store
	}

	if *scenarioURL != "" {
		s.opts.Scenarios = remote.NewScenarioClient(*scenarioURL, 2*time.Second)
	}

	if *decisionURL != "" {
		diff, err := entity.ParseDifficulty(*difficultyFlag)
		if err != nil {
			diff = entity.DefaultDifficulty
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		s.decider, err = remote.DialDecisions(ctx, *decisionURL, m, diff, logger)
		cancel()
		if err != nil {
			log.Printf("Decision service unavailable, using local opponents: %v", err)
		} else {
			defer s.decider.Close()
		}
	}

	first, err := s.newRound()
	if err != nil {
		log.Fatalf("Failed to create round: %v", err)
	}

	g := game.New(first, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, cfg.Display.Framerate)

	ebiten.SetWindowSize(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	ebiten.SetWindowTitle("Bounty Hunter")
	ebiten.SetTPS(cfg.Display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	// closing the window skips scene exit; OnExit is idempotent
	g.Current().OnExit()
}

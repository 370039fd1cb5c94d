// Command aiservice serves opponent scenarios over HTTP and opponent
// decisions over a websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
	"github.com/younwookim/bountyhunter/internal/infrastructure/remote"
)

func newMux(cfg *config.GameConfig, seed int64, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(remote.ScenarioPath, remote.NewScenarioHandler(seed))
	mux.Handle(remote.DecisionPath, remote.NewDecisionServer(cfg, seed, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", os.Getenv("BOUNTY_AI_ADDR"), "Listen address")
	configDir := flag.String("config", "", "Config directory (default: built-in config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time based)")
	flag.Parse()

	if *addr == "" {
		*addr = ":8000"
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Default()
	if *configDir != "" {
		loaded, err := config.NewLoader(*configDir).LoadAll()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newMux(cfg, *seed, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("ai service listening", "addr", *addr, "seed", *seed)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

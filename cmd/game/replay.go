package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/younwookim/bountyhunter/internal/application/replay"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// runReplay re-simulates a recording and writes a summary to w
func runReplay(ctx context.Context, cfg *config.GameConfig, path string, w io.Writer, logger *slog.Logger) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}

	summary, err := replay.Run(ctx, cfg, *data, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "replay %s: mode=%s difficulty=%s seed=%d frames=%d\n",
		path, data.Mode, data.Difficulty, data.Seed, len(data.Frames))
	if !summary.Ended {
		fmt.Fprintf(w, "round still running after %d active ticks (score %d, health %d)\n",
			summary.Ticks, summary.Stats.Score, summary.Stats.Health)
		return nil
	}

	r := summary.Result
	fmt.Fprintf(w, "outcome=%s score=%d accuracy=%.1f reaction=%.0fms strategy=%.1f grade=%s kills=%d\n",
		r.Outcome, r.Score, r.Accuracy, r.ReactionTimeMs, r.StrategyRating, r.Grade, r.Kills)
	if summary.Faults > 0 {
		fmt.Fprintf(w, "faults=%d\n", summary.Faults)
	}
	return nil
}

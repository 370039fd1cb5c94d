package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bountyhunter/internal/application/replay"
	"github.com/younwookim/bountyhunter/internal/application/scene/playing"
	"github.com/younwookim/bountyhunter/internal/application/scene/results"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

func writeReplay(t *testing.T, data replay.ReplayData) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replay.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestLoadConfig_Embedded(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.NotNil(t, cfg.DuelArena, "the duel arena is loaded from its tmx map")
	assert.Len(t, cfg.Difficulty, 3)
}

func TestLoadConfig_MissingDir(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunReplay(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		frames int
		want   string
	}{
		{"intro only", 30, "round still running after 0 active ticks"},
		{"idle until time up", 60 * 200, "outcome="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeReplay(t, replay.CreateTestReplayData(tt.frames, entity.ModeDuel, 0, 0))

			var out bytes.Buffer
			require.NoError(t, runReplay(t.Context(), cfg, path, &out, nil))
			assert.Contains(t, out.String(), "mode=duel")
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunReplay_Errors(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	var out bytes.Buffer
	err = runReplay(t.Context(), cfg, filepath.Join(t.TempDir(), "missing.json"), &out, nil)
	assert.Error(t, err)

	data := replay.CreateTestReplayData(10, "poker", 0, 0)
	err = runReplay(t.Context(), cfg, writeReplay(t, data), &out, nil)
	assert.ErrorIs(t, err, entity.ErrUnknownMode)
	assert.Empty(t, out.String())
}

func TestSession_Scenes(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	s := &session{cfg: cfg, opts: playing.Options{Mode: entity.ModeChase, Difficulty: "easy", Seed: 7}}

	first, err := s.newRound()
	require.NoError(t, err)
	require.IsType(t, &playing.Playing{}, first)
	assert.Zero(t, s.opts.Seed, "later rounds draw their own seed")

	next := s.finished(entity.RoundResult{Mode: entity.ModeChase, Outcome: entity.OutcomeLoss})
	require.IsType(t, &results.Results{}, next)
	assert.NotContains(t, next.(*results.Results).Lines(), "NEW BEST!")
}

func TestEnvOr(t *testing.T) {
	t.Setenv("BOUNTY_TEST_KEY", "")
	assert.Equal(t, "fallback", envOr("BOUNTY_TEST_KEY", "fallback"))

	t.Setenv("BOUNTY_TEST_KEY", "set")
	assert.Equal(t, "set", envOr("BOUNTY_TEST_KEY", "fallback"))
}

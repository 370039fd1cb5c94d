package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/younwookim/bountyhunter/internal/application/sim"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// ErrUnsupportedVersion is returned for recordings of another format
var ErrUnsupportedVersion = errors.New("unsupported replay version")

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, data.Version)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Input(), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// fixedScenario replays the recorded setup instead of asking a service
type fixedScenario entity.Scenario

func (f fixedScenario) Scenario(context.Context, entity.Mode, entity.Difficulty) (entity.Scenario, error) {
	return entity.Scenario(f), nil
}

// Summary is the outcome of a headless replay
type Summary struct {
	Ended  bool
	Result entity.RoundResult
	Stats  sim.Stats
	Ticks  int
	Faults int
}

// Run re-simulates a recording without rendering.
// Every recorded frame is fed to one host tick, intro ticks included.
func Run(ctx context.Context, cfg *config.GameConfig, data ReplayData, logger *slog.Logger) (Summary, error) {
	opts := sim.Options{
		Mode:       data.Mode,
		Difficulty: data.Difficulty,
		Seed:       data.Seed,
		TickRate:   data.TickRate,
		Logger:     logger,
	}
	if data.Scenario != nil {
		opts.Scenarios = fixedScenario(*data.Scenario)
	}

	h, err := sim.New(cfg, opts)
	if err != nil {
		return Summary{}, err
	}
	if err := h.Start(ctx); err != nil {
		return Summary{}, err
	}
	defer h.Stop()

	r := NewReplayer(data)
	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		h.Tick(in)
	}

	res, ended := h.Result()
	return Summary{
		Ended:  ended,
		Result: res,
		Stats:  h.Stats(),
		Ticks:  h.Ticks(),
		Faults: h.Faults(),
	}, nil
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int, mode entity.Mode, pointerX, pointerY float64) ReplayData {
	data := ReplayData{
		Version:    Version,
		Seed:       12345,
		Mode:       mode,
		Difficulty: string(entity.DifficultyMedium),
		TickRate:   60,
		Frames:     make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i, PX: pointerX, PY: pointerY}
	}

	return data
}

// Package remote talks to the scenario and opponent-decision services.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// ScenarioPath is the scenario service endpoint
const ScenarioPath = "/generate_scenario"

// ErrBadStatus is returned for non-200 service responses
var ErrBadStatus = errors.New("unexpected service status")

// skillLevels maps the service's named skill levels onto [0,1]
var skillLevels = map[string]float64{
	"novice":       0.3,
	"intermediate": 0.6,
	"expert":       0.9,
}

// scenarioWire accepts opponent_skill as a number or a named level
type scenarioWire struct {
	Mode          string          `json:"mode"`
	Difficulty    string          `json:"difficulty"`
	Positions     []entity.Point  `json:"positions"`
	Objectives    string          `json:"objectives"`
	OpponentSkill json.RawMessage `json:"opponent_skill"`
	Environment   string          `json:"environment"`
}

func (w scenarioWire) scenario() (entity.Scenario, error) {
	m, err := entity.ParseMode(w.Mode)
	if err != nil {
		return entity.Scenario{}, err
	}
	d, err := entity.ParseDifficulty(w.Difficulty)
	if err != nil {
		return entity.Scenario{}, err
	}

	var skill float64
	if len(w.OpponentSkill) > 0 {
		if err := json.Unmarshal(w.OpponentSkill, &skill); err != nil {
			var name string
			if err := json.Unmarshal(w.OpponentSkill, &name); err != nil {
				return entity.Scenario{}, fmt.Errorf("opponent_skill: %w", err)
			}
			level, ok := skillLevels[strings.ToLower(name)]
			if !ok {
				return entity.Scenario{}, fmt.Errorf("%w: opponent_skill %q", entity.ErrMalformedScenario, name)
			}
			skill = level
		}
	}

	return entity.Scenario{
		Mode:          m,
		Difficulty:    d,
		Positions:     w.Positions,
		Objectives:    w.Objectives,
		OpponentSkill: skill,
		Environment:   w.Environment,
	}, nil
}

// ScenarioClient fetches round scenarios over HTTP
type ScenarioClient struct {
	baseURL string
	client  *http.Client
}

// NewScenarioClient creates a client for the service at baseURL.
// timeout bounds each request; zero means two seconds.
func NewScenarioClient(baseURL string, timeout time.Duration) *ScenarioClient {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ScenarioClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Scenario requests a scenario for a mode and difficulty
func (c *ScenarioClient) Scenario(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (entity.Scenario, error) {
	q := url.Values{}
	q.Set("mode", string(mode))
	q.Set("difficulty", string(difficulty))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ScenarioPath+"?"+q.Encode(), nil)
	if err != nil {
		return entity.Scenario{}, fmt.Errorf("failed to build scenario request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.Scenario{}, fmt.Errorf("failed to fetch scenario: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return entity.Scenario{}, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	var wire scenarioWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return entity.Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return wire.scenario()
}

// ScenarioHandler serves generated scenarios
type ScenarioHandler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewScenarioHandler creates a handler drawing from a seeded source
func NewScenarioHandler(seed int64) *ScenarioHandler {
	return &ScenarioHandler{rng: rand.New(rand.NewSource(seed))}
}

func (h *ScenarioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m, err := entity.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := entity.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	sc := entity.LocalScenario(m, d, h.rng)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sc)
}

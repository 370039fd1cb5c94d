package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/younwookim/bountyhunter/internal/application/mode"
	"github.com/younwookim/bountyhunter/internal/application/system"
	"github.com/younwookim/bountyhunter/internal/domain/entity"
	"github.com/younwookim/bountyhunter/internal/infrastructure/config"
)

// DecisionPath is the decision service websocket endpoint
const DecisionPath = "/decide"

// requestQueue bounds in-flight decision requests; extra ones are dropped
const requestQueue = 16

// CharacterState is the wire form of a character
type CharacterState struct {
	X, Y, W, H   float64
	VX, VY       float64
	Facing       int
	Ammo         int
	Alive        bool
	OnGround     bool
	Blocked      bool
	Hesitating   bool
	Speed        float64
	FireCooldown float64
}

func stateOf(c *entity.Character) CharacterState {
	if c == nil {
		return CharacterState{}
	}
	return CharacterState{
		X: c.X, Y: c.Y, W: c.W, H: c.H,
		VX: c.VX, VY: c.VY,
		Facing:       c.Facing,
		Ammo:         c.Ammo,
		Alive:        c.Alive,
		OnGround:     c.OnGround,
		Blocked:      c.Blocked,
		Hesitating:   c.Hesitating,
		Speed:        c.Speed,
		FireCooldown: c.FireCooldown,
	}
}

func (s CharacterState) character(role entity.Role) *entity.Character {
	return &entity.Character{
		Role: role,
		X:    s.X, Y: s.Y, W: s.W, H: s.H,
		VX: s.VX, VY: s.VY,
		Facing:       s.Facing,
		Ammo:         s.Ammo,
		Alive:        s.Alive,
		OnGround:     s.OnGround,
		Blocked:      s.Blocked,
		Hesitating:   s.Hesitating,
		Speed:        s.Speed,
		FireCooldown: s.FireCooldown,
	}
}

// DecisionRequest asks for one opponent's next action
type DecisionRequest struct {
	Seq        uint64
	Opponent   uint32
	Mode       entity.Mode
	Difficulty entity.Difficulty
	Self       CharacterState
	Target     CharacterState
	HasTarget  bool
	Elapsed    float64
}

// DecisionResponse answers a DecisionRequest
type DecisionResponse struct {
	Seq        uint64
	Opponent   uint32
	Move       int
	DirX, DirY float64
	Speed      float64
	Jump       bool
	Fire       bool
	AimX, AimY float64
	Reconsider bool
}

func (r DecisionResponse) action() system.Action {
	return system.Action{
		Move:       r.Move,
		DirX:       r.DirX,
		DirY:       r.DirY,
		Speed:      r.Speed,
		Jump:       r.Jump,
		Fire:       r.Fire,
		AimX:       r.AimX,
		AimY:       r.AimY,
		Reconsider: r.Reconsider,
	}
}

func responseOf(req DecisionRequest, a system.Action) DecisionResponse {
	return DecisionResponse{
		Seq:        req.Seq,
		Opponent:   req.Opponent,
		Move:       a.Move,
		DirX:       a.DirX,
		DirY:       a.DirY,
		Speed:      a.Speed,
		Jump:       a.Jump,
		Fire:       a.Fire,
		AimX:       a.AimX,
		AimY:       a.AimY,
		Reconsider: a.Reconsider,
	}
}

// DecisionClient asks a remote service for opponent actions over a
// websocket. Requests are sent and answers read on background goroutines;
// Decide never waits on the network.
type DecisionClient struct {
	conn *websocket.Conn
	log  *slog.Logger

	mode       entity.Mode
	difficulty entity.Difficulty

	out    chan DecisionRequest
	seq    atomic.Uint64
	closed atomic.Bool

	mu      sync.Mutex
	answers map[uint32]DecisionResponse
	// floor is the last Seq of the previous round; older answers are stale
	floor uint64

	remote  atomic.Int64
	local   atomic.Int64
	dropped atomic.Int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// DialDecisions connects to the decision service at url (ws:// or http://)
func DialDecisions(ctx context.Context, url string, m entity.Mode, d entity.Difficulty, logger *slog.Logger) (*DecisionClient, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial decision service: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	c := &DecisionClient{
		conn:       conn,
		log:        logger,
		mode:       m,
		difficulty: d,
		out:        make(chan DecisionRequest, requestQueue),
		answers:    make(map[uint32]DecisionResponse),
		cancel:     cancel,
	}

	c.wg.Add(2)
	go c.writeLoop(loopCtx)
	go c.readLoop(loopCtx)
	return c, nil
}

// Connected reports whether the connection is still usable
func (c *DecisionClient) Connected() bool { return !c.closed.Load() }

// Counts returns how many decisions came from the service, from the local
// fallback, and how many requests were dropped
func (c *DecisionClient) Counts() (remote, local, dropped int64) {
	return c.remote.Load(), c.local.Load(), c.dropped.Load()
}

// Wrap returns a policy that prefers the freshest remote answer for each
// opponent and falls back to local
func (c *DecisionClient) Wrap(local system.Policy) system.Policy {
	return &remotePolicy{client: c, local: local}
}

// Close stops the background goroutines and closes the connection
func (c *DecisionClient) Close() error {
	c.closed.Store(true)
	c.cancel()
	err := c.conn.Close(websocket.StatusNormalClosure, "")
	c.wg.Wait()
	return err
}

func (c *DecisionClient) writeLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-c.out:
			data, err := msgpack.Marshal(&req)
			if err != nil {
				c.log.Error("failed to encode decision request", "error", err)
				continue
			}
			if err := c.conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				c.fail("write", err)
				return
			}
		}
	}
}

func (c *DecisionClient) readLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			c.fail("read", err)
			return
		}

		var resp DecisionResponse
		if err := msgpack.Unmarshal(data, &resp); err != nil {
			c.log.Warn("dropping malformed decision", "error", err)
			continue
		}

		c.accept(resp)
	}
}

// accept stores resp unless it is stale or older than the stored answer
func (c *DecisionClient) accept(resp DecisionResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resp.Seq <= c.floor {
		return
	}
	if prev, ok := c.answers[resp.Opponent]; !ok || resp.Seq > prev.Seq {
		c.answers[resp.Opponent] = resp
	}
}

// NewRound drops stored answers and ignores answers to requests sent so far.
// Opponent ids repeat between rounds, so call it before each round.
func (c *DecisionClient) NewRound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.floor = c.seq.Load()
	clear(c.answers)
}

func (c *DecisionClient) fail(op string, err error) {
	if c.closed.Swap(true) {
		return
	}
	if !errors.Is(err, context.Canceled) {
		c.log.Warn("decision service unavailable, using local policies", "op", op, "error", err)
	}
}

// request queues a request without blocking
func (c *DecisionClient) request(id entity.EntityID, v system.View) {
	if c.closed.Load() {
		return
	}
	req := DecisionRequest{
		Seq:        c.seq.Add(1),
		Opponent:   uint32(id),
		Mode:       c.mode,
		Difficulty: c.difficulty,
		Self:       stateOf(v.Self),
		Target:     stateOf(v.Target),
		HasTarget:  v.Target != nil,
		Elapsed:    v.Elapsed,
	}
	select {
	case c.out <- req:
	default:
		c.dropped.Add(1)
	}
}

// take removes and returns the stored answer for an opponent
func (c *DecisionClient) take(id entity.EntityID) (DecisionResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.answers[uint32(id)]
	if ok {
		delete(c.answers, uint32(id))
	}
	return resp, ok
}

type remotePolicy struct {
	client *DecisionClient
	local  system.Policy
}

// Decide uses the answer to the previous request and asks for the next one
func (p *remotePolicy) Decide(v system.View, profile entity.DifficultyProfile, rng entity.Rand) system.Action {
	if v.Self == nil {
		return p.local.Decide(v, profile, rng)
	}
	p.client.request(v.Self.ID, v)

	if p.client.Connected() {
		if resp, ok := p.client.take(v.Self.ID); ok {
			p.client.remote.Add(1)
			return resp.action()
		}
	}
	p.client.local.Add(1)
	return p.local.Decide(v, profile, rng)
}

// DecisionServer answers decision requests with the built-in policies
type DecisionServer struct {
	cfg *config.GameConfig
	log *slog.Logger

	mu   sync.Mutex
	seed int64
}

// NewDecisionServer creates a server; each connection gets its own RNG
func NewDecisionServer(cfg *config.GameConfig, seed int64, logger *slog.Logger) *DecisionServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DecisionServer{cfg: cfg, log: logger, seed: seed}
}

func (s *DecisionServer) nextSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed++
	return s.seed
}

func (s *DecisionServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	ctx := r.Context()
	rng := rand.New(rand.NewSource(s.nextSeed()))

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				s.log.Debug("decision connection closed", "error", err)
			}
			return
		}

		var req DecisionRequest
		if err := msgpack.Unmarshal(data, &req); err != nil {
			s.log.Warn("dropping malformed request", "error", err)
			continue
		}

		resp, err := s.decide(req, rng)
		if err != nil {
			s.log.Warn("cannot decide", "error", err)
			continue
		}

		out, err := msgpack.Marshal(&resp)
		if err != nil {
			s.log.Error("failed to encode decision", "error", err)
			continue
		}
		if err := conn.Write(ctx, websocket.MessageBinary, out); err != nil {
			return
		}
	}
}

func (s *DecisionServer) decide(req DecisionRequest, rng *rand.Rand) (DecisionResponse, error) {
	m, err := mode.New(req.Mode, s.cfg)
	if err != nil {
		return DecisionResponse{}, err
	}
	// unknown difficulties fall back like the host does
	profile, _ := s.cfg.Profile(string(req.Difficulty))

	self := req.Self.character(entity.RoleOpponent)
	self.ID = entity.EntityID(req.Opponent)
	view := system.View{Self: self, Elapsed: req.Elapsed}
	if req.HasTarget {
		view.Target = req.Target.character(entity.RolePlayer)
	}

	a := m.Policy(self).Decide(view, profile, rng)
	return responseOf(req, a), nil
}

// Package storage keeps round results on the local machine.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

const (
	// LeaderboardSize is how many results are kept per mode
	LeaderboardSize = 100
	// HistorySize is how many recent rounds are kept across modes
	HistorySize = 200

	historyKey = "history"
)

// itemStore is the subset of *gdata.Manager the store needs
type itemStore interface {
	SaveItem(key string, data []byte) error
	LoadItem(key string) ([]byte, error)
}

// Entry is one stored round
type Entry struct {
	entity.RoundResult
	SavedAt time.Time `json:"savedAt"`
}

// ResultStore persists round results as gdata items: one leaderboard per
// mode and one shared history. Safe for concurrent use.
type ResultStore struct {
	mu    sync.Mutex
	items itemStore
	now   func() time.Time
}

// OpenResultStore opens the per-user data directory for appName
func OpenResultStore(appName string) (*ResultStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return newResultStore(m), nil
}

func newResultStore(items itemStore) *ResultStore {
	return &ResultStore{items: items, now: time.Now}
}

func leaderboardKey(m entity.Mode) string {
	return "leaderboard_" + string(m)
}

// Save records a result in the history and, if it ranks, the leaderboard
func (s *ResultStore) Save(r entity.RoundResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{RoundResult: r, SavedAt: s.now().UTC()}

	history, err := s.load(historyKey)
	if err != nil {
		return err
	}
	history = append([]Entry{e}, history...)
	if len(history) > HistorySize {
		history = history[:HistorySize]
	}
	if err := s.store(historyKey, history); err != nil {
		return err
	}

	key := leaderboardKey(r.Mode)
	board, err := s.load(key)
	if err != nil {
		return err
	}
	board = append(board, e)
	sortBoard(board)
	if len(board) > LeaderboardSize {
		board = board[:LeaderboardSize]
	}
	return s.store(key, board)
}

// Leaderboard returns the best results of a mode, highest score first
func (s *ResultStore) Leaderboard(m entity.Mode) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(leaderboardKey(m))
}

// History returns the most recent results, newest first
func (s *ResultStore) History() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(historyKey)
}

// Best returns the top result of a mode
func (s *ResultStore) Best(m entity.Mode) (Entry, bool, error) {
	board, err := s.Leaderboard(m)
	if err != nil || len(board) == 0 {
		return Entry{}, false, err
	}
	return board[0], true, nil
}

// sortBoard orders by score, then accuracy, then the earlier save
func sortBoard(board []Entry) {
	slices.SortStableFunc(board, func(a, b Entry) int {
		switch {
		case a.Score != b.Score:
			return b.Score - a.Score
		case a.Accuracy > b.Accuracy:
			return -1
		case a.Accuracy < b.Accuracy:
			return 1
		default:
			return a.SavedAt.Compare(b.SavedAt)
		}
	})
}

func (s *ResultStore) load(key string) ([]Entry, error) {
	data, err := s.items.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if data == nil {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return entries, nil
}

func (s *ResultStore) store(key string, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := s.items.SaveItem(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/storage"
)

// Storage persists the whole game state as a single JSON file, the way the
// original hosted variant kept one gameData.json blob. State is held in
// memory and flushed on every mutation; writes are last-write-wins, so two
// processes sharing one file can drop each other's updates. A failed flush
// keeps the in-memory state intact and is retried by the next mutation.
type Storage struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	state  *model.GameState

	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
}

// New creates a file storage backed by the given path. A missing or corrupt
// file yields a fresh empty state rather than an error.
func New(path string, logger *slog.Logger) *Storage {
	s := &Storage{
		path:   path,
		logger: logger,
	}
	s.load()
	return s
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) load() {
	s.state = model.NewGameState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read game data file, starting fresh",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		s.reindex()
		return
	}

	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("game data file is corrupt, starting fresh",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		s.reindex()
		return
	}

	if state.Tally == nil {
		state.Tally = model.NewTally()
	}
	if state.Tally.TaxPaid == nil {
		state.Tally.TaxPaid = make(map[string]int)
	}
	s.state = &state
	s.reindex()
}

// reindex rebuilds the lookup maps from the state slice
func (s *Storage) reindex() {
	s.players = make(map[model.PlayerID]*model.Player, len(s.state.Players))
	s.usernameIndex = make(map[string]model.PlayerID, len(s.state.Players))
	for _, p := range s.state.Players {
		s.players[p.ID] = p
		s.usernameIndex[p.Username] = p.ID
	}
}

// flush writes the full state to disk. Callers hold the mutex.
func (s *Storage) flush() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", model.ErrPersistence, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.players[player.ID]; ok {
		*existing = *player
	} else {
		p := *player
		s.state.Players = append(s.state.Players, &p)
		s.players[p.ID] = &p
		s.usernameIndex[p.Username] = p.ID
	}
	return s.flush()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *s.players[id]
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]*model.Player, 0, len(s.state.Players))
	for _, player := range s.state.Players {
		p := *player
		players = append(players, &p)
	}
	return players, nil
}

// Flip ledger operations

func (s *Storage) AppendFlip(ctx context.Context, flip *model.FlipEvent, retain int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := *flip
	s.state.Flips = append(s.state.Flips, &ev)
	if retain > 0 && len(s.state.Flips) > retain {
		trimmed := make([]*model.FlipEvent, retain)
		copy(trimmed, s.state.Flips[len(s.state.Flips)-retain:])
		s.state.Flips = trimmed
	}
	return s.flush()
}

func (s *Storage) ListFlips(ctx context.Context) ([]*model.FlipEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flips := make([]*model.FlipEvent, 0, len(s.state.Flips))
	for _, flip := range s.state.Flips {
		ev := *flip
		flips = append(flips, &ev)
	}
	return flips, nil
}

// Tally operations

func (s *Storage) GetTally(ctx context.Context) (*model.Tally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *s.state.Tally
	t.TaxPaid = make(map[string]int, len(s.state.Tally.TaxPaid))
	for k, v := range s.state.Tally.TaxPaid {
		t.TaxPaid[k] = v
	}
	return &t, nil
}

func (s *Storage) SaveTally(ctx context.Context, tally *model.Tally) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *tally
	t.TaxPaid = make(map[string]int, len(tally.TaxPaid))
	for k, v := range tally.TaxPaid {
		t.TaxPaid[k] = v
	}
	s.state.Tally = &t
	return s.flush()
}

// Snapshot operations

func (s *Storage) Snapshot(ctx context.Context) (*model.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := model.NewGameState()
	for _, player := range s.state.Players {
		p := *player
		state.Players = append(state.Players, &p)
	}
	for _, flip := range s.state.Flips {
		ev := *flip
		state.Flips = append(state.Flips, &ev)
	}
	t := *s.state.Tally
	t.TaxPaid = make(map[string]int, len(s.state.Tally.TaxPaid))
	for k, v := range s.state.Tally.TaxPaid {
		t.TaxPaid[k] = v
	}
	state.Tally = &t
	return state, nil
}

func (s *Storage) Restore(ctx context.Context, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := model.NewGameState()
	restored.Players = append(restored.Players, state.Players...)
	restored.Flips = append(restored.Flips, state.Flips...)
	if state.Tally != nil {
		restored.Tally = state.Tally
	}
	s.state = restored
	s.reindex()
	return s.flush()
}

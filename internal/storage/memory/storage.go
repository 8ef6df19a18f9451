package memory

import (
	"context"
	"sync"

	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	playerOrder   []model.PlayerID
	usernameIndex map[string]model.PlayerID
	flips         []*model.FlipEvent
	tally         *model.Tally
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		s.playerOrder = append(s.playerOrder, player.ID)
	}
	s.players[player.ID] = player
	s.usernameIndex[player.Username] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		players = append(players, s.players[id])
	}
	return players, nil
}

// Flip ledger operations

func (s *Storage) AppendFlip(ctx context.Context, flip *model.FlipEvent, retain int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flips = append(s.flips, flip)
	if retain > 0 && len(s.flips) > retain {
		trimmed := make([]*model.FlipEvent, retain)
		copy(trimmed, s.flips[len(s.flips)-retain:])
		s.flips = trimmed
	}
	return nil
}

func (s *Storage) ListFlips(ctx context.Context) ([]*model.FlipEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flips := make([]*model.FlipEvent, len(s.flips))
	copy(flips, s.flips)
	return flips, nil
}

// Tally operations

// GetTally returns a copy; the stored tally is never aliased outside the
// lock, so callers can mutate the result freely
func (s *Storage) GetTally(ctx context.Context) (*model.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tally == nil {
		return model.NewTally(), nil
	}
	return copyTally(s.tally), nil
}

func (s *Storage) SaveTally(ctx context.Context, tally *model.Tally) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally = copyTally(tally)
	return nil
}

func copyTally(t *model.Tally) *model.Tally {
	c := *t
	c.TaxPaid = make(map[string]int, len(t.TaxPaid))
	for k, v := range t.TaxPaid {
		c.TaxPaid[k] = v
	}
	return &c
}

// Snapshot operations

func (s *Storage) Snapshot(ctx context.Context) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := model.NewGameState()
	for _, id := range s.playerOrder {
		p := *s.players[id]
		state.Players = append(state.Players, &p)
	}
	for _, f := range s.flips {
		ev := *f
		state.Flips = append(state.Flips, &ev)
	}
	if s.tally != nil {
		state.Tally = copyTally(s.tally)
	}
	return state, nil
}

func (s *Storage) Restore(ctx context.Context, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make(map[model.PlayerID]*model.Player, len(state.Players))
	s.playerOrder = s.playerOrder[:0]
	s.usernameIndex = make(map[string]model.PlayerID, len(state.Players))
	for _, p := range state.Players {
		s.players[p.ID] = p
		s.playerOrder = append(s.playerOrder, p.ID)
		s.usernameIndex[p.Username] = p.ID
	}

	s.flips = make([]*model.FlipEvent, len(state.Flips))
	copy(s.flips, state.Flips)

	if state.Tally != nil {
		s.tally = copyTally(state.Tally)
	} else {
		s.tally = model.NewTally()
	}
	return nil
}

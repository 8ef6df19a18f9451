package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	// Pipeline the save with the username index and, for new players,
	// the creation-order list
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, usernameIndexKey(player.Username), string(player.ID), 0)
	if exists == 0 {
		pipe.RPush(ctx, playerOrderKey(), string(player.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(playerIDStr))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// Flip ledger operations

func (s *Storage) AppendFlip(ctx context.Context, flip *model.FlipEvent, retain int) error {
	data, err := json.Marshal(flip)
	if err != nil {
		return err
	}

	// Append and trim to the retention window in one pipeline
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, flipsKey(), data)
	if retain > 0 {
		pipe.LTrim(ctx, flipsKey(), int64(-retain), -1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListFlips(ctx context.Context) ([]*model.FlipEvent, error) {
	values, err := s.client.LRange(ctx, flipsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	flips := make([]*model.FlipEvent, 0, len(values))
	for _, val := range values {
		var flip model.FlipEvent
		if err := json.Unmarshal([]byte(val), &flip); err != nil {
			continue // Skip invalid data
		}
		flips = append(flips, &flip)
	}

	return flips, nil
}

// Tally operations

func (s *Storage) GetTally(ctx context.Context) (*model.Tally, error) {
	data, err := s.client.Get(ctx, tallyKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewTally(), nil
		}
		return nil, err
	}

	var tally model.Tally
	if err := json.Unmarshal(data, &tally); err != nil {
		return nil, err
	}
	if tally.TaxPaid == nil {
		tally.TaxPaid = make(map[string]int)
	}
	return &tally, nil
}

func (s *Storage) SaveTally(ctx context.Context, tally *model.Tally) error {
	data, err := json.Marshal(tally)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tallyKey(), data, s.cfg.TallyTTL).Err()
}

// Snapshot operations

func (s *Storage) Snapshot(ctx context.Context) (*model.GameState, error) {
	state := model.NewGameState()

	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	state.Players = players

	flips, err := s.ListFlips(ctx)
	if err != nil {
		return nil, err
	}
	state.Flips = flips

	tally, err := s.GetTally(ctx)
	if err != nil {
		return nil, err
	}
	state.Tally = tally

	return state, nil
}

func (s *Storage) Restore(ctx context.Context, state *model.GameState) error {
	// Collect keys belonging to the current state, including the username
	// index entries of the players being replaced
	ids, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return err
	}
	current, err := s.ListPlayers(ctx)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, playerKey(model.PlayerID(id)))
	}
	for _, p := range current {
		pipe.Del(ctx, usernameIndexKey(p.Username))
	}
	pipe.Del(ctx, playerOrderKey(), flipsKey(), tallyKey())

	for _, p := range state.Players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerKey(p.ID), data, 0)
		pipe.Set(ctx, usernameIndexKey(p.Username), string(p.ID), 0)
		pipe.RPush(ctx, playerOrderKey(), string(p.ID))
	}
	for _, f := range state.Flips {
		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, flipsKey(), data)
	}
	if state.Tally != nil {
		data, err := json.Marshal(state.Tally)
		if err != nil {
			return err
		}
		pipe.Set(ctx, tallyKey(), data, s.cfg.TallyTTL)
	}

	_, err = pipe.Exec(ctx)
	return err
}

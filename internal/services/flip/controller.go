package flip

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rfallows/moonrug/internal/dependencies/clock"
	"github.com/rfallows/moonrug/internal/dependencies/random"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/services/identity"
	"github.com/rfallows/moonrug/internal/storage"
)

// Config holds configuration for the flip controller
type Config struct {
	// RetainFlips bounds the ledger length; oldest entries beyond it are
	// dropped. Zero means unbounded.
	RetainFlips int
}

// DefaultConfig returns default flip configuration
func DefaultConfig() Config {
	return Config{
		RetainFlips: 1000,
	}
}

// Controller records coin flips: it draws the outcome, appends to the
// ledger, updates the player's cumulative counters and advances the global
// streak. At most one flip per player may be in flight at a time.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu       sync.Mutex
	inFlight map[model.PlayerID]struct{}
}

// NewController creates a new flip controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.RetainFlips == 0 {
		cfg.RetainFlips = DefaultConfig().RetainFlips
	}
	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger,
		cfg:      cfg,
		inFlight: make(map[model.PlayerID]struct{}),
	}
}

// Flip performs one coin flip for the given player
func (c *Controller) Flip(ctx context.Context, playerID model.PlayerID) (*model.FlipEvent, *model.Player, error) {
	if err := c.begin(playerID); err != nil {
		return nil, nil, err
	}
	defer c.end(playerID)

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	result := c.draw()

	event := &model.FlipEvent{
		ID:        model.FlipID("flip_" + uuid.NewString()),
		PlayerID:  player.ID,
		Username:  player.Username,
		DeviceID:  player.DeviceID,
		Result:    result,
		Timestamp: now,
	}

	if err := c.storage.AppendFlip(ctx, event, c.cfg.RetainFlips); err != nil {
		return nil, nil, err
	}

	player.ApplyFlip(result, now)
	player.SessionID = identity.NewSessionID()
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	if err := c.track(ctx, player.Username, result); err != nil {
		return nil, nil, err
	}

	c.logger.Info("flip recorded",
		slog.String("flip_id", string(event.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("result", string(result)),
	)
	return event, player, nil
}

// draw performs an unweighted fair coin draw
func (c *Controller) draw() model.FlipResult {
	if c.random.Intn(2) == 0 {
		return model.ResultMoon
	}
	return model.ResultRug
}

// track advances the global streak and the rug tax counter in the tally
func (c *Controller) track(ctx context.Context, username string, result model.FlipResult) error {
	tally, err := c.storage.GetTally(ctx)
	if err != nil {
		return err
	}

	tally.Streak = NextStreak(tally.Streak, username, result)
	if result == model.ResultRug {
		tally.TaxPaid[username]++
	}

	return c.storage.SaveTally(ctx, tally)
}

// begin marks a flip in flight for the player, rejecting a second
// concurrent flip for the same player
func (c *Controller) begin(playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[playerID]; busy {
		return model.ErrFlipInProgress
	}
	c.inFlight[playerID] = struct{}{}
	return nil
}

func (c *Controller) end(playerID model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, playerID)
}

// NextStreak advances the population-wide streak with a new event. The
// count continues only when both the acting player and the result match
// the previous streak; otherwise the streak restarts at 1.
func NextStreak(prev model.Streak, username string, result model.FlipResult) model.Streak {
	if prev.Player == username && prev.Type == result {
		prev.Count++
		return prev
	}
	return model.Streak{Player: username, Count: 1, Type: result}
}

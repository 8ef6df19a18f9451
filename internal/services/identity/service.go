package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rfallows/moonrug/internal/dependencies/clock"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/storage"
)

// MaxUsernameLength is the maximum allowed username length after trimming
const MaxUsernameLength = 20

// Service resolves a (username, device) pair to a stable player record.
// A username is a global unique key: it can only ever be used from the
// device that first claimed it.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new identity service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Resolve looks up or creates the player for the given username and device.
// Re-resolving from the owning device restores the existing player with a
// fresh session; resolving from any other device fails with ErrUsernameTaken.
func (s *Service) Resolve(ctx context.Context, username string, deviceID model.DeviceID) (*model.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.ErrEmptyUsername
	}
	if len(username) > MaxUsernameLength {
		return nil, model.ErrUsernameTooLong
	}

	now := s.clock.Now()

	existing, err := s.storage.GetPlayerByUsername(ctx, username)
	if err == nil {
		if existing.DeviceID != deviceID {
			return nil, model.ErrUsernameTaken
		}

		// Session restore: rotate the session, no counter changes
		existing.SessionID = NewSessionID()
		existing.LastPlayedAt = now
		if err := s.storage.SavePlayer(ctx, existing); err != nil {
			return nil, err
		}

		s.logger.Info("session restored",
			slog.String("player_id", string(existing.ID)),
			slog.String("username", existing.Username),
		)
		return existing, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		ID:           model.PlayerID("player_" + uuid.NewString()),
		Username:     username,
		DeviceID:     deviceID,
		SessionID:    NewSessionID(),
		CreatedAt:    now,
		LastPlayedAt: now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("username", player.Username),
	)
	return player, nil
}

// Get returns a player by ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// NewSessionID generates a fresh opaque session identifier
func NewSessionID() model.SessionID {
	return model.SessionID("session_" + uuid.NewString())
}

// NewDeviceID generates a fresh opaque device identifier
func NewDeviceID() model.DeviceID {
	return model.DeviceID("device_" + uuid.NewString())
}

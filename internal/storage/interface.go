package storage

import (
	"context"

	"github.com/rfallows/moonrug/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations. SavePlayer upserts; a player's position in
	// ListPlayers is fixed at first save (creation order).
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Flip ledger operations. AppendFlip adds the event and drops the
	// oldest entries beyond retain; ListFlips returns oldest-first.
	AppendFlip(ctx context.Context, flip *model.FlipEvent, retain int) error
	ListFlips(ctx context.Context) ([]*model.FlipEvent, error)

	// Tally operations. GetTally returns a fresh default tally when none
	// has been saved yet.
	GetTally(ctx context.Context) (*model.Tally, error)
	SaveTally(ctx context.Context, tally *model.Tally) error

	// Snapshot operations for state export and restore
	Snapshot(ctx context.Context) (*model.GameState, error)
	Restore(ctx context.Context, state *model.GameState) error
}

package redis

import (
	"fmt"

	"github.com/rfallows/moonrug/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "moonrug"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playerOrderKey returns the Redis key for the LIST of player IDs in
// creation order
func playerOrderKey() string {
	return fmt.Sprintf("%s:idx:player_order", keyPrefix)
}

// flipsKey returns the Redis key for the flip ledger LIST (oldest first)
func flipsKey() string {
	return fmt.Sprintf("%s:flips", keyPrefix)
}

// tallyKey returns the Redis key for the tally blob
func tallyKey() string {
	return fmt.Sprintf("%s:tally", keyPrefix)
}

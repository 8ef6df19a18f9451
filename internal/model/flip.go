package model

import "time"

// FlipID uniquely identifies a flip event
type FlipID string

// FlipResult is the outcome of a coin flip
type FlipResult string

const (
	ResultMoon FlipResult = "moon"
	ResultRug  FlipResult = "rug"
)

// Valid reports whether r is a recognised flip result
func (r FlipResult) Valid() bool {
	return r == ResultMoon || r == ResultRug
}

// FlipEvent is one entry in the flip ledger. Events are immutable once
// created and ordered oldest-first; the ledger is trimmed to a bounded
// retention window without touching cumulative player counters.
type FlipEvent struct {
	ID        FlipID     `json:"id"`
	PlayerID  PlayerID   `json:"player_id"`
	Username  string     `json:"username"`
	DeviceID  DeviceID   `json:"device_id"`
	Result    FlipResult `json:"result"`
	Timestamp time.Time  `json:"timestamp"`
}

// Streak is the single population-wide run of consecutive same-result flips
// by the same player. Count resets to 1 whenever the acting player or the
// result type changes.
type Streak struct {
	Player string     `json:"player"`
	Count  int        `json:"count"`
	Type   FlipResult `json:"type"`
}

// DevAllocationStart is the dev allocation every fresh game state begins with
const DevAllocationStart = 100

// Tally is persisted derived state that cannot be rebuilt from the
// retention-bounded ledger: the current streak, the monotonic per-username
// rug tax counters, and the depleting dev allocation (floor 0, sticky).
type Tally struct {
	Streak        Streak         `json:"streak"`
	TaxPaid       map[string]int `json:"tax_paid"`
	DevAllocation int            `json:"dev_allocation"`
}

// NewTally returns a Tally with starting values
func NewTally() *Tally {
	return &Tally{
		TaxPaid:       make(map[string]int),
		DevAllocation: DevAllocationStart,
	}
}

// GameState is the full persisted state: the player set in insertion order,
// the flip ledger oldest-first, and the tally.
type GameState struct {
	Players []*Player    `json:"players"`
	Flips   []*FlipEvent `json:"flips"`
	Tally   *Tally       `json:"tally"`
}

// NewGameState returns an empty state with a fresh tally
func NewGameState() *GameState {
	return &GameState{Tally: NewTally()}
}

package model

import "time"

// CommunityMood is a coarse classification of the global moon:rug ratio
type CommunityMood string

const (
	MoodMooning CommunityMood = "mooning"
	MoodRugging CommunityMood = "rugging"
	MoodNeutral CommunityMood = "neutral"
)

// GlobalStats are lifetime totals across all players
type GlobalStats struct {
	TotalMoons  int       `json:"total_moons"`
	TotalRugs   int       `json:"total_rugs"`
	TotalFlips  int       `json:"total_flips"`
	LastUpdated time.Time `json:"last_updated"`
}

// DailyStats is the rollup of the current calendar day's ledger entries.
// Percentages are integer-rounded shares of the day's total.
type DailyStats struct {
	Date        string `json:"date"` // local calendar day, YYYY-MM-DD
	Moons       int    `json:"moons"`
	Rugs        int    `json:"rugs"`
	Total       int    `json:"total"`
	MoonPercent int    `json:"moon_percent"`
	RugPercent  int    `json:"rug_percent"`
}

// DailyLeader names the top performer for one daily superlative
type DailyLeader struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Leaderboards holds the top players by each cumulative counter,
// descending, ties broken by player creation order
type Leaderboards struct {
	TopMooners []*Player `json:"top_mooners"`
	TopRuggers []*Player `json:"top_ruggers"`
	MostActive []*Player `json:"most_active"`
}

// ExtremeStats are the superlative performers over the player population.
// Each entry is nil when no player qualifies.
type ExtremeStats struct {
	MoonChampion *Player `json:"moon_champion"`
	RugKing      *Player `json:"rug_king"`
	MostActive   *Player `json:"most_active"`
	Luckiest     *Player `json:"luckiest"`
}

package response

import (
	"time"

	"github.com/rfallows/moonrug/internal/model"
)

// Player represents a player in API responses. The device binding stays
// server-side; only the session token crosses the wire.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	TotalMoons   int       `json:"total_moons"`
	TotalRugs    int       `json:"total_rugs"`
	TotalFlips   int       `json:"total_flips"`
	CreatedAt    time.Time `json:"created_at"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Username:     p.Username,
		TotalMoons:   p.TotalMoons,
		TotalRugs:    p.TotalRugs,
		TotalFlips:   p.TotalFlips,
		CreatedAt:    p.CreatedAt,
		LastPlayedAt: p.LastPlayedAt,
	}
}

// RegisterResponse is the response for player registration and restore
type RegisterResponse struct {
	Player    Player `json:"player"`
	SessionID string `json:"session_id"`
	DeviceID  string `json:"device_id"`
}

// RegisterResponseFromModel creates a RegisterResponse from a resolved player
func RegisterResponseFromModel(p *model.Player) RegisterResponse {
	return RegisterResponse{
		Player:    PlayerFromModel(p),
		SessionID: string(p.SessionID),
		DeviceID:  string(p.DeviceID),
	}
}

// Flip represents one ledger entry in API responses
type Flip struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// FlipFromModel converts a model.FlipEvent
func FlipFromModel(f *model.FlipEvent) Flip {
	return Flip{
		ID:        string(f.ID),
		Username:  f.Username,
		Result:    string(f.Result),
		Timestamp: f.Timestamp,
	}
}

// Streak represents the population-wide streak
type Streak struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
	Type   string `json:"type"`
}

// StreakFromModel converts a model.Streak
func StreakFromModel(s model.Streak) Streak {
	return Streak{
		Player: s.Player,
		Count:  s.Count,
		Type:   string(s.Type),
	}
}

// FlipResponse is the response after a flip
type FlipResponse struct {
	Flip      Flip   `json:"flip"`
	Player    Player `json:"player"`
	SessionID string `json:"session_id"`
	Streak    Streak `json:"streak"`
}

// Announcement represents one announcement in API responses
type Announcement struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// AnnouncementFromModel converts a model.Announcement
func AnnouncementFromModel(a model.Announcement) Announcement {
	return Announcement{
		Kind:   string(a.Kind),
		Title:  a.Title,
		Detail: a.Detail,
	}
}

// GlobalEvent represents the active banner event
type GlobalEvent struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GlobalEventFromModel converts a model.GlobalEvent, passing nil through
func GlobalEventFromModel(e *model.GlobalEvent) *GlobalEvent {
	if e == nil {
		return nil
	}
	return &GlobalEvent{
		Kind:      string(e.Kind),
		Message:   e.Message,
		ExpiresAt: e.ExpiresAt,
	}
}

// DailyStats represents the current day's rollup
type DailyStats struct {
	Date        string `json:"date"`
	Moons       int    `json:"moons"`
	Rugs        int    `json:"rugs"`
	Total       int    `json:"total"`
	MoonPercent int    `json:"moon_percent"`
	RugPercent  int    `json:"rug_percent"`
}

// DailyStatsFromModel converts a model.DailyStats
func DailyStatsFromModel(d model.DailyStats) DailyStats {
	return DailyStats{
		Date:        d.Date,
		Moons:       d.Moons,
		Rugs:        d.Rugs,
		Total:       d.Total,
		MoonPercent: d.MoonPercent,
		RugPercent:  d.RugPercent,
	}
}

// DailyLeader names the top performer for one daily superlative
type DailyLeader struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyLeaderFromModel converts a model.DailyLeader
func DailyLeaderFromModel(l model.DailyLeader) DailyLeader {
	return DailyLeader{Name: l.Name, Count: l.Count}
}

// GameDataResponse is the combined per-tick game view: the day's rollup,
// the ordered announcements and the active banner (nil when none)
type GameDataResponse struct {
	Daily         DailyStats     `json:"daily"`
	Mood          string         `json:"mood"`
	Streak        Streak         `json:"streak"`
	DevAllocation int            `json:"dev_allocation"`
	TopMooner     DailyLeader    `json:"top_mooner"`
	MostRugged    DailyLeader    `json:"most_rugged"`
	Announcements []Announcement `json:"announcements"`
	GlobalEvent   *GlobalEvent   `json:"global_event"`
}

// GlobalStats represents lifetime totals
type GlobalStats struct {
	TotalMoons  int       `json:"total_moons"`
	TotalRugs   int       `json:"total_rugs"`
	TotalFlips  int       `json:"total_flips"`
	LastUpdated time.Time `json:"last_updated"`
}

// GlobalStatsFromModel converts a model.GlobalStats
func GlobalStatsFromModel(g model.GlobalStats) GlobalStats {
	return GlobalStats{
		TotalMoons:  g.TotalMoons,
		TotalRugs:   g.TotalRugs,
		TotalFlips:  g.TotalFlips,
		LastUpdated: g.LastUpdated,
	}
}

// ExtremeStats represents the superlative performers; absent slots are null
type ExtremeStats struct {
	MoonChampion *Player `json:"moon_champion"`
	RugKing      *Player `json:"rug_king"`
	MostActive   *Player `json:"most_active"`
	Luckiest     *Player `json:"luckiest"`
}

// ExtremeStatsFromModel converts a model.ExtremeStats
func ExtremeStatsFromModel(e model.ExtremeStats) ExtremeStats {
	conv := func(p *model.Player) *Player {
		if p == nil {
			return nil
		}
		r := PlayerFromModel(p)
		return &r
	}
	return ExtremeStats{
		MoonChampion: conv(e.MoonChampion),
		RugKing:      conv(e.RugKing),
		MostActive:   conv(e.MostActive),
		Luckiest:     conv(e.Luckiest),
	}
}

// StatsResponse is the response for the full statistics view
type StatsResponse struct {
	Global   GlobalStats    `json:"global"`
	Daily    DailyStats     `json:"daily"`
	Mood     string         `json:"mood"`
	Extremes ExtremeStats   `json:"extremes"`
	TaxPaid  map[string]int `json:"tax_paid"`
}

// LeaderboardsResponse holds the ranked player lists. Players with a zero
// counter for a board are omitted from that board.
type LeaderboardsResponse struct {
	TopMooners []Player `json:"top_mooners"`
	TopRuggers []Player `json:"top_ruggers"`
	MostActive []Player `json:"most_active"`
}

// LeaderboardsFromModel converts a model.Leaderboards
func LeaderboardsFromModel(l model.Leaderboards) LeaderboardsResponse {
	conv := func(players []*model.Player) []Player {
		out := make([]Player, len(players))
		for i, p := range players {
			out[i] = PlayerFromModel(p)
		}
		return out
	}
	return LeaderboardsResponse{
		TopMooners: conv(l.TopMooners),
		TopRuggers: conv(l.TopRuggers),
		MostActive: conv(l.MostActive),
	}
}

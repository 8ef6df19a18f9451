package model

import "time"

// AnnouncementKind identifies the rule that produced an announcement
type AnnouncementKind string

const (
	AnnounceGameLive AnnouncementKind = "game_live"
	AnnounceDevDump  AnnouncementKind = "dev_dump"
	AnnounceBurn     AnnouncementKind = "burn"
	AnnounceReward   AnnouncementKind = "reward"
	AnnounceTakeover AnnouncementKind = "community_takeover"
	AnnounceMood     AnnouncementKind = "mood"
)

// Announcement is one entry in the ordered per-tick announcement list.
// List order follows rule evaluation order and governs display order.
type Announcement struct {
	Kind   AnnouncementKind `json:"kind"`
	Title  string           `json:"title"`
	Detail string           `json:"detail"`
}

// GlobalEventKind identifies the higher-severity banner event
type GlobalEventKind string

const (
	EventRugSeason       GlobalEventKind = "rug_season"
	EventBullRun         GlobalEventKind = "bull_run"
	EventLegendaryStreak GlobalEventKind = "legendary_streak"
)

// GlobalEvent is the single active banner. At most one is shown at a time;
// it auto-clears once ExpiresAt passes.
type GlobalEvent struct {
	Kind      GlobalEventKind `json:"kind"`
	Message   string          `json:"message"`
	ExpiresAt time.Time       `json:"expires_at"`
}

package handler

import (
	"net/http"

	"github.com/rfallows/moonrug/internal/api/response"
	"github.com/rfallows/moonrug/internal/services/announce"
	"github.com/rfallows/moonrug/internal/services/stats"
)

// StatsHandler handles the read-side statistics endpoints
type StatsHandler struct {
	statsService    *stats.Service
	announceService *announce.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service, announceService *announce.Service) *StatsHandler {
	return &StatsHandler{
		statsService:    statsService,
		announceService: announceService,
	}
}

// GameData handles GET /api/v1/gamedata
// This is the polling endpoint: it rebuilds the daily rollup, applies the
// dev dump when the day is rugging, and returns the ordered announcements
// plus the active banner
func (h *StatsHandler) GameData(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Collect(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	dump, err := h.statsService.ApplyDevDump(r.Context(), overview.Daily)
	if err != nil {
		WriteError(w, err)
		return
	}

	announcements := h.announceService.Classify(
		overview.Daily, overview.Mood, overview.Global, dump, overview.TopMooner)
	banner := h.announceService.Banner(overview.Daily, overview.Tally.Streak)

	wireAnnouncements := make([]response.Announcement, len(announcements))
	for i, a := range announcements {
		wireAnnouncements[i] = response.AnnouncementFromModel(a)
	}

	response.JSON(w, http.StatusOK, response.GameDataResponse{
		Daily:         response.DailyStatsFromModel(overview.Daily),
		Mood:          string(overview.Mood),
		Streak:        response.StreakFromModel(overview.Tally.Streak),
		DevAllocation: dump.Remaining,
		TopMooner:     response.DailyLeaderFromModel(overview.TopMooner),
		MostRugged:    response.DailyLeaderFromModel(overview.MostRugged),
		Announcements: wireAnnouncements,
		GlobalEvent:   response.GlobalEventFromModel(banner),
	})
}

// Stats handles GET /api/v1/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Collect(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsResponse{
		Global:   response.GlobalStatsFromModel(overview.Global),
		Daily:    response.DailyStatsFromModel(overview.Daily),
		Mood:     string(overview.Mood),
		Extremes: response.ExtremeStatsFromModel(h.statsService.Extremes(overview.Players)),
		TaxPaid:  overview.Tally.TaxPaid,
	})
}

// Leaderboards handles GET /api/v1/leaderboards
func (h *StatsHandler) Leaderboards(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Collect(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	boards := h.statsService.WireLeaderboards(overview.Players)
	response.JSON(w, http.StatusOK, response.LeaderboardsFromModel(boards))
}

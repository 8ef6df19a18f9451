package stats

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/rfallows/moonrug/internal/dependencies/clock"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/storage"
)

const (
	// LeaderboardSize is the number of entries per leaderboard
	LeaderboardSize = 10

	// LuckiestMinFlips is the minimum flip count to qualify for the
	// luckiest-player superlative
	LuckiestMinFlips = 3

	// DevDumpMax caps how much allocation one dump event can shed
	DevDumpMax = 5

	// Mood thresholds on the global moon ratio
	moodMoonThreshold = 0.6
	moodRugThreshold  = 0.4
)

const dateLayout = "2006-01-02"

// Service derives statistics views from the player set and flip ledger.
// Everything here is a pure computation except ApplyDevDump, which is the
// aggregator's single mutation path.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new stats service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Global computes lifetime totals across all players
func (s *Service) Global(players []*model.Player) model.GlobalStats {
	g := model.GlobalStats{LastUpdated: s.clock.Now()}
	for _, p := range players {
		g.TotalMoons += p.TotalMoons
		g.TotalRugs += p.TotalRugs
		g.TotalFlips += p.TotalFlips
	}
	return g
}

// Leaderboards returns the top players by each counter, descending, with
// ties broken by player creation order
func (s *Service) Leaderboards(players []*model.Player) model.Leaderboards {
	return model.Leaderboards{
		TopMooners: topBy(players, func(p *model.Player) int { return p.TotalMoons }, false),
		TopRuggers: topBy(players, func(p *model.Player) int { return p.TotalRugs }, false),
		MostActive: topBy(players, func(p *model.Player) int { return p.TotalFlips }, false),
	}
}

// WireLeaderboards is the leaderboard variant served over HTTP: players
// with a zero counter are excluded
func (s *Service) WireLeaderboards(players []*model.Player) model.Leaderboards {
	return model.Leaderboards{
		TopMooners: topBy(players, func(p *model.Player) int { return p.TotalMoons }, true),
		TopRuggers: topBy(players, func(p *model.Player) int { return p.TotalRugs }, true),
		MostActive: topBy(players, func(p *model.Player) int { return p.TotalFlips }, true),
	}
}

func topBy(players []*model.Player, counter func(*model.Player) int, skipZero bool) []*model.Player {
	ranked := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if skipZero && counter(p) == 0 {
			continue
		}
		ranked = append(ranked, p)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counter(ranked[i]) > counter(ranked[j])
	})
	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	return ranked
}

// Extremes computes the superlative performers. Players who have never
// flipped are ignored; the luckiest slot additionally requires at least
// LuckiestMinFlips flips. Ties go to the first-encountered player. All
// slots are nil when no player qualifies.
func (s *Service) Extremes(players []*model.Player) model.ExtremeStats {
	var extremes model.ExtremeStats

	for _, p := range players {
		if p.TotalFlips == 0 {
			continue
		}
		if extremes.MoonChampion == nil || p.TotalMoons > extremes.MoonChampion.TotalMoons {
			extremes.MoonChampion = p
		}
		if extremes.RugKing == nil || p.TotalRugs > extremes.RugKing.TotalRugs {
			extremes.RugKing = p
		}
		if extremes.MostActive == nil || p.TotalFlips > extremes.MostActive.TotalFlips {
			extremes.MostActive = p
		}
		if p.TotalFlips >= LuckiestMinFlips {
			if extremes.Luckiest == nil || p.MoonRate() > extremes.Luckiest.MoonRate() {
				extremes.Luckiest = p
			}
		}
	}

	return extremes
}

// Daily rebuilds the rollup for the calendar day of now (local time) from
// the ledger, along with the day's top mooner and most-rugged player
func (s *Service) Daily(flips []*model.FlipEvent, now time.Time) (model.DailyStats, model.DailyLeader, model.DailyLeader) {
	today := now.Local().Format(dateLayout)
	daily := model.DailyStats{Date: today}

	moonsByUser := make(map[string]int)
	rugsByUser := make(map[string]int)
	var order []string
	seen := make(map[string]bool)

	for _, f := range flips {
		if f.Timestamp.Local().Format(dateLayout) != today {
			continue
		}
		daily.Total++
		if !seen[f.Username] {
			seen[f.Username] = true
			order = append(order, f.Username)
		}
		if f.Result == model.ResultMoon {
			daily.Moons++
			moonsByUser[f.Username]++
		} else {
			daily.Rugs++
			rugsByUser[f.Username]++
		}
	}

	if daily.Total > 0 {
		daily.MoonPercent = roundPercent(daily.Moons, daily.Total)
		daily.RugPercent = roundPercent(daily.Rugs, daily.Total)
	}

	var topMooner, mostRugged model.DailyLeader
	for _, username := range order {
		if moonsByUser[username] > topMooner.Count {
			topMooner = model.DailyLeader{Name: username, Count: moonsByUser[username]}
		}
		if rugsByUser[username] > mostRugged.Count {
			mostRugged = model.DailyLeader{Name: username, Count: rugsByUser[username]}
		}
	}

	return daily, topMooner, mostRugged
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Mood classifies the community from lifetime totals: moon ratio above 0.6
// is mooning, below 0.4 is rugging, anything else (including no flips at
// all) is neutral
func (s *Service) Mood(players []*model.Player) model.CommunityMood {
	var moons, rugs int
	for _, p := range players {
		moons += p.TotalMoons
		rugs += p.TotalRugs
	}
	total := moons + rugs
	if total == 0 {
		return model.MoodNeutral
	}
	ratio := float64(moons) / float64(total)
	switch {
	case ratio > moodMoonThreshold:
		return model.MoodMooning
	case ratio < moodRugThreshold:
		return model.MoodRugging
	default:
		return model.MoodNeutral
	}
}

// DumpResult describes the outcome of a dev-allocation dump check
type DumpResult struct {
	Dumped    int `json:"dumped"`
	Remaining int `json:"remaining"`
}

// ApplyDevDump decrements the dev allocation when the day is rugging
// (rug share beats moon share and exceeds 50%). The decrement is capped at
// DevDumpMax and the allocation never goes below zero; once at zero it
// stays there. This is the only aggregator operation that writes state.
func (s *Service) ApplyDevDump(ctx context.Context, daily model.DailyStats) (DumpResult, error) {
	tally, err := s.storage.GetTally(ctx)
	if err != nil {
		return DumpResult{}, err
	}

	result := DumpResult{Remaining: tally.DevAllocation}
	if daily.RugPercent <= daily.MoonPercent || daily.RugPercent <= 50 {
		return result, nil
	}
	if tally.DevAllocation == 0 {
		return result, nil
	}

	result.Dumped = min(DevDumpMax, tally.DevAllocation)
	tally.DevAllocation -= result.Dumped
	result.Remaining = tally.DevAllocation

	if err := s.storage.SaveTally(ctx, tally); err != nil {
		return DumpResult{}, err
	}

	s.logger.Info("dev allocation dumped",
		slog.Int("dumped", result.Dumped),
		slog.Int("remaining", result.Remaining),
	)
	return result, nil
}

// Tally returns the persisted tally (streak, tax counters, dev allocation)
func (s *Service) Tally(ctx context.Context) (*model.Tally, error) {
	return s.storage.GetTally(ctx)
}

// Overview bundles the loaded state and the derived views a single request
// needs, so handlers make one storage round-trip
type Overview struct {
	Players    []*model.Player
	Flips      []*model.FlipEvent
	Tally      *model.Tally
	Global     model.GlobalStats
	Daily      model.DailyStats
	TopMooner  model.DailyLeader
	MostRugged model.DailyLeader
	Mood       model.CommunityMood
}

// Collect loads players, the flip ledger and the tally, then computes the
// standard derived views for the current moment
func (s *Service) Collect(ctx context.Context) (*Overview, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	flips, err := s.storage.ListFlips(ctx)
	if err != nil {
		return nil, err
	}
	tally, err := s.storage.GetTally(ctx)
	if err != nil {
		return nil, err
	}

	daily, topMooner, mostRugged := s.Daily(flips, s.clock.Now())

	return &Overview{
		Players:    players,
		Flips:      flips,
		Tally:      tally,
		Global:     s.Global(players),
		Daily:      daily,
		TopMooner:  topMooner,
		MostRugged: mostRugged,
		Mood:       s.Mood(players),
	}, nil
}

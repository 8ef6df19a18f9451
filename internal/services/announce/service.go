package announce

import (
	"fmt"
	"time"

	"github.com/rfallows/moonrug/internal/dependencies/clock"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/services/stats"
)

const (
	// RewardMinMoons is the daily moon count that earns the top-mooner
	// reward announcement
	RewardMinMoons = 5

	// Banner thresholds
	rugSeasonMinFlips  = 10
	bullRunMinFlips    = 100
	bannerShare        = 0.6
	legendaryMinStreak = 10
)

// Config holds configuration for the announcement service
type Config struct {
	// BannerDuration is how long a global event banner stays visible
	BannerDuration time.Duration
}

// DefaultConfig returns default announcement configuration
func DefaultConfig() Config {
	return Config{
		BannerDuration: 30 * time.Second,
	}
}

// Service turns aggregate statistics into ordered announcements and the
// single global event banner. It performs no mutation; the dev-allocation
// decrement feeding rule 2 happens in stats.Service.ApplyDevDump.
type Service struct {
	clock clock.Clock
	cfg   Config
}

// New creates a new announcement service
func New(clock clock.Clock, cfg Config) *Service {
	if cfg.BannerDuration == 0 {
		cfg.BannerDuration = DefaultConfig().BannerDuration
	}
	return &Service{
		clock: clock,
		cfg:   cfg,
	}
}

// Classify evaluates the announcement rules in fixed order. Rules fire
// independently except the mood rules, which are mutually exclusive; the
// returned order is the display order.
func (s *Service) Classify(
	daily model.DailyStats,
	mood model.CommunityMood,
	global model.GlobalStats,
	dump stats.DumpResult,
	topMooner model.DailyLeader,
) []model.Announcement {
	announcements := []model.Announcement{
		{
			Kind:   model.AnnounceGameLive,
			Title:  "FlipCoin Game is Live!",
			Detail: "Welcome to the ultimate flip game! Moon or Rug - the choice is yours!",
		},
	}

	if dump.Dumped > 0 {
		announcements = append(announcements, model.Announcement{
			Kind:   model.AnnounceDevDump,
			Title:  fmt.Sprintf("Rugs > Moons: dev dumps %d%% into circulation!", dump.Dumped),
			Detail: fmt.Sprintf("Community is rugging (%d%%)! Dev allocation: %d%% remaining", daily.RugPercent, dump.Remaining),
		})
	}

	if daily.MoonPercent > daily.RugPercent && daily.MoonPercent > 50 {
		announcements = append(announcements, model.Announcement{
			Kind:   model.AnnounceBurn,
			Title:  "Moons > Rugs: owner burns 5% of supply!",
			Detail: fmt.Sprintf("Too much mooning (%d%%)! Deflationary burn activated!", daily.MoonPercent),
		})
	}

	if topMooner.Count >= RewardMinMoons {
		announcements = append(announcements, model.Announcement{
			Kind:   model.AnnounceReward,
			Title:  "Top Mooner of the Day gets 0.5% of owner share!",
			Detail: fmt.Sprintf("%s is leading with %d moons!", topMooner.Name, topMooner.Count),
		})
	}

	if dump.Remaining == 0 {
		announcements = append(announcements, model.Announcement{
			Kind:   model.AnnounceTakeover,
			Title:  "Dev allocation depleted! Community takeover!",
			Detail: "Dev has 0% tokens left! The community now controls the project!",
		})
	}

	announcements = append(announcements, s.moodAnnouncement(mood, global))
	return announcements
}

func (s *Service) moodAnnouncement(mood model.CommunityMood, global model.GlobalStats) model.Announcement {
	switch mood {
	case model.MoodMooning:
		return model.Announcement{
			Kind:   model.AnnounceMood,
			Title:  "Community is MOONING!",
			Detail: fmt.Sprintf("%d total moons vs %d rugs!", global.TotalMoons, global.TotalRugs),
		}
	case model.MoodRugging:
		return model.Announcement{
			Kind:   model.AnnounceMood,
			Title:  "RUG SEASON ACTIVATED!",
			Detail: fmt.Sprintf("%d total rugs vs %d moons!", global.TotalRugs, global.TotalMoons),
		}
	default:
		return model.Announcement{
			Kind:   model.AnnounceMood,
			Title:  "Market in Balance",
			Detail: "Equal moon/rug ratio! The flip gods are neutral today!",
		}
	}
}

// Banner returns the active global event banner, or nil when no condition
// holds. Only the first matching condition fires: rug season, then bull
// run, then legendary streak.
func (s *Service) Banner(daily model.DailyStats, streak model.Streak) *model.GlobalEvent {
	expires := s.clock.Now().Add(s.cfg.BannerDuration)

	if daily.Total >= rugSeasonMinFlips {
		if float64(daily.Rugs)/float64(daily.Total) > bannerShare {
			return &model.GlobalEvent{
				Kind:      model.EventRugSeason,
				Message:   "Rug Season is here! Hide your bags!",
				ExpiresAt: expires,
			}
		}
		if daily.Total >= bullRunMinFlips && float64(daily.Moons)/float64(daily.Total) > bannerShare {
			return &model.GlobalEvent{
				Kind:      model.EventBullRun,
				Message:   "Bull Run Mode Activated!",
				ExpiresAt: expires,
			}
		}
	}

	if streak.Count >= legendaryMinStreak && streak.Type == model.ResultMoon {
		return &model.GlobalEvent{
			Kind:      model.EventLegendaryStreak,
			Message:   fmt.Sprintf("Legendary Streak! %s is blessed by the Flip Gods!", streak.Player),
			ExpiresAt: expires,
		}
	}

	return nil
}

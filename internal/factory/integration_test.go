package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/services/stats"
)

func kinds(announcements []model.Announcement) []model.AnnouncementKind {
	out := make([]model.AnnouncementKind, len(announcements))
	for i, a := range announcements {
		out[i] = a.Kind
	}
	return out
}

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) register(username, device string) *model.Player {
	player, err := s.app.IdentityService.Resolve(s.ctx, username, model.DeviceID(device))
	s.Require().NoError(err)
	return player
}

// Test: register, flip, and read every derived view
func (s *IntegrationSuite) TestFullGameFlow() {
	alice := s.register("alice", "device-a")
	bob := s.register("bob", "device-b")

	// alice: moon, moon; bob: rug
	s.app.MockRandom.QueueIntn(0, 0, 1)
	_, _, err := s.app.FlipController.Flip(s.ctx, alice.ID)
	s.Require().NoError(err)
	_, _, err = s.app.FlipController.Flip(s.ctx, alice.ID)
	s.Require().NoError(err)
	_, _, err = s.app.FlipController.Flip(s.ctx, bob.ID)
	s.Require().NoError(err)

	overview, err := s.app.StatsService.Collect(s.ctx)
	s.Require().NoError(err)

	s.Equal(2, overview.Global.TotalMoons)
	s.Equal(1, overview.Global.TotalRugs)
	s.Equal(3, overview.Daily.Total)
	s.Equal(67, overview.Daily.MoonPercent)
	s.Equal(model.MoodMooning, overview.Mood)
	s.Equal(model.DailyLeader{Name: "alice", Count: 2}, overview.TopMooner)
	s.Equal(model.DailyLeader{Name: "bob", Count: 1}, overview.MostRugged)

	// bob's flip broke alice's streak
	s.Equal(model.Streak{Player: "bob", Count: 1, Type: model.ResultRug}, overview.Tally.Streak)
	s.Equal(1, overview.Tally.TaxPaid["bob"])

	boards := s.app.StatsService.Leaderboards(overview.Players)
	s.Equal("alice", boards.TopMooners[0].Username)
	s.Equal("bob", boards.TopRuggers[0].Username)

	announcements := s.app.AnnounceService.Classify(
		overview.Daily, overview.Mood, overview.Global,
		stats.DumpResult{Remaining: overview.Tally.DevAllocation}, overview.TopMooner)
	s.Equal(model.AnnounceGameLive, announcements[0].Kind)
	s.Equal(model.AnnounceMood, announcements[len(announcements)-1].Kind)
}

// Test: a rugging day depletes the dev allocation down to zero
func (s *IntegrationSuite) TestDevAllocationDepletes() {
	alice := s.register("alice", "device-a")

	for i := 0; i < 3; i++ {
		s.app.MockRandom.QueueIntn(1)
		_, _, err := s.app.FlipController.Flip(s.ctx, alice.ID)
		s.Require().NoError(err)
	}

	overview, err := s.app.StatsService.Collect(s.ctx)
	s.Require().NoError(err)
	s.Equal(100, overview.Daily.RugPercent)

	remaining := model.DevAllocationStart
	for i := 0; i < model.DevAllocationStart/5; i++ {
		dump, err := s.app.StatsService.ApplyDevDump(s.ctx, overview.Daily)
		s.Require().NoError(err)
		s.Equal(5, dump.Dumped)
		remaining -= 5
		s.Equal(remaining, dump.Remaining)
	}

	// Depleted and sticky
	dump, err := s.app.StatsService.ApplyDevDump(s.ctx, overview.Daily)
	s.Require().NoError(err)
	s.Zero(dump.Dumped)
	s.Zero(dump.Remaining)

	announcements := s.app.AnnounceService.Classify(
		overview.Daily, overview.Mood, overview.Global, dump, model.DailyLeader{})
	s.Contains(kinds(announcements), model.AnnounceTakeover)
}

// Test: the daily rollup resets when the clock crosses midnight
func (s *IntegrationSuite) TestDailyRollupFollowsClock() {
	alice := s.register("alice", "device-a")

	s.app.MockRandom.QueueIntn(0)
	_, _, err := s.app.FlipController.Flip(s.ctx, alice.ID)
	s.Require().NoError(err)

	overview, err := s.app.StatsService.Collect(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, overview.Daily.Total)

	s.app.MockClock.Advance(24 * time.Hour)

	overview, err = s.app.StatsService.Collect(s.ctx)
	s.Require().NoError(err)
	s.Zero(overview.Daily.Total)
	// Lifetime totals unaffected by the day change
	s.Equal(1, overview.Global.TotalFlips)
}

// Test: a long moon streak raises the legendary banner
func (s *IntegrationSuite) TestLegendaryStreakBanner() {
	alice := s.register("alice", "device-a")

	for i := 0; i < 10; i++ {
		s.app.MockRandom.QueueIntn(0)
		_, _, err := s.app.FlipController.Flip(s.ctx, alice.ID)
		s.Require().NoError(err)
	}

	overview, err := s.app.StatsService.Collect(s.ctx)
	s.Require().NoError(err)
	s.Equal(10, overview.Tally.Streak.Count)

	banner := s.app.AnnounceService.Banner(model.DailyStats{}, overview.Tally.Streak)
	s.Require().NotNil(banner)
	s.Equal(model.EventLegendaryStreak, banner.Kind)
	s.Equal(s.app.MockClock.CurrentTime.Add(30*time.Second), banner.ExpiresAt)
}

// Test: snapshot from one backend restores into another
func (s *IntegrationSuite) TestSnapshotRestoreRoundTrip() {
	alice := s.register("alice", "device-a")
	s.app.MockRandom.QueueIntn(0)
	_, _, err := s.app.FlipController.Flip(s.ctx, alice.ID)
	s.Require().NoError(err)

	snapshot, err := s.app.Storage.Snapshot(s.ctx)
	s.Require().NoError(err)

	other := NewTestApp()
	s.Require().NoError(other.Storage.Restore(s.ctx, snapshot))

	restored, err := other.IdentityService.Get(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(1, restored.TotalMoons)
}

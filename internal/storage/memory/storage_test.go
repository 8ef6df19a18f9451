package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rfallows/moonrug/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) player(id, username string) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		Username:  username,
		DeviceID:  "device-1",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) flip(id, username string, result model.FlipResult) *model.FlipEvent {
	return &model.FlipEvent{
		ID:       model.FlipID(id),
		PlayerID: model.PlayerID("player-" + username),
		Username: username,
		Result:   result,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "alice")

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("alice", retrieved.Username)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByUsername() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerByUsernameNotFound() {
	_, err := s.storage.GetPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersCreationOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))
	_ = s.storage.SavePlayer(s.ctx, s.player("player-2", "bob"))
	_ = s.storage.SavePlayer(s.ctx, s.player("player-3", "carol"))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("alice", players[0].Username)
	s.Equal("bob", players[1].Username)
	s.Equal("carol", players[2].Username)
}

func (s *StorageSuite) TestUpdateKeepsListPosition() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))
	_ = s.storage.SavePlayer(s.ctx, s.player("player-2", "bob"))

	updated := s.player("player-1", "alice")
	updated.TotalMoons = 5
	_ = s.storage.SavePlayer(s.ctx, updated)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Require().Len(players, 2)
	s.Equal("alice", players[0].Username)
	s.Equal(5, players[0].TotalMoons)
}

// Flip ledger tests

func (s *StorageSuite) TestAppendAndListFlips() {
	_ = s.storage.AppendFlip(s.ctx, s.flip("flip-1", "alice", model.ResultMoon), 0)
	_ = s.storage.AppendFlip(s.ctx, s.flip("flip-2", "bob", model.ResultRug), 0)

	flips, err := s.storage.ListFlips(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(flips, 2)
	s.Equal(model.FlipID("flip-1"), flips[0].ID)
	s.Equal(model.FlipID("flip-2"), flips[1].ID)
}

func (s *StorageSuite) TestAppendFlipTrimsOldest() {
	for i, id := range []string{"flip-1", "flip-2", "flip-3", "flip-4"} {
		result := model.ResultMoon
		if i%2 == 1 {
			result = model.ResultRug
		}
		_ = s.storage.AppendFlip(s.ctx, s.flip(id, "alice", result), 2)
	}

	flips, _ := s.storage.ListFlips(s.ctx)
	s.Require().Len(flips, 2)
	s.Equal(model.FlipID("flip-3"), flips[0].ID)
	s.Equal(model.FlipID("flip-4"), flips[1].ID)
}

// Tally tests

func (s *StorageSuite) TestGetTallyDefault() {
	tally, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DevAllocationStart, tally.DevAllocation)
	s.NotNil(tally.TaxPaid)
	s.Zero(tally.Streak.Count)
}

func (s *StorageSuite) TestSaveAndGetTally() {
	tally := model.NewTally()
	tally.Streak = model.Streak{Player: "alice", Count: 3, Type: model.ResultMoon}
	tally.TaxPaid["alice"] = 2
	tally.DevAllocation = 90

	s.Require().NoError(s.storage.SaveTally(s.ctx, tally))

	retrieved, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(tally.Streak, retrieved.Streak)
	s.Equal(2, retrieved.TaxPaid["alice"])
	s.Equal(90, retrieved.DevAllocation)
}

func (s *StorageSuite) TestTallyIsDetached() {
	tally := model.NewTally()
	tally.TaxPaid["alice"] = 1
	s.Require().NoError(s.storage.SaveTally(s.ctx, tally))

	// Mutating the saved-in value must not leak into the store
	tally.TaxPaid["alice"] = 99

	first, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, first.TaxPaid["alice"])

	// Mutating a returned value must not either
	first.TaxPaid["alice"] = 99
	first.DevAllocation = 0

	second, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, second.TaxPaid["alice"])
	s.Equal(model.DevAllocationStart, second.DevAllocation)
}

func (s *StorageSuite) TestConcurrentTallyUpdates() {
	// Several players flipping at once each do a get-mutate-save cycle on
	// the tally; the store must hand out detached copies so the writes
	// never touch a shared map
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			name := fmt.Sprintf("player-%d", g)
			for i := 0; i < 50; i++ {
				tally, err := s.storage.GetTally(s.ctx)
				if !s.NoError(err) {
					return
				}
				tally.TaxPaid[name]++
				s.NoError(s.storage.SaveTally(s.ctx, tally))
			}
		}(g)
	}
	wg.Wait()

	tally, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.NotNil(tally.TaxPaid)
}

// Snapshot tests

func (s *StorageSuite) TestSnapshotAndRestore() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))
	_ = s.storage.AppendFlip(s.ctx, s.flip("flip-1", "alice", model.ResultMoon), 0)
	tally := model.NewTally()
	tally.TaxPaid["alice"] = 1
	_ = s.storage.SaveTally(s.ctx, tally)

	snapshot, err := s.storage.Snapshot(s.ctx)
	s.Require().NoError(err)

	other := New()
	s.Require().NoError(other.Restore(s.ctx, snapshot))

	player, err := other.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), player.ID)

	flips, _ := other.ListFlips(s.ctx)
	s.Len(flips, 1)

	restoredTally, _ := other.GetTally(s.ctx)
	s.Equal(1, restoredTally.TaxPaid["alice"])
}

func (s *StorageSuite) TestSnapshotIsDetached() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))
	tally := model.NewTally()
	tally.TaxPaid["alice"] = 1
	_ = s.storage.SaveTally(s.ctx, tally)

	snapshot, _ := s.storage.Snapshot(s.ctx)
	snapshot.Players[0].TotalMoons = 99
	snapshot.Tally.TaxPaid["alice"] = 99

	player, _ := s.storage.GetPlayer(s.ctx, "player-1")
	s.Zero(player.TotalMoons)

	current, _ := s.storage.GetTally(s.ctx)
	s.Equal(1, current.TaxPaid["alice"])
}

func (s *StorageSuite) TestRestoreWithoutTally() {
	state := model.GameState{}
	s.Require().NoError(s.storage.Restore(s.ctx, &state))

	tally, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DevAllocationStart, tally.DevAllocation)
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/rfallows/moonrug/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
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
		ID:        model.FlipID(id),
		PlayerID:  model.PlayerID("player-" + username),
		Username:  username,
		Result:    result,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
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

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("alice", players[0].Username)
	s.Equal("bob", players[1].Username)
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
	s.Equal(model.ResultRug, flips[1].Result)
}

func (s *StorageSuite) TestAppendFlipTrimsOldest() {
	for _, id := range []string{"flip-1", "flip-2", "flip-3"} {
		_ = s.storage.AppendFlip(s.ctx, s.flip(id, "alice", model.ResultMoon), 2)
	}

	flips, _ := s.storage.ListFlips(s.ctx)
	s.Require().Len(flips, 2)
	s.Equal(model.FlipID("flip-2"), flips[0].ID)
	s.Equal(model.FlipID("flip-3"), flips[1].ID)
}

// Tally tests

func (s *StorageSuite) TestGetTallyDefault() {
	tally, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DevAllocationStart, tally.DevAllocation)
	s.NotNil(tally.TaxPaid)
}

func (s *StorageSuite) TestSaveAndGetTally() {
	tally := model.NewTally()
	tally.Streak = model.Streak{Player: "alice", Count: 4, Type: model.ResultRug}
	tally.TaxPaid["alice"] = 3
	tally.DevAllocation = 85

	s.Require().NoError(s.storage.SaveTally(s.ctx, tally))

	retrieved, err := s.storage.GetTally(s.ctx)
	s.Require().NoError(err)
	s.Equal(tally.Streak, retrieved.Streak)
	s.Equal(3, retrieved.TaxPaid["alice"])
	s.Equal(85, retrieved.DevAllocation)
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
	s.Len(snapshot.Players, 1)
	s.Len(snapshot.Flips, 1)

	// Restore into a second player's worth of state, replacing the first
	snapshot.Players = append(snapshot.Players, s.player("player-2", "bob"))
	s.Require().NoError(s.storage.Restore(s.ctx, snapshot))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("alice", players[0].Username)
	s.Equal("bob", players[1].Username)

	restoredTally, _ := s.storage.GetTally(s.ctx)
	s.Equal(1, restoredTally.TaxPaid["alice"])
}

func (s *StorageSuite) TestRestoreDropsStaleUsernameIndex() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "alice"))

	state := model.GameState{Players: []*model.Player{s.player("player-2", "bob")}}
	s.Require().NoError(s.storage.Restore(s.ctx, &state))

	// alice was not part of the restored state, so her index entry must go
	_, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.False(s.mini.Exists(usernameIndexKey("alice")))

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-2"), retrieved.ID)
}

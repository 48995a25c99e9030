// Package storetest holds the behaviour every catalog.Store backend must share.
package storetest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

// StoreSuite runs the catalog.Store contract against a backend. Embed it in a
// backend's suite and set NewStore before the suite runs.
type StoreSuite struct {
	suite.Suite
	// NewStore returns an empty store for each test.
	NewStore func() catalog.Store

	Store catalog.Store
	Ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.Require().NotNil(s.NewStore, "NewStore must be set")
	s.Store = s.NewStore()
	s.Ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.Store != nil {
		s.NoError(s.Store.Close())
	}
}

func (s *StoreSuite) create(name string, capacity int, owners ...string) *models.Game {
	game := &models.Game{Name: name, Capacity: capacity, Owners: owners}
	s.Require().NoError(s.Store.CreateGame(s.Ctx, game))
	return game
}

func (s *StoreSuite) TestCreateAssignsIdentity() {
	game := s.create("Zelda", 2, "Alice", "Bob")

	s.NotEqual(uuid.Nil, game.ID)
	s.False(game.CreatedAt.IsZero())
	s.False(game.UpdatedAt.IsZero())
}

func (s *StoreSuite) TestGetGameRoundTrip() {
	game := &models.Game{
		Name:              "Ace",
		Capacity:          4,
		Owners:            []string{"Bob", "alice"},
		FullPartyOnly:     true,
		RemotePlayEnabled: true,
	}
	s.Require().NoError(s.Store.CreateGame(s.Ctx, game))

	got, err := s.Store.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Equal("Ace", got.Name)
	s.Equal(4, got.Capacity)
	s.Equal([]string{"Bob", "alice"}, got.Owners)
	s.True(got.FullPartyOnly)
	s.True(got.RemotePlayEnabled)
	s.WithinDuration(game.CreatedAt, got.CreatedAt, time.Second)
}

func (s *StoreSuite) TestEmptyOwnersAreNotNil() {
	game := s.create("Solo", 1)

	got, err := s.Store.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.NotNil(got.Owners)
	s.Empty(got.Owners)
}

func (s *StoreSuite) TestGetGameNotFound() {
	_, err := s.Store.GetGame(s.Ctx, uuid.New())
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *StoreSuite) TestGetGameByName() {
	game := s.create("Mario Kart", 4)

	got, err := s.Store.GetGameByName(s.Ctx, "  MARIO kart ")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)

	_, err = s.Store.GetGameByName(s.Ctx, "Mario")
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *StoreSuite) TestCreateDuplicateName() {
	s.create("Zelda", 2)

	err := s.Store.CreateGame(s.Ctx, &models.Game{Name: "zelda", Capacity: 1})
	s.ErrorIs(err, models.ErrConflict)

	games, err := s.Store.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}

func (s *StoreSuite) TestListGames() {
	s.create("Zelda", 2)
	s.create("Mario", 4)
	s.create("Tetris", 1)

	games, err := s.Store.ListGames(s.Ctx)
	s.Require().NoError(err)

	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	s.Equal([]string{"Mario", "Tetris", "Zelda"}, names)
}

func (s *StoreSuite) TestListGamesEmpty() {
	games, err := s.Store.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StoreSuite) TestSaveGame() {
	game := s.create("Zelda", 2, "Alice")

	game.Name = "Zelda II"
	game.Capacity = 3
	game.Owners = []string{"Alice", "Bob"}
	game.RemotePlayEnabled = true
	s.Require().NoError(s.Store.SaveGame(s.Ctx, game))

	got, err := s.Store.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("Zelda II", got.Name)
	s.Equal(3, got.Capacity)
	s.Equal([]string{"Alice", "Bob"}, got.Owners)
	s.True(got.RemotePlayEnabled)
	s.False(got.UpdatedAt.Before(got.CreatedAt))

	_, err = s.Store.GetGameByName(s.Ctx, "Zelda")
	s.ErrorIs(err, models.ErrNotFound, "old name is released")

	renamed, err := s.Store.GetGameByName(s.Ctx, "zelda ii")
	s.Require().NoError(err)
	s.Equal(game.ID, renamed.ID)
}

func (s *StoreSuite) TestSaveGameKeepsCaseOnlyRename() {
	game := s.create("zelda", 2)

	game.Name = "Zelda"
	s.Require().NoError(s.Store.SaveGame(s.Ctx, game))

	got, err := s.Store.GetGameByName(s.Ctx, "ZELDA")
	s.Require().NoError(err)
	s.Equal("Zelda", got.Name)
}

func (s *StoreSuite) TestSaveGameNameConflict() {
	s.create("Zelda", 2)
	mario := s.create("Mario", 4)

	mario.Name = "ZELDA"
	s.ErrorIs(s.Store.SaveGame(s.Ctx, mario), models.ErrConflict)

	got, err := s.Store.GetGame(s.Ctx, mario.ID)
	s.Require().NoError(err)
	s.Equal("Mario", got.Name)
}

func (s *StoreSuite) TestSaveGameNotFound() {
	err := s.Store.SaveGame(s.Ctx, &models.Game{ID: uuid.New(), Name: "Ghost", Capacity: 1})
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *StoreSuite) TestDeleteGame() {
	game := s.create("Zelda", 2)

	s.Require().NoError(s.Store.DeleteGame(s.Ctx, game.ID))

	_, err := s.Store.GetGame(s.Ctx, game.ID)
	s.ErrorIs(err, models.ErrNotFound)
	_, err = s.Store.GetGameByName(s.Ctx, "Zelda")
	s.ErrorIs(err, models.ErrNotFound)

	s.ErrorIs(s.Store.DeleteGame(s.Ctx, game.ID), models.ErrNotFound)

	s.create("Zelda", 3)
}

func (s *StoreSuite) TestReturnsCopies() {
	game := s.create("Zelda", 2, "Alice")

	got, err := s.Store.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	got.Owners[0] = "Mallory"
	got.Capacity = 99

	games, err := s.Store.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	games[0].Owners = append(games[0].Owners, "Eve")

	again, err := s.Store.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Alice"}, again.Owners)
	s.Equal(2, again.Capacity)
}

func (s *StoreSuite) TestServiceOnStore() {
	service := catalog.NewService(s.Store, nil, nil)

	_, err := service.CreateGame(s.Ctx, catalog.NewGame{Name: "Zelda", Capacity: 2, Owners: []string{"Alice", "Bob"}})
	s.Require().NoError(err)
	_, err = service.CreateGame(s.Ctx, catalog.NewGame{
		Name: "Ace", Capacity: 4, Owners: []string{"Alice"}, RemotePlayEnabled: true,
	})
	s.Require().NoError(err)

	matches, err := service.PlayableGames(s.Ctx, []string{"alice", "BOB"})
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal("Ace", matches[0].Game.Name)
	s.Equal("Zelda", matches[1].Game.Name)
}

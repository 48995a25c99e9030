package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
	"gamersdb/backend/internal/storage/storetest"
)

type MemoryStoreSuite struct {
	storetest.StoreSuite
}

func TestMemoryStoreSuite(t *testing.T) {
	s := new(MemoryStoreSuite)
	s.NewStore = func() catalog.Store { return New() }
	suite.Run(t, s)
}

func TestSaveGameRefreshesUpdatedAt(t *testing.T) {
	store := New()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	ctx := context.Background()
	game := &models.Game{Name: "Zelda", Capacity: 2}
	require.NoError(t, store.CreateGame(ctx, game))

	clock = clock.Add(time.Hour)
	game.Capacity = 3
	require.NoError(t, store.SaveGame(ctx, game))

	got, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), got.CreatedAt)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), got.UpdatedAt)
}

func TestConcurrentCreatesClaimNameOnce(t *testing.T) {
	store := New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.CreateGame(ctx, &models.Game{Name: "Zelda", Capacity: 2}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
	"gamersdb/backend/internal/storage/storetest"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, DefaultConfig()), mr
}

type RedisStoreSuite struct {
	storetest.StoreSuite
}

func TestRedisStoreSuite(t *testing.T) {
	s := new(RedisStoreSuite)
	s.NewStore = func() catalog.Store {
		store, _ := newTestStorage(s.T())
		return store
	}
	suite.Run(t, s)
}

func TestKeysUsePrefix(t *testing.T) {
	store, mr := newTestStorage(t)
	defer store.Close()

	game := &models.Game{Name: "Zelda", Capacity: 2}
	require.NoError(t, store.CreateGame(context.Background(), game))

	assert.True(t, mr.Exists("gamersdb:game:"+game.ID.String()))
	assert.True(t, mr.Exists("gamersdb:games"))
	assert.Equal(t, game.ID.String(), mr.HGet("gamersdb:names", "zelda"))
}

func TestListSkipsVanishedGames(t *testing.T) {
	store, mr := newTestStorage(t)
	defer store.Close()
	ctx := context.Background()

	keep := &models.Game{Name: "Zelda", Capacity: 2}
	gone := &models.Game{Name: "Mario", Capacity: 4}
	require.NoError(t, store.CreateGame(ctx, keep))
	require.NoError(t, store.CreateGame(ctx, gone))

	mr.Del("gamersdb:game:" + gone.ID.String())

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, keep.ID, games[0].ID)
}

func TestServerDownIsUnavailable(t *testing.T) {
	store, mr := newTestStorage(t)
	defer store.Close()

	mr.Close()

	_, err := store.ListGames(context.Background())
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := DefaultConfig()
	cfg.URL = "redis://" + addr
	_, err := New(cfg)
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()
	store, err := New(cfg)
	require.NoError(t, err)
	defer store.Close()

	games, err := store.ListGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

// failingPipelines makes MULTI/EXEC pipelines fail while enabled.
type failingPipelines struct {
	enabled atomic.Bool
}

func (h *failingPipelines) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *failingPipelines) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

func (h *failingPipelines) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if h.enabled.Load() {
			return errors.New("connection reset")
		}
		return next(ctx, cmds)
	}
}

func newFailingStorage(t *testing.T) (*Storage, *failingPipelines, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	hook := &failingPipelines{}
	client.AddHook(hook)

	store := NewWithClient(client, DefaultConfig())
	t.Cleanup(func() { _ = store.Close() })
	return store, hook, mr
}

func TestFailedCreateReleasesName(t *testing.T) {
	store, hook, mr := newFailingStorage(t)
	ctx := context.Background()

	hook.enabled.Store(true)
	err := store.CreateGame(ctx, &models.Game{Name: "Zelda", Capacity: 2})
	require.ErrorIs(t, err, models.ErrUnavailable)
	hook.enabled.Store(false)

	assert.Empty(t, mr.HGet("gamersdb:names", "zelda"))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	game := &models.Game{Name: "Zelda", Capacity: 2}
	require.NoError(t, store.CreateGame(ctx, game))

	got, err := store.GetGameByName(ctx, "zelda")
	require.NoError(t, err)
	assert.Equal(t, game.ID, got.ID)
}

func TestFailedRenameReleasesNewName(t *testing.T) {
	store, hook, _ := newFailingStorage(t)
	ctx := context.Background()

	game := &models.Game{Name: "Zelda", Capacity: 2}
	require.NoError(t, store.CreateGame(ctx, game))

	hook.enabled.Store(true)
	game.Name = "Mario"
	require.ErrorIs(t, store.SaveGame(ctx, game), models.ErrUnavailable)
	hook.enabled.Store(false)

	got, err := store.GetGameByName(ctx, "Zelda")
	require.NoError(t, err, "old name is still held")
	assert.Equal(t, "Zelda", got.Name)

	_, err = store.GetGameByName(ctx, "Mario")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, store.CreateGame(ctx, &models.Game{Name: "Mario", Capacity: 4}))
}

func TestReleaseNameKeepsOtherClaims(t *testing.T) {
	store, _ := newTestStorage(t)
	defer store.Close()
	ctx := context.Background()

	game := &models.Game{Name: "Zelda", Capacity: 2}
	require.NoError(t, store.CreateGame(ctx, game))

	store.releaseName(ctx, "zelda", models.GameID{})

	got, err := store.GetGameByName(ctx, "Zelda")
	require.NoError(t, err)
	assert.Equal(t, game.ID, got.ID)
}

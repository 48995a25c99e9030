package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

// Storage is a Redis-backed implementation of catalog.Store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ catalog.Store = (*Storage)(nil)

func (s *Storage) ListGames(ctx context.Context) ([]models.Game, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	if len(ids) == 0 {
		return []models.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.gameKeyString(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	games := make([]models.Game, 0, len(values))
	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			// Deleted between SMEMBERS and MGET.
			continue
		}
		game, err := decodeGame([]byte(data))
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id models.GameID) (*models.Game, error) {
	data, err := s.client.Get(ctx, s.gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, unavailable(err)
	}

	game, err := decodeGame(data)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*models.Game, error) {
	idStr, err := s.client.HGet(ctx, s.namesKey(), catalog.NameKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, unavailable(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt name index entry %q: %w", idStr, err)
	}
	return s.GetGame(ctx, id)
}

func (s *Storage) CreateGame(ctx context.Context, game *models.Game) error {
	now := time.Now().UTC()
	game.ID = uuid.New()
	game.CreatedAt = now
	game.UpdatedAt = now

	// Claim the name first so two creates cannot both succeed.
	claimed, err := s.client.HSetNX(ctx, s.namesKey(), catalog.NameKey(game.Name), game.ID.String()).Result()
	if err != nil {
		return unavailable(err)
	}
	if !claimed {
		return fmt.Errorf("%w: a game named %q already exists", models.ErrConflict, game.Name)
	}

	data, err := json.Marshal(game.Clone())
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, s.indexKey(), game.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		s.releaseName(ctx, catalog.NameKey(game.Name), game.ID)
		return unavailable(err)
	}
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *models.Game) error {
	existing, err := s.GetGame(ctx, game.ID)
	if err != nil {
		return err
	}

	oldKey := catalog.NameKey(existing.Name)
	newKey := catalog.NameKey(game.Name)
	if oldKey != newKey {
		claimed, err := s.client.HSetNX(ctx, s.namesKey(), newKey, game.ID.String()).Result()
		if err != nil {
			return unavailable(err)
		}
		if !claimed {
			return fmt.Errorf("%w: a game named %q already exists", models.ErrConflict, game.Name)
		}
	}

	game.CreatedAt = existing.CreatedAt
	game.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(game.Clone())
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.gameKey(game.ID), data, 0)
	if oldKey != newKey {
		pipe.HDel(ctx, s.namesKey(), oldKey)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		if oldKey != newKey {
			s.releaseName(ctx, newKey, game.ID)
		}
		return unavailable(err)
	}
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id models.GameID) error {
	existing, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.gameKey(id))
	pipe.SRem(ctx, s.indexKey(), id.String())
	pipe.HDel(ctx, s.namesKey(), catalog.NameKey(existing.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

// releaseNameScript deletes a name claim only while it still points at the
// game that made it.
var releaseNameScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call("HDEL", KEYS[1], ARGV[1])
end
return 0
`)

// releaseName drops a claim taken for a write that did not complete.
func (s *Storage) releaseName(ctx context.Context, key string, id models.GameID) {
	ctx = context.WithoutCancel(ctx)
	_ = releaseNameScript.Run(ctx, s.client, []string{s.namesKey()}, key, id.String()).Err()
}

// Key helpers

func (s *Storage) gameKey(id models.GameID) string {
	return s.gameKeyString(id.String())
}

func (s *Storage) gameKeyString(id string) string {
	return s.cfg.KeyPrefix + ":game:" + id
}

func (s *Storage) indexKey() string {
	return s.cfg.KeyPrefix + ":games"
}

func (s *Storage) namesKey() string {
	return s.cfg.KeyPrefix + ":names"
}

func decodeGame(data []byte) (models.Game, error) {
	var game models.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return models.Game{}, fmt.Errorf("failed to decode game: %w", err)
	}
	return game.Clone(), nil
}

func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

// Storage is an in-memory implementation of catalog.Store
type Storage struct {
	mu sync.RWMutex

	games     map[models.GameID]models.Game
	nameIndex map[string]models.GameID
	now       func() time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[models.GameID]models.Game),
		nameIndex: make(map[string]models.GameID),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Ensure Storage implements the interface
var _ catalog.Store = (*Storage)(nil)

func (s *Storage) ListGames(ctx context.Context) ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]models.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game.Clone())
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id models.GameID) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := game.Clone()
	return &clone, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.nameIndex[catalog.NameKey(name)]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := s.games[id].Clone()
	return &clone, nil
}

func (s *Storage) CreateGame(ctx context.Context, game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalog.NameKey(game.Name)
	if _, taken := s.nameIndex[key]; taken {
		return fmt.Errorf("%w: a game named %q already exists", models.ErrConflict, game.Name)
	}

	now := s.now()
	game.ID = uuid.New()
	game.CreatedAt = now
	game.UpdatedAt = now

	s.games[game.ID] = game.Clone()
	s.nameIndex[key] = game.ID
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.games[game.ID]
	if !ok {
		return models.ErrNotFound
	}

	key := catalog.NameKey(game.Name)
	if id, taken := s.nameIndex[key]; taken && id != game.ID {
		return fmt.Errorf("%w: a game named %q already exists", models.ErrConflict, game.Name)
	}

	game.CreatedAt = existing.CreatedAt
	game.UpdatedAt = s.now()

	delete(s.nameIndex, catalog.NameKey(existing.Name))
	s.nameIndex[key] = game.ID
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id models.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(s.nameIndex, catalog.NameKey(game.Name))
	delete(s.games, id)
	return nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

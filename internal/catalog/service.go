package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"gamersdb/backend/internal/hub"
	"gamersdb/backend/internal/models"
)

// Catalog event types published after successful mutations.
const (
	EventGameCreated = "game.created"
	EventGameUpdated = "game.updated"
	EventGameDeleted = "game.deleted"
)

// Publisher receives catalog change events.
type Publisher interface {
	Publish(event hub.Event)
}

// NewGame holds the fields of a game to be added.
type NewGame struct {
	Name              string
	Capacity          int
	Owners            []string
	FullPartyOnly     bool
	RemotePlayEnabled bool
}

// GameUpdate holds the fields to change on an existing game. Nil fields are
// left alone; Owners replaces the whole owner list.
type GameUpdate struct {
	Name              *string
	Capacity          *int
	Owners            *[]string
	FullPartyOnly     *bool
	RemotePlayEnabled *bool
}

func (u GameUpdate) empty() bool {
	return u.Name == nil && u.Capacity == nil && u.Owners == nil &&
		u.FullPartyOnly == nil && u.RemotePlayEnabled == nil
}

// ListFilter narrows ListGames. Zero values match everything.
type ListFilter struct {
	// Query matches a case-insensitive substring of the game name.
	Query string
	// Owner matches games owned by this player.
	Owner string
}

// Service implements the catalog operations on top of a Store.
type Service struct {
	store  Store
	events Publisher
	logger *slog.Logger
}

// NewService creates a catalog service. events and logger may be nil.
func NewService(store Store, events Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		store:  store,
		events: events,
		logger: logger,
	}
}

// ListGames returns the catalog sorted by name, narrowed by filter.
func (s *Service) ListGames(ctx context.Context, filter ListFilter) ([]models.Game, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	query := NameKey(filter.Query)
	owner := strings.TrimSpace(filter.Owner)

	result := make([]models.Game, 0, len(games))
	for _, game := range games {
		if query != "" && !strings.Contains(NameKey(game.Name), query) {
			continue
		}
		if owner != "" && !ContainsName(game.Owners, owner) {
			continue
		}
		result = append(result, game)
	}

	SortGames(result)
	return result, nil
}

// GetGame returns a single game.
func (s *Service) GetGame(ctx context.Context, id models.GameID) (*models.Game, error) {
	return s.store.GetGame(ctx, id)
}

// CreateGame validates and adds a new game to the catalog.
func (s *Service) CreateGame(ctx context.Context, in NewGame) (*models.Game, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", models.ErrInvalidArgument)
	}
	if in.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", models.ErrInvalidArgument)
	}
	if err := s.ensureNameFree(ctx, name, models.GameID{}); err != nil {
		return nil, err
	}

	game := &models.Game{
		Name:              name,
		Capacity:          in.Capacity,
		Owners:            NormalizeNames(in.Owners),
		FullPartyOnly:     in.FullPartyOnly,
		RemotePlayEnabled: in.RemotePlayEnabled,
	}
	if err := s.store.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("id", game.ID.String()),
		slog.String("name", game.Name),
		slog.Int("capacity", game.Capacity),
	)
	s.publish(EventGameCreated, *game)
	return game, nil
}

// UpdateGame applies a partial update to an existing game.
func (s *Service) UpdateGame(ctx context.Context, id models.GameID, update GameUpdate) (*models.Game, error) {
	if update.empty() {
		return nil, fmt.Errorf("%w: no updates provided", models.ErrInvalidArgument)
	}

	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: game name is required", models.ErrInvalidArgument)
		}
	}
	if update.Capacity != nil && *update.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", models.ErrInvalidArgument)
	}

	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if !SameName(name, game.Name) {
			if err := s.ensureNameFree(ctx, name, game.ID); err != nil {
				return nil, err
			}
		}
		game.Name = name
	}
	if update.Capacity != nil {
		game.Capacity = *update.Capacity
	}
	if update.Owners != nil {
		game.Owners = NormalizeNames(*update.Owners)
	}
	if update.FullPartyOnly != nil {
		game.FullPartyOnly = *update.FullPartyOnly
	}
	if update.RemotePlayEnabled != nil {
		game.RemotePlayEnabled = *update.RemotePlayEnabled
	}

	if err := s.store.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game updated", slog.String("id", game.ID.String()), slog.String("name", game.Name))
	s.publish(EventGameUpdated, *game)
	return game, nil
}

// DeleteGame removes a game from the catalog.
func (s *Service) DeleteGame(ctx context.Context, id models.GameID) error {
	if err := s.store.DeleteGame(ctx, id); err != nil {
		return err
	}

	s.logger.Info("game deleted", slog.String("id", id.String()))
	s.publish(EventGameDeleted, models.Game{ID: id})
	return nil
}

// AddOwner records that name owns the game. Capacity is not changed.
func (s *Service) AddOwner(ctx context.Context, id models.GameID, name string) (*models.Game, error) {
	owner := strings.TrimSpace(name)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner name is required", models.ErrInvalidArgument)
	}

	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if ContainsName(game.Owners, owner) {
		return nil, fmt.Errorf("%w: %q already owns %q", models.ErrConflict, owner, game.Name)
	}

	game.Owners = append(game.Owners, owner)
	if err := s.store.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("owner added", slog.String("id", game.ID.String()), slog.String("owner", owner))
	s.publish(EventGameUpdated, *game)
	return game, nil
}

// RemoveOwner drops name from the game's owners. Removing a name that is not
// an owner succeeds without changing anything.
func (s *Service) RemoveOwner(ctx context.Context, id models.GameID, name string) (*models.Game, error) {
	owner := strings.TrimSpace(name)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner name is required", models.ErrInvalidArgument)
	}

	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := IndexName(game.Owners, owner)
	if idx < 0 {
		return game, nil
	}

	game.Owners = slices.Delete(game.Owners, idx, idx+1)
	if err := s.store.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("owner removed", slog.String("id", game.ID.String()), slog.String("owner", owner))
	s.publish(EventGameUpdated, *game)
	return game, nil
}

// PlayableGames returns the games the given players can play together.
// An empty player list is rejected before the store is read, and store
// errors are returned as they are.
func (s *Service) PlayableGames(ctx context.Context, players []string) ([]Match, error) {
	group := NormalizeNames(players)
	if len(group) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", models.ErrInvalidArgument)
	}

	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := MatchPlayable(group, games)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("playable games computed",
		slog.Any("players", group),
		slog.Int("catalog", len(games)),
		slog.Int("matches", len(matches)),
	)
	return matches, nil
}

// GamesByOwner returns the games owned by name, sorted by name.
func (s *Service) GamesByOwner(ctx context.Context, name string) ([]models.Game, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: owner name is required", models.ErrInvalidArgument)
	}
	return s.ListGames(ctx, ListFilter{Owner: name})
}

// Owners returns every distinct owner in the catalog, sorted case-insensitively.
func (s *Service) Owners(ctx context.Context) ([]string, error) {
	games, err := s.ListGames(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	var all []string
	for _, game := range games {
		all = append(all, game.Owners...)
	}

	owners := NormalizeNames(all)
	slices.SortStableFunc(owners, compareNames)
	return owners, nil
}

// ensureNameFree fails with ErrConflict when another game already uses name.
func (s *Service) ensureNameFree(ctx context.Context, name string, self models.GameID) error {
	existing, err := s.store.GetGameByName(ctx, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return fmt.Errorf("%w: a game named %q already exists", models.ErrConflict, existing.Name)
	}
	return nil
}

func (s *Service) publish(eventType string, game models.Game) {
	if s.events == nil {
		return
	}
	s.events.Publish(hub.Event{Type: eventType, Payload: game.Clone()})
}

package catalog

import (
	"context"

	"gamersdb/backend/internal/models"
)

// Store is the persistence boundary of the catalog.
//
// Implementations return copies, so callers may modify what they get back.
// A missing record is reported as models.ErrNotFound, a second game with the
// same case-insensitive name as models.ErrConflict, and a backend that cannot
// be reached or read as models.ErrUnavailable.
type Store interface {
	// ListGames returns the complete current catalog in no particular order.
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGame(ctx context.Context, id models.GameID) (*models.Game, error)
	// GetGameByName looks a game up by its case-insensitive name.
	GetGameByName(ctx context.Context, name string) (*models.Game, error)
	// CreateGame assigns the identifier and timestamps and stores the game.
	CreateGame(ctx context.Context, game *models.Game) error
	// SaveGame replaces an existing game and refreshes its UpdatedAt.
	SaveGame(ctx context.Context, game *models.Game) error
	DeleteGame(ctx context.Context, id models.GameID) error
	// Close releases the backend's connections.
	Close() error
}

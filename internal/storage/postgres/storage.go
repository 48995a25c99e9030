package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/database"
	"gamersdb/backend/internal/models"
)

// gameRecord is the row layout of the games table.
type gameRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:255;not null"`
	NameKey           string    `gorm:"size:255;not null;uniqueIndex"`
	Capacity          int       `gorm:"not null;check:capacity >= 1"`
	Owners            []string  `gorm:"serializer:json;type:text;not null"`
	FullPartyOnly     bool      `gorm:"not null"`
	RemotePlayEnabled bool      `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (gameRecord) TableName() string {
	return "games"
}

func newGameRecord(game *models.Game) gameRecord {
	clone := game.Clone()
	return gameRecord{
		ID:                clone.ID,
		Name:              clone.Name,
		NameKey:           catalog.NameKey(clone.Name),
		Capacity:          clone.Capacity,
		Owners:            clone.Owners,
		FullPartyOnly:     clone.FullPartyOnly,
		RemotePlayEnabled: clone.RemotePlayEnabled,
		CreatedAt:         clone.CreatedAt,
		UpdatedAt:         clone.UpdatedAt,
	}
}

func (r gameRecord) toModel() models.Game {
	return models.Game{
		ID:                r.ID,
		Name:              r.Name,
		Capacity:          r.Capacity,
		Owners:            r.Owners,
		FullPartyOnly:     r.FullPartyOnly,
		RemotePlayEnabled: r.RemotePlayEnabled,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}.Clone()
}

// Storage is a postgres-backed implementation of catalog.Store
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New wraps an open gorm connection.
func New(db *gorm.DB, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

// Ensure Storage implements the interface
var _ catalog.Store = (*Storage)(nil)

// Migrate creates the games table and its indexes.
func (s *Storage) Migrate() error {
	return database.Migrate(s.db, s.logger, &gameRecord{})
}

func (s *Storage) ListGames(ctx context.Context) ([]models.Game, error) {
	var records []gameRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, translateError(err)
	}

	games := make([]models.Game, 0, len(records))
	for _, r := range records {
		games = append(games, r.toModel())
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id models.GameID) (*models.Game, error) {
	var record gameRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	game := record.toModel()
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*models.Game, error) {
	var record gameRecord
	if err := s.db.WithContext(ctx).Where("name_key = ?", catalog.NameKey(name)).First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	game := record.toModel()
	return &game, nil
}

func (s *Storage) CreateGame(ctx context.Context, game *models.Game) error {
	game.ID = uuid.New()
	record := newGameRecord(game)

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return translateError(err)
	}

	game.CreatedAt = record.CreatedAt
	game.UpdatedAt = record.UpdatedAt
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *models.Game) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gameRecord
		if err := tx.Select("id", "created_at").First(&existing, "id = ?", game.ID).Error; err != nil {
			return translateError(err)
		}

		record := newGameRecord(game)
		record.CreatedAt = existing.CreatedAt
		if err := tx.Save(&record).Error; err != nil {
			return translateError(err)
		}

		game.CreatedAt = record.CreatedAt
		game.UpdatedAt = record.UpdatedAt
		return nil
	})
}

func (s *Storage) DeleteGame(ctx context.Context, id models.GameID) error {
	result := s.db.WithContext(ctx).Delete(&gameRecord{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps gorm errors onto catalog errors.
func translateError(err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: a game with this name already exists", models.ErrConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
}

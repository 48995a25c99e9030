package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"gamersdb/backend/internal/models"
)

func TestGameRecordConversion(t *testing.T) {
	now := time.Now().UTC()
	game := models.Game{
		ID:                uuid.New(),
		Name:              "  Mario Kart",
		Capacity:          4,
		Owners:            []string{"Alice", "Bob"},
		FullPartyOnly:     true,
		RemotePlayEnabled: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	record := newGameRecord(&game)
	assert.Equal(t, "mario kart", record.NameKey)
	assert.Equal(t, game, record.toModel())

	record.Owners[0] = "Mallory"
	assert.Equal(t, "Alice", game.Owners[0])
}

func TestGameRecordNilOwners(t *testing.T) {
	record := gameRecord{ID: uuid.New(), Name: "Solo", Capacity: 1}

	game := record.toModel()
	assert.NotNil(t, game.Owners)
	assert.Empty(t, game.Owners)
}

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), models.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), models.ErrConflict)
	assert.ErrorIs(t, translateError(errors.New("connection refused")), models.ErrUnavailable)
	assert.Equal(t, context.Canceled, translateError(context.Canceled))
	assert.Equal(t, models.ErrNotFound, translateError(models.ErrNotFound))
}

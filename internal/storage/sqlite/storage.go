package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

type gameRow struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID                uuid.UUID `bun:"id,pk,type:text"`
	Name              string    `bun:"name,notnull"`
	NameKey           string    `bun:"name_key,notnull"`
	Capacity          int       `bun:"capacity,notnull"`
	Owners            []string  `bun:"owners,notnull"`
	FullPartyOnly     bool      `bun:"full_party_only,notnull"`
	RemotePlayEnabled bool      `bun:"remote_play_enabled,notnull"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull"`
}

func newGameRow(game *models.Game) *gameRow {
	clone := game.Clone()
	return &gameRow{
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

func (r *gameRow) toModel() models.Game {
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

// Storage is a SQLite-backed implementation of catalog.Store
type Storage struct {
	db     *bun.DB
	logger *slog.Logger
}

// Connect opens the SQLite database named by databaseURL ("sqlite://path").
func Connect(databaseURL string, logger *slog.Logger) (*Storage, error) {
	path := strings.TrimPrefix(databaseURL, "sqlite://")

	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLite allows a single writer, and ":memory:" databases are per connection.
	sqldb.SetMaxOpenConns(1)

	if _, err := sqldb.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to sqlite", slog.String("path", path))
	return &Storage{db: db, logger: logger}, nil
}

// Ensure Storage implements the interface
var _ catalog.Store = (*Storage)(nil)

// Migrate creates the games table and its indexes.
func (s *Storage) Migrate(ctx context.Context) error {
	s.logger.Info("running database migrations")

	_, err := s.db.NewCreateTable().
		Model((*gameRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create table for %T: %w", (*gameRow)(nil), err)
	}

	const idx = "CREATE UNIQUE INDEX IF NOT EXISTS idx_games_name_key ON games (name_key)"
	if _, err := s.db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("failed to create index idx_games_name_key: %w", err)
	}

	s.logger.Info("migrations complete")
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]models.Game, error) {
	var rows []gameRow
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, translateError(err)
	}

	games := make([]models.Game, 0, len(rows))
	for i := range rows {
		games = append(games, rows[i].toModel())
	}
	return games, nil
}

func (s *Storage) GetGame(ctx context.Context, id models.GameID) (*models.Game, error) {
	row := new(gameRow)
	if err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, translateError(err)
	}
	game := row.toModel()
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*models.Game, error) {
	row := new(gameRow)
	err := s.db.NewSelect().
		Model(row).
		Where("name_key = ?", catalog.NameKey(name)).
		Scan(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	game := row.toModel()
	return &game, nil
}

func (s *Storage) CreateGame(ctx context.Context, game *models.Game) error {
	now := time.Now().UTC()
	game.ID = uuid.New()
	game.CreatedAt = now
	game.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(newGameRow(game)).Exec(ctx); err != nil {
		return translateError(err)
	}
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *models.Game) error {
	row := newGameRow(game)
	row.UpdatedAt = time.Now().UTC()

	res, err := s.db.NewUpdate().
		Model(row).
		Column("name", "name_key", "capacity", "owners", "full_party_only", "remote_play_enabled", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	game.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id models.GameID) error {
	res, err := s.db.NewDelete().
		Model((*gameRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

func translateError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: a game with this name already exists", models.ErrConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
}

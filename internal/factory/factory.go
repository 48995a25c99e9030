package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/config"
	"gamersdb/backend/internal/database"
	"gamersdb/backend/internal/hub"
	"gamersdb/backend/internal/storage/memory"
	pgstorage "gamersdb/backend/internal/storage/postgres"
	redisstorage "gamersdb/backend/internal/storage/redis"
	sqlitestorage "gamersdb/backend/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	StorageTypeSQLite   = "sqlite"
	StorageTypeRedis    = "redis"
)

// App contains all wired application components
type App struct {
	Store   catalog.Store
	Hub     *hub.Hub
	Catalog *catalog.Service
}

// Close releases the store's connections.
func (a *App) Close() error {
	return a.Store.Close()
}

// New opens the configured store and wires the catalog service around it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	events := hub.New(logger)
	return &App{
		Store:   store,
		Hub:     events,
		Catalog: catalog.NewService(store, events, logger),
	}, nil
}

// OpenStore creates the catalog store selected by cfg.StorageType.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (catalog.Store, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}
	logger.Info("opening catalog store", slog.String("type", storageType))

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil

	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL required when STORAGE_TYPE is %s", storageType)
		}
		db, err := database.Connect(cfg.DatabaseURL, database.DefaultPoolConfig(), logger)
		if err != nil {
			return nil, err
		}
		store := pgstorage.New(db, logger)
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case StorageTypeSQLite:
		url := cfg.DatabaseURL
		if url == "" {
			url = "sqlite://gamersdb.db"
		}
		store, err := sqlitestorage.Connect(url, logger)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case StorageTypeRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL required when STORAGE_TYPE is %s", storageType)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		return redisstorage.New(redisCfg)

	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, postgres, sqlite or redis", storageType)
	}
}

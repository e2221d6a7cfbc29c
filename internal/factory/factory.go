package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/quizgame-accounts/internal/dependencies/clock"
	"github.com/mcoot/quizgame-accounts/internal/dependencies/password"
	"github.com/mcoot/quizgame-accounts/internal/services/accounts"
	"github.com/mcoot/quizgame-accounts/internal/storage"
	"github.com/mcoot/quizgame-accounts/internal/storage/memory"
	pgstorage "github.com/mcoot/quizgame-accounts/internal/storage/postgres"
	redisstorage "github.com/mcoot/quizgame-accounts/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.AccountStore

	// External dependencies
	Clock  clock.Clock
	Hasher password.Hasher

	// Services
	Accounts *accounts.Manager

	closeStore func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is the PostgreSQL DSN (required if StorageType is "postgres")
	DatabaseURL string
	// BcryptCost is the password hashing cost. Zero means bcrypt.DefaultCost.
	BcryptCost int
}

// New creates a new application with all dependencies wired. Persisted
// accounts are loaded before it returns.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var (
		store      storage.AccountStore
		closeStore = func() error { return nil }
	)

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store, closeStore = redisStore, redisStore.Close
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		db, err := pgstorage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		pgStore := pgstorage.New(db)
		store, closeStore = pgStore, pgStore.Close
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	logger.Info("storage selected", slog.String("type", storageType))

	app, err := newWithDependencies(ctx, store, clock.New(), password.NewBcrypt(cfg.BcryptCost), logger)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	app.closeStore = closeStore
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(ctx context.Context, store storage.AccountStore, clk clock.Clock, hasher password.Hasher, logger *slog.Logger) (*App, error) {
	manager, err := accounts.New(ctx, store, clk, hasher, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:      store,
		Clock:      clk,
		Hasher:     hasher,
		Accounts:   manager,
		closeStore: func() error { return nil },
	}, nil
}

// Close releases the storage connection
func (a *App) Close() error {
	return a.closeStore()
}

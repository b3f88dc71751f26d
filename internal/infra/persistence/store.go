// Package persistence opens the configured user store.
package persistence

import (
	"context"
	"log/slog"
	"strings"

	"bathroom/config"
	"bathroom/internal/domain/lifecycle"
	"bathroom/internal/domain/repository"
	"bathroom/internal/errors"
	"bathroom/internal/infra/persistence/memory"
	"bathroom/internal/infra/persistence/mongo"
	"bathroom/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Store is an opened user store backend.
type Store struct {
	Users repository.UserRepository

	close func(context.Context) error
}

// Open connects to the backend named by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	driver := strings.ToLower(cfg.Store.Driver)
	logger.Info("Opening user store", slog.String("driver", driver))

	switch driver {
	case config.StoreDriverPostgres:
		conn, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		return &Store{Users: postgres.NewUserRepository(conn.DB), close: conn.Close}, nil
	case config.StoreDriverMongo:
		conn, err := mongo.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		users, err := mongo.NewUserRepository(ctx, conn.Database)
		if err != nil {
			_ = conn.Close(ctx)

			return nil, err
		}

		return &Store{Users: users, close: conn.Close}, nil
	case config.StoreDriverMemory:
		return &Store{Users: memory.NewUserRepository()}, nil
	}

	return nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}

	return s.close(ctx)
}

// StoreParams defines the dependencies of NewStore.
type StoreParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore opens the store for the fx graph and closes it on stop.
func NewStore(params StoreParams) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	store, err := Open(ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: store.Close,
	})

	return store, nil
}

// NewUserRepository exposes the store's user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return store.Users
}

package storage

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
)

// Store is a synchronous string-keyed document store.
// Removing an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type factoryConfig interface {
	Storage() *config.StorageConfig
	SQLite() *config.SQLiteConfig
	Postgres() *config.PostgresConfig
}

// New opens the store selected by the storage driver setting.
// The returned close function releases the underlying connection.
func New(conf factoryConfig) (Store, func() error, error) {
	driver := conf.Storage().Driver()
	logger.Info("opening storage", zap.String("driver", driver))

	switch driver {
	case config.DriverMemory:
		return NewInMemStorage(), func() error { return nil }, nil
	case config.DriverSQLite:
		s, err := NewSQLiteStorage(conf.SQLite())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := NewPostgresStorage(conf.Postgres())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, errors.Errorf("unknown storage driver %q", driver)
}

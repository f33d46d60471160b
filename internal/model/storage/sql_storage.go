package storage

import (
	"context"
	"database/sql"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
)

const (
	tableName   = "kv_store"
	nameColumn  = "name"
	valueColumn = "value"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS kv_store (
		name  TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)
`

// SQLStorage keeps every key as one row of kv_store.
type SQLStorage struct {
	db        *sql.DB
	builder   sq.StatementBuilderType
	writeLock sync.Mutex
}

func newSQLStorage(db *sql.DB, placeholder sq.PlaceholderFormat) (*SQLStorage, error) {
	if _, err := db.Exec(createTableQuery); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}
	return &SQLStorage{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.builder.Select(valueColumn).
		From(tableName).
		Where(sq.Eq{nameColumn: key})

	var value string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "get value")
	}
	return value, true, nil
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	query := s.builder.Insert(tableName).
		Columns(nameColumn, valueColumn).
		Values(key, value).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "set value")
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	query := s.builder.Delete(tableName).
		Where(sq.Eq{nameColumn: key})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "remove value")
}

func (s *SQLStorage) Close() error {
	err := s.db.Close()
	if err != nil {
		logger.Error("failed to close database", zap.Error(err))
	}
	return err
}

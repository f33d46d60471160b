package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	// sqlite driver
	_ "modernc.org/sqlite"
)

type sqliteConfig interface {
	Path() string
}

func NewSQLiteStorage(config sqliteConfig) (*SQLStorage, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path()), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	db, err := sql.Open("sqlite", config.Path())
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	// a single connection keeps writes serialised
	db.SetMaxOpenConns(1)

	s, err := newSQLStorage(db, sq.Question)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

package storage

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=%s"

type postgresConfig interface {
	Host() string
	Port() int
	Username() string
	Password() string
	Database() string
	SSLMode() string
}

func NewPostgresStorage(config postgresConfig) (*SQLStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Port(),
		config.Database(),
		config.SSLMode()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}

	s, err := newSQLStorage(db, sq.Dollar)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

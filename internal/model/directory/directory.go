package directory

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/storage"
)

const usersKey = "Users"

// Directory keeps all registered users as a single JSON document.
// Every mutation reads, modifies and rewrites the whole document.
type Directory struct {
	store storage.Store
}

func New(store storage.Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) All(ctx context.Context) ([]user.Record, error) {
	raw, ok, err := d.store.Get(ctx, usersKey)
	if err != nil {
		return nil, errors.Wrap(err, "read users")
	}
	if !ok || raw == "" {
		return []user.Record{}, nil
	}

	var users []user.Record
	if err = json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	if users == nil {
		users = []user.Record{}
	}
	return users, nil
}

func (d *Directory) FindByEmail(ctx context.Context, email string) (user.Record, bool, error) {
	users, err := d.All(ctx)
	if err != nil {
		return user.Record{}, false, errors.Wrap(err, "find user")
	}
	if i := indexOf(users, email); i >= 0 {
		return users[i], true, nil
	}
	return user.Record{}, false, nil
}

func (d *Directory) Insert(ctx context.Context, rec user.Record) error {
	users, err := d.All(ctx)
	if err != nil {
		return errors.Wrap(err, "insert user")
	}
	if indexOf(users, rec.Email) >= 0 {
		return &customerr.DuplicateUserError{Email: rec.Email}
	}

	users = append(users, rec)
	if err = d.save(ctx, users); err != nil {
		return errors.Wrap(err, "insert user")
	}
	logger.Info("user inserted", zap.String("email", rec.Email), zap.Int("users", len(users)))
	return nil
}

func (d *Directory) Replace(ctx context.Context, rec user.Record) error {
	users, err := d.All(ctx)
	if err != nil {
		return errors.Wrap(err, "replace user")
	}
	i := indexOf(users, rec.Email)
	if i < 0 {
		return &customerr.NotFoundError{Email: rec.Email}
	}

	users[i] = rec
	return errors.Wrap(d.save(ctx, users), "replace user")
}

func (d *Directory) save(ctx context.Context, users []user.Record) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return errors.Wrap(err, "encode users")
	}
	return d.store.Set(ctx, usersKey, string(raw))
}

func indexOf(users []user.Record, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

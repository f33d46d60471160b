package session

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/customerr"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/storage"
)

const currentUserKey = "CurrentUser"

type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (user.Record, bool, error)
	Insert(ctx context.Context, rec user.Record) error
}

// State holds the authenticated user, if any. The snapshot is persisted
// under CurrentUser so a new State picks up where the previous one left off.
type State struct {
	dir     userDirectory
	store   storage.Store
	current *user.Record
}

func New(ctx context.Context, dir userDirectory, store storage.Store) (*State, error) {
	s := &State{dir: dir, store: store}

	raw, ok, err := store.Get(ctx, currentUserKey)
	if err != nil {
		return nil, errors.Wrap(err, "restore session")
	}
	if !ok || raw == "" || raw == "null" {
		return s, nil
	}

	var rec user.Record
	if err = json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errors.Wrap(err, "restore session")
	}
	s.current = &rec
	return s, nil
}

func (s *State) Register(ctx context.Context, name, email, password string) (user.Record, error) {
	if err := requireFields(name, email, password); err != nil {
		return user.Record{}, err
	}

	_, exists, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return user.Record{}, errors.Wrap(err, "register")
	}
	if exists {
		return user.Record{}, &customerr.DuplicateUserError{Email: email}
	}

	rec := user.New(name, email, password)
	if err = s.dir.Insert(ctx, rec); err != nil {
		return user.Record{}, errors.Wrap(err, "register")
	}
	if err = s.SetCurrent(ctx, rec); err != nil {
		return user.Record{}, errors.Wrap(err, "register")
	}

	logger.Info("user registered", zap.String("email", email))
	return rec.Clone(), nil
}

// Login compares the password verbatim, passwords are stored as entered.
func (s *State) Login(ctx context.Context, email, password string) (user.Record, error) {
	rec, ok, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return user.Record{}, errors.Wrap(err, "login")
	}
	if !ok || rec.Password != password {
		logger.Info("login rejected", zap.String("email", email))
		return user.Record{}, &customerr.AuthError{Email: email}
	}

	if err = s.SetCurrent(ctx, rec); err != nil {
		return user.Record{}, errors.Wrap(err, "login")
	}
	logger.Info("user logged in", zap.String("email", email))
	return rec.Clone(), nil
}

func (s *State) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, currentUserKey); err != nil {
		return errors.Wrap(err, "logout")
	}
	if s.current != nil {
		logger.Info("user logged out", zap.String("email", s.current.Email))
	}
	s.current = nil
	return nil
}

// Refresh reloads the snapshot from the directory, picking up writes made
// through other sessions of the same user. A user missing from the directory
// keeps the old snapshot.
func (s *State) Refresh(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	rec, ok, err := s.dir.FindByEmail(ctx, s.current.Email)
	if err != nil {
		return errors.Wrap(err, "refresh session")
	}
	if !ok {
		logger.Warn("session user missing from directory", zap.String("email", s.current.Email))
		return nil
	}
	return s.SetCurrent(ctx, rec)
}

func (s *State) Current() (user.Record, bool) {
	if s.current == nil {
		return user.Record{}, false
	}
	return s.current.Clone(), true
}

// SetCurrent replaces the snapshot and persists it.
func (s *State) SetCurrent(ctx context.Context, rec user.Record) error {
	snapshot := rec.Clone()
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err = s.store.Set(ctx, currentUserKey, string(raw)); err != nil {
		return errors.Wrap(err, "persist session")
	}
	s.current = &snapshot
	return nil
}

func requireFields(name, email, password string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &customerr.ValidationError{Field: "name", Reason: "is required"}
	case strings.TrimSpace(email) == "":
		return &customerr.ValidationError{Field: "email", Reason: "is required"}
	case password == "":
		return &customerr.ValidationError{Field: "password", Reason: "is required"}
	}
	return nil
}

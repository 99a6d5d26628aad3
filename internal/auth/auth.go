// Package auth registers and signs in users against the local credential
// table and tracks the remembered session.
//
// Passwords are stored and compared in plaintext, and a persisted session is
// trusted on restore without asking for the password again.
package auth

import (
	"context"
	"errors"

	"todolist/internal/model"
	"todolist/internal/store"
)

var (
	ErrMissingField       = errors.New("missing_field")
	ErrDuplicateUser      = errors.New("duplicate_user")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// Message returns the text shown to the user for an auth error, or "" for
// errors outside the auth taxonomy.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "Please enter both username and password"
	case errors.Is(err, ErrDuplicateUser):
		return "Username already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password"
	}
	return ""
}

// IsAuthError reports whether err belongs to the auth taxonomy.
func IsAuthError(err error) bool {
	return Message(err) != ""
}

type Service struct {
	users    *store.Users
	sessions *store.Sessions
}

func NewService(users *store.Users, sessions *store.Sessions) *Service {
	return &Service{users: users, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, username, password string) (model.Session, error) {
	if username == "" || password == "" {
		return model.Session{}, ErrMissingField
	}

	_, err := s.users.Create(ctx, model.Credential{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.Session{}, ErrDuplicateUser
		}
		return model.Session{}, err
	}
	return s.start(ctx, username)
}

func (s *Service) Login(ctx context.Context, username, password string) (model.Session, error) {
	if username == "" || password == "" {
		return model.Session{}, ErrMissingField
	}

	c, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, err
	}
	if c.Password != password {
		return model.Session{}, ErrInvalidCredentials
	}
	return s.start(ctx, username)
}

// Logout forgets the remembered session. Credentials and tasks are untouched.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// Current returns the remembered session, or nil when logged out.
func (s *Service) Current(ctx context.Context) (*model.Session, error) {
	return s.sessions.Load(ctx)
}

func (s *Service) start(ctx context.Context, username string) (model.Session, error) {
	sess := model.Session{Username: username}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Package auth implements registration, login and profile management backed
// by Argon2id password hashes and HS256 access tokens.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/relooped/reloop-backend/pkg/auth"
	"github.com/relooped/reloop-backend/pkg/config"
	"github.com/relooped/reloop-backend/pkg/db/models"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/security"
	"github.com/relooped/reloop-backend/pkg/store"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput carries the updatable profile fields.
type ProfileInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Service defines the account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*models.User, error)
}

type service struct {
	db  *store.Store
	cfg *config.Config
}

// NewService builds the auth service.
func NewService(db *store.Store, cfg *config.Config) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	return &service{db: db, cfg: cfg}, nil
}

// Register creates an account, hashes the password and mints a session token.
// Username and email must be unique across all accounts.
func (s *service) Register(_ context.Context, input RegisterInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if len(input.Password) < s.cfg.Password.MinLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", s.cfg.Password.MinLength))
	}

	hash, err := security.HashPassword(input.Password, s.cfg.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	err = s.db.Write(func() error {
		if _, taken := s.db.Users.First(func(u *models.User) bool {
			return strings.EqualFold(u.Username, username)
		}); taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "username is already taken")
		}
		if _, taken := s.db.Users.First(func(u *models.User) bool {
			return strings.EqualFold(u.Email, email)
		}); taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		s.db.Users.Insert(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.sessionFor(user)
}

// Login verifies the credentials and mints a session token. A missing user
// and a wrong password produce the same unauthorized error.
func (s *service) Login(_ context.Context, input LoginInput) (*Session, error) {
	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")

	var user *models.User
	err := s.db.Read(func() error {
		found, ok := s.db.Users.First(func(u *models.User) bool {
			return strings.EqualFold(u.Username, strings.TrimSpace(input.Username))
		})
		if !ok {
			return invalid
		}
		copied := *found
		user = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to verify password")
	}
	if !match {
		return nil, invalid
	}

	return s.sessionFor(user)
}

// Me returns the authenticated user's account.
func (s *service) Me(_ context.Context, userID int64) (*models.User, error) {
	var user *models.User
	err := s.db.Read(func() error {
		found, ok := s.db.Users.Get(userID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		copied := *found
		user = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the username and email, keeping both unique against
// every other account.
func (s *service) UpdateProfile(_ context.Context, userID int64, input ProfileInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	var user *models.User
	err := s.db.Write(func() error {
		if _, ok := s.db.Users.Get(userID); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if _, taken := s.db.Users.First(func(u *models.User) bool {
			return u.ID != userID && strings.EqualFold(u.Username, username)
		}); taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "username is already taken")
		}
		if _, taken := s.db.Users.First(func(u *models.User) bool {
			return u.ID != userID && strings.EqualFold(u.Email, email)
		}); taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		s.db.Users.Update(userID, func(u *models.User) {
			u.Username = username
			u.Email = email
			copied := *u
			user = &copied
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) sessionFor(user *models.User) (*Session, error) {
	token, err := auth.MintAccessToken(s.cfg.JWT, s.db.Now(), auth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint access token")
	}
	return &Session{Token: token, User: *user}, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olegiv/shoplite-go/internal/auth"
	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/store"
	"github.com/olegiv/shoplite-go/internal/util"
)

// Authentication and registration errors. Wrong credentials and store
// failures are deliberately distinct so callers can surface them
// differently.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Login throttling: one attempt per interval with a small burst, tracked per
// identifier (email or phone).
const (
	loginBurst = 5
)

// AuthService handles registration and credential authentication.
type AuthService struct {
	queries *store.Queries
	audit   *AuditService

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, audit *AuditService) *AuthService {
	return &AuthService{
		queries:  store.New(db),
		audit:    audit,
		limiters: make(map[string]*rate.Limiter),
	}
}

// RegisterParams holds the fields of a registration request. Password is
// plaintext here and hashed before it reaches the store.
type RegisterParams struct {
	Email    string
	Phone    string
	Password string
	Role     string
}

// Register creates a new user account. An already-used email returns
// ErrEmailTaken and leaves the existing row untouched; any other store
// failure propagates as its own error.
func (s *AuthService) Register(ctx context.Context, arg RegisterParams) (model.User, error) {
	if arg.Email == "" || arg.Password == "" {
		return model.User{}, ErrInvalidCredentials
	}
	if arg.Role == "" {
		arg.Role = model.RoleUser
	}
	if !model.ValidRole(arg.Role) {
		return model.User{}, ErrInvalidRole
	}

	hash, err := auth.HashPassword(arg.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        arg.Email,
		Phone:        util.NullStringFromValue(arg.Phone),
		PasswordHash: hash,
		Role:         arg.Role,
	})
	if err != nil {
		if store.IsConstraintViolation(err) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	_ = s.audit.LogAuth(ctx, model.EventLevelInfo, "user registered", user.ID,
		map[string]any{"email": user.Email, "role": user.Role})
	return user, nil
}

// AuthenticateByEmail verifies an email/password pair. Unknown email and
// wrong password both return ErrInvalidCredentials; a store failure returns
// its own error so callers can tell the two apart.
func (s *AuthService) AuthenticateByEmail(ctx context.Context, email, password string) (model.User, error) {
	return s.authenticate(ctx, email, password, s.queries.GetUserByEmail)
}

// AuthenticateByPhone verifies a phone/password pair with the same contract
// as AuthenticateByEmail.
func (s *AuthService) AuthenticateByPhone(ctx context.Context, phone, password string) (model.User, error) {
	return s.authenticate(ctx, phone, password, s.queries.GetUserByPhone)
}

func (s *AuthService) authenticate(ctx context.Context, key, password string, lookup func(context.Context, string) (model.User, error)) (model.User, error) {
	if !s.limiter(key).Allow() {
		_ = s.audit.LogAuth(ctx, model.EventLevelWarning, "login throttled", 0,
			map[string]any{"identifier": key})
		return model.User{}, ErrTooManyAttempts
	}

	user, err := lookup(ctx, key)
	if err != nil {
		if store.IsNotFound(err) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return model.User{}, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		_ = s.audit.LogAuth(ctx, model.EventLevelWarning, "login failed", user.ID,
			map[string]any{"identifier": key})
		return model.User{}, ErrInvalidCredentials
	}

	_ = s.audit.LogAuth(ctx, model.EventLevelInfo, "login succeeded", user.ID, nil)
	return user, nil
}

// limiter returns the rate limiter for an identifier, creating it on first
// use. One attempt per two seconds with a burst of loginBurst.
func (s *AuthService) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(0.5), loginBurst)
		s.limiters[key] = l
	}
	return l
}

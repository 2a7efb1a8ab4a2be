// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/shoplite-go/internal/auth"
	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/store"
	"github.com/olegiv/shoplite-go/internal/util"
)

// UserService provides the admin-facing user CRUD. Role gating happens at
// the caller (the session layer exposes IsAdmin); there is no server-side
// boundary to enforce it here.
type UserService struct {
	queries *store.Queries
	audit   *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, audit *AuditService) *UserService {
	return &UserService{queries: store.New(db), audit: audit}
}

// Users returns all user accounts.
func (s *UserService) Users(ctx context.Context) ([]model.User, error) {
	return s.queries.ListUsers(ctx)
}

// User returns a single user by id, or sql.ErrNoRows.
func (s *UserService) User(ctx context.Context, id int64) (model.User, error) {
	return s.queries.GetUserByID(ctx, id)
}

// AddUserParams holds the fields of a new account created by an admin.
type AddUserParams struct {
	Email    string
	Phone    string
	Password string
	Role     string
}

// AddUser creates an account with an admin-chosen role. Same uniqueness
// contract as Register.
func (s *UserService) AddUser(ctx context.Context, actorID int64, arg AddUserParams) (model.User, error) {
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

	_ = s.audit.LogUser(ctx, model.EventLevelInfo, "user created", actorID,
		map[string]any{"user_id": user.ID, "email": user.Email, "role": user.Role})
	return user, nil
}

// UpdateUserParams holds a complete user row for a full-row replace.
// Password is plaintext; an empty Password preserves the stored hash
// instead of overwriting it.
type UpdateUserParams struct {
	ID       int64
	Email    string
	Phone    string
	Password string
	Role     string
}

// UpdateUser rewrites the user row identified by arg.ID. Every field except
// the password must be supplied; an empty password keeps the existing hash.
func (s *UserService) UpdateUser(ctx context.Context, actorID int64, arg UpdateUserParams) error {
	if !model.ValidRole(arg.Role) {
		return ErrInvalidRole
	}

	params := store.UpdateUserParams{
		ID:    arg.ID,
		Email: arg.Email,
		Phone: util.NullStringFromValue(arg.Phone),
		Role:  arg.Role,
	}

	var err error
	if arg.Password == "" {
		err = s.queries.UpdateUserKeepPassword(ctx, params)
	} else {
		params.PasswordHash, err = auth.HashPassword(arg.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		err = s.queries.UpdateUser(ctx, params)
	}
	if err != nil {
		if store.IsConstraintViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("updating user %d: %w", arg.ID, err)
	}

	_ = s.audit.LogUser(ctx, model.EventLevelInfo, "user updated", actorID,
		map[string]any{"user_id": arg.ID})
	return nil
}

// DeleteUser removes a user by id. Deleting an absent id is a no-op.
func (s *UserService) DeleteUser(ctx context.Context, actorID int64, id int64) error {
	if err := s.queries.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}

	_ = s.audit.LogUser(ctx, model.EventLevelInfo, "user deleted", actorID,
		map[string]any{"user_id": id})
	return nil
}

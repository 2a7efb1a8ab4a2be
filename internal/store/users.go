// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/olegiv/shoplite-go/internal/model"
)

const userColumns = `id, email, phone, password, role`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.Role)
	return u, err
}

// CreateUserParams holds every user field except the store-assigned id.
// PasswordHash must already be hashed; the store never sees plaintext.
type CreateUserParams struct {
	Email        string
	Phone        sql.NullString
	PasswordHash string
	Role         string
}

// CreateUser inserts a new user and returns it with the generated id.
// A duplicate email surfaces as a constraint violation; see
// IsConstraintViolation.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (email, phone, password, role) VALUES (?, ?, ?, ?)`,
		arg.Email, arg.Phone, arg.PasswordHash, arg.Role)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:           id,
		Email:        arg.Email,
		Phone:        arg.Phone,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
	}, nil
}

// GetUserByID returns the user with the given id, or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByEmail returns the user with the given email, or sql.ErrNoRows.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// GetUserByPhone returns the first user with the given phone number, or
// sql.ErrNoRows. Phone is not unique in the schema; storage order decides
// ties, matching the original lookup behavior.
func (q *Queries) GetUserByPhone(ctx context.Context, phone string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = ? LIMIT 1`, phone))
}

// ListUsers returns all users in storage order.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserParams holds a complete user row for a full-row replace.
type UpdateUserParams struct {
	ID           int64
	Email        string
	Phone        sql.NullString
	PasswordHash string
	Role         string
}

// UpdateUser rewrites every column of the row identified by arg.ID,
// including the password hash.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET email = ?, phone = ?, password = ?, role = ? WHERE id = ?`,
		arg.Email, arg.Phone, arg.PasswordHash, arg.Role, arg.ID)
	return err
}

// UpdateUserKeepPassword rewrites every column except password, preserving
// the stored hash. Used when an update form leaves the password field empty.
func (q *Queries) UpdateUserKeepPassword(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET email = ?, phone = ?, role = ? WHERE id = ?`,
		arg.Email, arg.Phone, arg.Role, arg.ID)
	return err
}

// DeleteUser removes the user with the given id. Deleting an absent id is a
// no-op.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// CountUsers returns the number of user rows.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

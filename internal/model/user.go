// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain entities stored in the shop database:
// Category, Product, User, and the Event audit record.
package model

import "database/sql"

// User roles. The users table enforces the same two-value set with a
// CHECK constraint.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the users table.
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Phone        sql.NullString `json:"phone"`
	PasswordHash string         `json:"-"` // Never expose in JSON
	Role         string         `json:"role"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the allowed user roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

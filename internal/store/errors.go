// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
)

// SQLite primary result code for any constraint violation. Extended codes
// (UNIQUE, CHECK, FOREIGN KEY) carry it in their low byte.
const sqliteConstraintCode = 19

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsConstraintViolation reports whether err was caused by a violated schema
// constraint: a duplicate unique key, a failed CHECK, or a dangling foreign
// key. The message fallback covers drivers other than modernc (the test
// helper uses mattn/go-sqlite3).
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqliteConstraintCode
	}
	return strings.Contains(strings.ToLower(err.Error()), "constraint")
}

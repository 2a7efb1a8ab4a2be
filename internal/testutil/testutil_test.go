// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"context"
	"testing"

	"github.com/olegiv/shoplite-go/internal/store"
)

func TestSeededDBCounts(t *testing.T) {
	db, cleanup := TestSeededDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)

	categories, err := q.CountCategories(ctx)
	if err != nil {
		t.Fatalf("CountCategories: %v", err)
	}
	if categories != 5 {
		t.Errorf("categories = %d, want 5", categories)
	}
	products, err := q.CountProducts(ctx)
	if err != nil {
		t.Fatalf("CountProducts: %v", err)
	}
	if products != 5 {
		t.Errorf("products = %d, want 5", products)
	}
	users, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if users != 3 {
		t.Errorf("users = %d, want 3", users)
	}
}

// The in-memory helper runs on the sqlite3 driver, whose errors are not
// *sqlite.Error values, so constraint detection must fall through to the
// message check.
func TestMemoryDBConstraintDetection(t *testing.T) {
	db := TestMemoryDB(t)

	if _, err := db.Exec(`CREATE TABLE accounts (email TEXT NOT NULL UNIQUE)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO accounts (email) VALUES ('a@b.c')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := db.Exec(`INSERT INTO accounts (email) VALUES ('a@b.c')`)
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !store.IsConstraintViolation(err) {
		t.Errorf("IsConstraintViolation(%v) = false, want true for the sqlite3 driver", err)
	}
	if store.IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = true", err)
	}
}

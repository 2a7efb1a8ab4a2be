// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shop wires the data layer together behind an explicitly
// constructed context with an open/close lifecycle. No component holds
// module-level state: the database handle is owned here and passed down.
package shop

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/olegiv/shoplite-go/internal/config"
	"github.com/olegiv/shoplite-go/internal/service"
	"github.com/olegiv/shoplite-go/internal/session"
	"github.com/olegiv/shoplite-go/internal/store"
)

// Context holds the open database handle and the services built on it.
type Context struct {
	Config  *config.Config
	DB      *sql.DB
	Queries *store.Queries
	Audit   *service.AuditService
	Catalog *service.CatalogService
	Auth    *service.AuthService
	Users   *service.UserService
	Session *session.Manager
}

// Open creates the data directory, opens the database, migrates and seeds
// it, and constructs the services. Migration or seed failure closes the
// handle and aborts: running against a possibly-absent schema is worse than
// failing startup.
func Open(ctx context.Context, cfg *config.Config) (*Context, error) {
	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	if err := store.Seed(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	audit := service.NewAuditService(db)

	return &Context{
		Config:  cfg,
		DB:      db,
		Queries: store.New(db),
		Audit:   audit,
		Catalog: service.NewCatalogService(db, audit),
		Auth:    service.NewAuthService(db, audit),
		Users:   service.NewUserService(db, audit),
		Session: session.NewManager(cfg.SessionPath),
	}, nil
}

// RestoreSession loads the persisted login marker, if any, and logs what it
// found. A corrupt marker is reported and treated as "not logged in".
func (c *Context) RestoreSession() (restored bool) {
	user, ok, err := c.Session.Restore()
	if err != nil {
		slog.Warn("discarding unreadable session marker", "error", err)
		return false
	}
	if ok {
		slog.Info("session restored", "user_id", user.ID, "email", user.Email, "role", user.Role)
	}
	return ok
}

// Close releases the database handle.
func (c *Context) Close() error {
	return c.DB.Close()
}

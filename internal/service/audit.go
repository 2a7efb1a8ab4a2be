// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business layer over the store: catalog
// queries and mutations, registration and authentication, user management,
// and the audit trail they share.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/store"
)

// AuditService appends entries to the events table.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{queries: store.New(db)}
}

// Log creates an audit entry. userID 0 means no user context. A failed
// write is logged and returned but must not fail the operation being
// audited; callers ignore the error by convention.
func (s *AuditService) Log(ctx context.Context, level, category, message string, userID int64, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to write audit event", "category", category, "error", err)
	}
	return err
}

// LogAuth logs an authentication-related event.
func (s *AuditService) LogAuth(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogCatalog logs a catalog mutation event.
func (s *AuditService) LogCatalog(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryCatalog, message, userID, metadata)
}

// LogUser logs a user-management event.
func (s *AuditService) LogUser(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryUser, message, userID, metadata)
}

// Recent returns up to limit audit entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int64) ([]model.Event, error) {
	return s.queries.ListRecentEvents(ctx, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *AuditService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	return s.queries.DeleteOldEvents(ctx, time.Now().Add(-olderThan))
}

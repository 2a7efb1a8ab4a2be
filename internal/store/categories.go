// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/shoplite-go/internal/model"
)

// ListCategories returns all categories in storage order. Ordering is only
// guaranteed consistent within one connection lifetime.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name FROM categories`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns the category with the given id, or sql.ErrNoRows.
func (q *Queries) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name)
	return c, err
}

// CountCategories returns the number of category rows.
func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

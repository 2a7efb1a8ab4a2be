// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/shoplite-go/internal/model"
)

const productColumns = `id, name, price, img, categoryId, quantity`

// scanProduct maps one result row onto a Product. Keeping the mapping in one
// place means a missing or mistyped column fails loudly at the boundary.
func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Img, &p.CategoryID, &p.Quantity)
	return p, err
}

func (q *Queries) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListProducts returns all products in storage order.
func (q *Queries) ListProducts(ctx context.Context) ([]model.Product, error) {
	return q.queryProducts(ctx, `SELECT `+productColumns+` FROM products`)
}

// ListProductsByCategory returns the products whose categoryId equals the
// given id.
func (q *Queries) ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return q.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE categoryId = ?`, categoryID)
}

// SearchProducts returns the products whose name contains text anywhere,
// with SQL LIKE semantics. Case sensitivity follows the engine collation:
// ASCII letters match case-insensitively, everything else byte-exact.
func (q *Queries) SearchProducts(ctx context.Context, text string) ([]model.Product, error) {
	return q.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE name LIKE ?`, "%"+text+"%")
}

// GetProduct returns the product with the given id, or sql.ErrNoRows.
func (q *Queries) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
}

// CreateProductParams holds every product field except the store-assigned id.
type CreateProductParams struct {
	Name       string
	Price      float64
	Img        string
	CategoryID int64
	Quantity   int64
}

// CreateProduct inserts a new product and returns it with the generated id.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (model.Product, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (name, price, img, categoryId, quantity) VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Price, arg.Img, arg.CategoryID, arg.Quantity)
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	return model.Product{
		ID:         id,
		Name:       arg.Name,
		Price:      arg.Price,
		Img:        arg.Img,
		CategoryID: arg.CategoryID,
		Quantity:   arg.Quantity,
	}, nil
}

// UpdateProductParams holds a complete product row for a full-row replace.
type UpdateProductParams struct {
	ID         int64
	Name       string
	Price      float64
	Img        string
	CategoryID int64
	Quantity   int64
}

// UpdateProduct rewrites every column of the row identified by arg.ID.
// Callers must supply the complete entity; there is no version check, the
// last writer wins. Updating an absent id affects no rows and is not an
// error.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, img = ?, categoryId = ?, quantity = ? WHERE id = ?`,
		arg.Name, arg.Price, arg.Img, arg.CategoryID, arg.Quantity, arg.ID)
	return err
}

// DeleteProduct removes the product with the given id. Deleting an absent id
// is a no-op.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// CountProducts returns the number of product rows.
func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

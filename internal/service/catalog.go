// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/store"
	"github.com/olegiv/shoplite-go/internal/util"
)

// Catalog validation errors.
var (
	ErrNoSuchCategory = errors.New("category does not exist")
	ErrNoSuchProduct  = errors.New("product does not exist")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNegativePrice  = errors.New("price must not be negative")
)

// CatalogService provides category reads and product CRUD with filtered and
// text-search queries.
type CatalogService struct {
	queries *store.Queries
	audit   *AuditService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *sql.DB, audit *AuditService) *CatalogService {
	return &CatalogService{queries: store.New(db), audit: audit}
}

// Categories returns all categories in storage order.
func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.queries.ListCategories(ctx)
}

// Products returns all products.
func (s *CatalogService) Products(ctx context.Context) ([]model.Product, error) {
	return s.queries.ListProducts(ctx)
}

// ProductsByCategory returns the products in the given category. An unknown
// category id yields an empty result, not an error, matching the filter
// contract.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return s.queries.ListProductsByCategory(ctx, categoryID)
}

// Product returns a single product by id, or ErrNoSuchProduct.
func (s *CatalogService) Product(ctx context.Context, id int64) (model.Product, error) {
	p, err := s.queries.GetProduct(ctx, id)
	if store.IsNotFound(err) {
		return model.Product{}, ErrNoSuchProduct
	}
	return p, err
}

// Search returns the products whose name contains text, with SQL LIKE
// semantics (substring anywhere, collation-dependent case sensitivity).
func (s *CatalogService) Search(ctx context.Context, text string) ([]model.Product, error) {
	return s.queries.SearchProducts(ctx, text)
}

// SearchFold returns the products whose folded name contains the folded
// query, so "ao so mi" and "ÁO SƠ MI" both match "Áo sơ mi". The product set
// is small and local; a table scan is fine.
func (s *CatalogService) SearchFold(ctx context.Context, text string) ([]model.Product, error) {
	products, err := s.queries.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if util.FoldContains(p.Name, text) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *CatalogService) validateProduct(ctx context.Context, name string, price float64, categoryID int64) error {
	if name == "" {
		return ErrEmptyName
	}
	if price < 0 {
		return ErrNegativePrice
	}
	if _, err := s.queries.GetCategory(ctx, categoryID); err != nil {
		if store.IsNotFound(err) {
			return ErrNoSuchCategory
		}
		return fmt.Errorf("checking category %d: %w", categoryID, err)
	}
	return nil
}

// AddProduct validates and inserts a new product, returning it with the
// store-assigned id. actorID attributes the change in the audit trail.
func (s *CatalogService) AddProduct(ctx context.Context, actorID int64, arg store.CreateProductParams) (model.Product, error) {
	if err := s.validateProduct(ctx, arg.Name, arg.Price, arg.CategoryID); err != nil {
		return model.Product{}, err
	}

	p, err := s.queries.CreateProduct(ctx, arg)
	if err != nil {
		return model.Product{}, fmt.Errorf("creating product: %w", err)
	}

	_ = s.audit.LogCatalog(ctx, model.EventLevelInfo, "product created", actorID,
		map[string]any{"product_id": p.ID, "name": p.Name})
	return p, nil
}

// UpdateProduct validates and rewrites every field of the product row.
// Callers must supply the complete entity; partial updates are not
// supported. Updating an absent id affects no rows.
func (s *CatalogService) UpdateProduct(ctx context.Context, actorID int64, arg store.UpdateProductParams) error {
	if err := s.validateProduct(ctx, arg.Name, arg.Price, arg.CategoryID); err != nil {
		return err
	}

	if err := s.queries.UpdateProduct(ctx, arg); err != nil {
		return fmt.Errorf("updating product %d: %w", arg.ID, err)
	}

	_ = s.audit.LogCatalog(ctx, model.EventLevelInfo, "product updated", actorID,
		map[string]any{"product_id": arg.ID})
	return nil
}

// DeleteProduct removes a product by id. Deleting an absent id is a no-op.
func (s *CatalogService) DeleteProduct(ctx context.Context, actorID int64, id int64) error {
	if err := s.queries.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}

	_ = s.audit.LogCatalog(ctx, model.EventLevelInfo, "product deleted", actorID,
		map[string]any{"product_id": id})
	return nil
}

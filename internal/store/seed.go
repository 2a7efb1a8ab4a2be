package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/shoplite-go/internal/auth"
	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/util"
)

// Default credentials created by Seed. The passwords are stored hashed.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin123"
	DefaultUserEmail     = "user@example.com"
	DefaultUserPassword  = "user123"
)

// seedCategories is the fixed reference data. Never mutated after seeding.
var seedCategories = []model.Category{
	{ID: 1, Name: "Áo"},
	{ID: 2, Name: "Giày"},
	{ID: 3, Name: "Balo"},
	{ID: 4, Name: "Mũ"},
	{ID: 5, Name: "Túi"},
}

// seedProducts use explicit ids so repeated seeding is stable. SQLite's
// AUTOINCREMENT allocates ids strictly above the largest ever used, so later
// inserts cannot collide with this range.
var seedProducts = []model.Product{
	{ID: 1, Name: "Áo sơ mi", Price: 250000, Img: "hinh1.jpg", CategoryID: 1, Quantity: 0},
	{ID: 2, Name: "Giày sneaker", Price: 1100000, Img: "hinh1.jpg", CategoryID: 2, Quantity: 0},
	{ID: 3, Name: "Balo thời trang", Price: 490000, Img: "hinh1.jpg", CategoryID: 3, Quantity: 0},
	{ID: 4, Name: "Mũ lưỡi trai", Price: 120000, Img: "hinh1.jpg", CategoryID: 4, Quantity: 0},
	{ID: 5, Name: "Túi xách nữ", Price: 980000, Img: "hinh1.jpg", CategoryID: 5, Quantity: 0},
}

type seedUser struct {
	id       int64
	email    string
	phone    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{id: 1, email: DefaultAdminEmail, phone: "0987654321", password: DefaultAdminPassword, role: model.RoleAdmin},
	{id: 2, email: DefaultUserEmail, phone: "0123456789", password: DefaultUserPassword, role: model.RoleUser},
	// Short-form admin login kept from the original data set.
	{id: 3, email: "admin", phone: "0909090909", password: "123", role: model.RoleAdmin},
}

// Seed inserts the fixed reference rows with insert-or-ignore semantics.
// The whole seed runs in one transaction: either every missing row is
// committed or none is. Safe to call on every start; N runs leave exactly
// one copy of each seed row.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("seeding category %d: %w", c.ID, err)
		}
	}

	for _, p := range seedProducts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO products (id, name, price, img, categoryId, quantity) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Price, p.Img, p.CategoryID, p.Quantity); err != nil {
			return fmt.Errorf("seeding product %d: %w", p.ID, err)
		}
	}

	q := New(db).WithTx(tx)
	created := 0
	for _, u := range seedUsers {
		// Existence check first so re-seeding skips the hashing cost.
		_, err := q.GetUserByEmail(ctx, u.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking seed user %q: %w", u.email, err)
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, email, phone, password, role) VALUES (?, ?, ?, ?, ?)`,
			u.id, u.email, util.NullStringFromValue(u.phone), hash, u.role); err != nil {
			return fmt.Errorf("seeding user %q: %w", u.email, err)
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	if created > 0 {
		slog.Info("seeded default users", "created", created, "admin", DefaultAdminEmail)
	}
	return nil
}

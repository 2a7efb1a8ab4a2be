package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/shoplite-go/internal/model"
)

// testDB creates a temporary migrated test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "shoplite-test.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		db.Close()
	}
}

// insertCategory adds a category fixture row. Categories have no write API
// outside seeding, so tests insert them directly.
func insertCategory(t *testing.T, db *sql.DB, id int64, name string) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO categories (id, name) VALUES (?, ?)`, id, name); err != nil {
		t.Fatalf("inserting category: %v", err)
	}
}

func TestListCategories(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("len(categories) = %d, want 0", len(categories))
	}

	insertCategory(t, db, 1, "Áo")
	insertCategory(t, db, 2, "Giày")

	categories, err = q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("len(categories) = %d, want 2", len(categories))
	}
	if categories[0].Name != "Áo" {
		t.Errorf("Name = %q, want %q", categories[0].Name, "Áo")
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	_, err := q.GetCategory(context.Background(), 42)
	if !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestCreateProduct(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 1, "Áo")

	p, err := q.CreateProduct(ctx, CreateProductParams{
		Name:       "Áo khoác",
		Price:      310000,
		Img:        "hinh1.jpg",
		CategoryID: 1,
		Quantity:   3,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if p.ID == 0 {
		t.Error("p.ID should not be 0")
	}
	if p.Name != "Áo khoác" {
		t.Errorf("Name = %q, want %q", p.Name, "Áo khoác")
	}

	products, err := q.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(products))
	}
	if products[0] != p {
		t.Errorf("listed product = %+v, want %+v", products[0], p)
	}
}

func TestCreateProduct_AssignsFreshIDs(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 1, "Áo")

	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		p, err := q.CreateProduct(ctx, CreateProductParams{Name: "P", CategoryID: 1})
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if seen[p.ID] {
			t.Errorf("id %d assigned twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestListProductsByCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 1, "Áo")
	insertCategory(t, db, 2, "Giày")

	shirt, err := q.CreateProduct(ctx, CreateProductParams{Name: "Áo sơ mi", Price: 250000, CategoryID: 1})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := q.CreateProduct(ctx, CreateProductParams{Name: "Giày sneaker", Price: 1100000, CategoryID: 2}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	// Filter includes products of the category
	products, err := q.ListProductsByCategory(ctx, 1)
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(products) != 1 || products[0].ID != shirt.ID {
		t.Errorf("category 1 products = %+v, want only %d", products, shirt.ID)
	}

	// Filter excludes products of other categories
	products, err = q.ListProductsByCategory(ctx, 2)
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	for _, p := range products {
		if p.ID == shirt.ID {
			t.Errorf("product %d leaked into category 2", shirt.ID)
		}
	}

	// Unknown category yields an empty result
	products, err = q.ListProductsByCategory(ctx, 99)
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("len(products) = %d, want 0", len(products))
	}
}

func TestSearchProducts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 1, "Áo")

	if _, err := q.CreateProduct(ctx, CreateProductParams{Name: "Áo sơ mi", CategoryID: 1}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := q.CreateProduct(ctx, CreateProductParams{Name: "Áo khoác", CategoryID: 1}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"sơ", 1},
		{"Áo", 2},
		{"zzz", 0},
		{"", 2}, // empty query matches everything, LIKE '%%'
	}

	for _, tt := range tests {
		products, err := q.SearchProducts(ctx, tt.query)
		if err != nil {
			t.Fatalf("SearchProducts(%q): %v", tt.query, err)
		}
		if len(products) != tt.want {
			t.Errorf("SearchProducts(%q) = %d products, want %d", tt.query, len(products), tt.want)
		}
	}
}

func TestUpdateProduct_FullRowReplace(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 1, "Áo")
	insertCategory(t, db, 2, "Giày")

	p, err := q.CreateProduct(ctx, CreateProductParams{Name: "Áo sơ mi", Price: 250000, Img: "hinh1.jpg", CategoryID: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	err = q.UpdateProduct(ctx, UpdateProductParams{
		ID:         p.ID,
		Name:       "Giày sneaker",
		Price:      1100000,
		Img:        "file:///tmp/shoe.jpg",
		CategoryID: 2,
		Quantity:   7,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	got, err := q.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	want := model.Product{ID: p.ID, Name: "Giày sneaker", Price: 1100000, Img: "file:///tmp/shoe.jpg", CategoryID: 2, Quantity: 7}
	if got != want {
		t.Errorf("product = %+v, want %+v", got, want)
	}
}

func TestDeleteProduct_AbsentIDIsNoOp(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if err := q.DeleteProduct(ctx, 12345); err != nil {
		t.Fatalf("DeleteProduct of absent id: %v", err)
	}
}

func TestProductAddFilterDelete(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	insertCategory(t, db, 5, "Túi")

	p, err := q.CreateProduct(ctx, CreateProductParams{
		Name:       "Túi xách nữ",
		Price:      980000,
		Img:        "hinh1.jpg",
		CategoryID: 5,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	products, err := q.ListProductsByCategory(ctx, 5)
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(products) != 1 || products[0] != p {
		t.Fatalf("category 5 products = %+v, want exactly %+v", products, p)
	}

	if err := q.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	products, err = q.ListProductsByCategory(ctx, 5)
	if err != nil {
		t.Fatalf("ListProductsByCategory: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("category 5 products after delete = %+v, want empty", products)
	}
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		Phone:        sql.NullString{String: "0911222333", Valid: true},
		PasswordHash: "hashed-password",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	first, err := q.CreateUser(ctx, CreateUserParams{Email: "dup@example.com", PasswordHash: "hash1", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err = q.CreateUser(ctx, CreateUserParams{Email: "dup@example.com", PasswordHash: "hash2", Role: model.RoleAdmin})
	if err == nil {
		t.Fatal("expected constraint violation, got nil")
	}
	if !IsConstraintViolation(err) {
		t.Errorf("IsConstraintViolation(%v) = false, want true", err)
	}

	// Existing row untouched
	got, err := q.GetUserByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != first.ID || got.PasswordHash != "hash1" || got.Role != model.RoleUser {
		t.Errorf("existing row changed: %+v", got)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	_, err := New(db).CreateUser(context.Background(), CreateUserParams{
		Email:        "roles@example.com",
		PasswordHash: "hash",
		Role:         "superuser",
	})
	if err == nil {
		t.Fatal("expected CHECK violation, got nil")
	}
	if !IsConstraintViolation(err) {
		t.Errorf("IsConstraintViolation(%v) = false, want true", err)
	}
}

func TestGetUserByPhone(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "phone@example.com",
		Phone:        sql.NullString{String: "0987654321", Valid: true},
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	found, err := q.GetUserByPhone(ctx, "0987654321")
	if err != nil {
		t.Fatalf("GetUserByPhone: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}

	_, err = q.GetUserByPhone(ctx, "0000000000")
	if !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUpdateUserKeepPassword(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created, err := q.CreateUser(ctx, CreateUserParams{Email: "keep@example.com", PasswordHash: "original-hash", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err = q.UpdateUserKeepPassword(ctx, UpdateUserParams{
		ID:    created.ID,
		Email: "kept@example.com",
		Role:  model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("UpdateUserKeepPassword: %v", err)
	}

	got, err := q.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "kept@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "kept@example.com")
	}
	if got.PasswordHash != "original-hash" {
		t.Errorf("PasswordHash = %q, want preserved %q", got.PasswordHash, "original-hash")
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleAdmin)
	}
}

func TestDeleteUser_AbsentIDIsNoOp(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if err := New(db).DeleteUser(context.Background(), 999); err != nil {
		t.Fatalf("DeleteUser of absent id: %v", err)
	}
}

func TestCreateEventAndListRecent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for i, msg := range []string{"first", "second", "third"} {
		_, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   msg,
			UserID:    int64(i),
			Metadata:  "{}",
			CreatedAt: timeForOffset(i),
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	events, err := q.ListRecentEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Message != "third" {
		t.Errorf("newest message = %q, want %q", events[0].Message, "third")
	}
	if events[0].UserID.Valid != true || events[0].UserID.Int64 != 2 {
		t.Errorf("UserID = %+v, want valid 2", events[0].UserID)
	}
}

func timeForOffset(i int) time.Time {
	return time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute)
}

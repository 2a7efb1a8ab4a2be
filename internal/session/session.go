// Package session persists the "current user" marker across process runs.
// The marker is a local file outside the relational store, read once at
// startup, written on login, removed on logout. It is a convenience
// projection of the last authenticated user, never authoritative identity,
// and carries no expiry: this is a local-only trust boundary.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/shoplite-go/internal/model"
	"github.com/olegiv/shoplite-go/internal/util"
)

// marker is the on-disk record.
type marker struct {
	Token   string     `json:"token"`
	User    markerUser `json:"user"`
	SavedAt time.Time  `json:"saved_at"`
}

// markerUser is the serialized user snapshot. Phone flattens to a plain
// optional string instead of the sql.NullString wire shape, and the password
// hash never reaches the marker file.
type markerUser struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
}

func newMarkerUser(u model.User) markerUser {
	mu := markerUser{ID: u.ID, Email: u.Email, Role: u.Role}
	if u.Phone.Valid {
		phone := u.Phone.String
		mu.Phone = &phone
	}
	return mu
}

func (mu markerUser) user() model.User {
	return model.User{
		ID:    mu.ID,
		Email: mu.Email,
		Phone: util.NullStringFromPtr(mu.Phone),
		Role:  mu.Role,
	}
}

// Manager owns the marker file and the in-process current user.
type Manager struct {
	path string

	mu      sync.RWMutex
	current *model.User
	token   string
}

// NewManager creates a Manager for the marker file at path. Nothing is read
// until Restore.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Restore reads the persisted marker. A missing file means no session and
// is not an error. A marker that cannot be parsed is removed so the next
// start comes up clean, and the parse error is returned.
func (m *Manager) Restore() (model.User, bool, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("reading session marker: %w", err)
	}

	var mk marker
	if err := json.Unmarshal(data, &mk); err != nil {
		_ = os.Remove(m.path)
		return model.User{}, false, fmt.Errorf("parsing session marker: %w", err)
	}
	if mk.Token == "" || mk.User.ID == 0 {
		_ = os.Remove(m.path)
		return model.User{}, false, nil
	}

	user := mk.User.user()

	m.mu.Lock()
	m.current = &user
	m.token = mk.Token
	m.mu.Unlock()

	return user, true, nil
}

// Login persists a marker for user and makes it the current session. The
// write goes through a temp file and rename so a crash never leaves a
// half-written marker.
func (m *Manager) Login(user model.User) error {
	mk := marker{
		Token:   uuid.NewString(),
		User:    newMarkerUser(user),
		SavedAt: time.Now(),
	}

	data, err := json.MarshalIndent(mk, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session marker: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session marker: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing session marker: %w", err)
	}

	m.mu.Lock()
	u := user
	m.current = &u
	m.token = mk.Token
	m.mu.Unlock()

	return nil
}

// Logout clears the current session and removes the marker file. Logging
// out with no active session is a no-op.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.token = ""
	m.mu.Unlock()

	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session marker: %w", err)
	}
	return nil
}

// Current returns the logged-in user, if any.
func (m *Manager) Current() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return model.User{}, false
	}
	return *m.current, true
}

// IsAdmin reports whether the current session belongs to an admin. UI-level
// gating only; there is no server to enforce it.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current != nil && m.current.IsAdmin()
}

// Token returns the marker token of the active session, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

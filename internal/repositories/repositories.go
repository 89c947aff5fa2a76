// package repositories provides persistence layer implementations for client state.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/gigx/internal/shared"
)

// StateRepository stores string values by key in client_state.
type StateRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewStateRepository creates a new [StateRepository] with the given database connection
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db, now: time.Now}
}

// Get returns the value for key, or [shared.ErrStateNotFound].
func (r *StateRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrStateNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query state: %w", err)
	}
	return value, nil
}

// Set inserts or replaces the value for key.
func (r *StateRepository) Set(key, value string) error {
	query := `
		INSERT INTO client_state (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := r.now().UTC()
	if _, err := r.db.Exec(query, key, value, now, now); err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (r *StateRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// Take returns the value for key and removes it in one transaction.
func (r *StateRepository) Take(key string) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var value string
	err = tx.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrStateNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query state: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return "", fmt.Errorf("failed to delete state %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit state transaction: %w", err)
	}
	return value, nil
}

// Clear removes every stored key.
func (r *StateRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM client_state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (r *StateRepository) UpdatedAt(key string) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow(`SELECT updated_at FROM client_state WHERE key = ?`, key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %s", shared.ErrStateNotFound, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query state: %w", err)
	}
	return updatedAt, nil
}

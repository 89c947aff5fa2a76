package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/gigx/internal/shared"
)

const (
	KeyAccessToken        = "access_token"
	KeySelectedArtistID   = "selected_artist_id"
	KeyMessageRecipientID = "message_recipient_id"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestStateRepository(t *testing.T) {
	t.Run("Set and Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewStateRepository(db)
		if err := repo.Set(KeyAccessToken, "abc"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		got, err := repo.Get(KeyAccessToken)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got != "abc" {
			t.Errorf("expected abc, got %s", got)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewStateRepository(db)
		first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return first }
		if err := repo.Set(KeyAccessToken, "old"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		repo.now = func() time.Time { return first.Add(time.Hour) }
		if err := repo.Set(KeyAccessToken, "new"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		got, _ := repo.Get(KeyAccessToken)
		if got != "new" {
			t.Errorf("expected new, got %s", got)
		}

		updatedAt, err := repo.UpdatedAt(KeyAccessToken)
		if err != nil {
			t.Fatalf("failed to read updated_at: %v", err)
		}
		if !updatedAt.Equal(first.Add(time.Hour)) {
			t.Errorf("expected updated_at to move forward, got %v", updatedAt)
		}
	})

	t.Run("Get missing key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewStateRepository(db).Get("nope")
		if !errors.Is(err, shared.ErrStateNotFound) {
			t.Errorf("expected ErrStateNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewStateRepository(db)
		_ = repo.Set(KeySelectedArtistID, "7")
		if err := repo.Delete(KeySelectedArtistID); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, err := repo.Get(KeySelectedArtistID); !errors.Is(err, shared.ErrStateNotFound) {
			t.Errorf("expected key to be gone, got %v", err)
		}

		if err := repo.Delete("never-set"); err != nil {
			t.Errorf("deleting a missing key should succeed: %v", err)
		}
	})

	t.Run("Take consumes the value", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewStateRepository(db)
		_ = repo.Set(KeyMessageRecipientID, "12")

		got, err := repo.Take(KeyMessageRecipientID)
		if err != nil {
			t.Fatalf("failed to take: %v", err)
		}
		if got != "12" {
			t.Errorf("expected 12, got %s", got)
		}

		if _, err := repo.Take(KeyMessageRecipientID); !errors.Is(err, shared.ErrStateNotFound) {
			t.Errorf("second take should miss, got %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewStateRepository(db)
		_ = repo.Set(KeyAccessToken, "a")
		_ = repo.Set(KeySelectedArtistID, "1")
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM client_state").Scan(&count); err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty table, got %d rows", count)
		}
	})
}

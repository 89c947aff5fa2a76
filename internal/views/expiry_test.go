package views

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	tu "github.com/desertthunder/gigx/internal/testing"
)

func TestSessionExpiry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			tu.WriteJSON(t, w, http.StatusOK, []models.Artist{{ArtistID: 1, StageName: "First"}})
			return
		}
		tu.WriteJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	sess, store, nav := tu.NewTestSession(t)
	if err := sess.SetToken("expired"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	api := services.NewAPIService(server.URL, server.Client(), sess)
	d := NewDirectory(api, testPrices(), LayoutGrid, quietLogger())
	ctx := context.Background()

	if _, err := d.PerformSearch(ctx, SearchForm{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := d.PerformSearch(ctx, SearchForm{Search: "x"})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.Has("access_token") || sess.Authenticated() {
		t.Error("token should be cleared")
	}
	if nav.Last() != session.PageEntry {
		t.Errorf("expected entry, got %q", nav.Last())
	}
	if m.Err != nil || len(m.Artists) != 1 {
		t.Errorf("view model should not be updated, got %+v", m)
	}
	if m.State != StateLoaded {
		t.Errorf("expected the view to return to loaded, got %s", m.State)
	}
	if d.Model().State != StateLoaded {
		t.Errorf("stored state = %s, want loaded", d.Model().State)
	}
}

func TestSessionExpiryLeavesLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tu.WriteJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	sess, _, _ := tu.NewTestSession(t)
	if err := sess.SetToken("expired"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	api := services.NewAPIService(server.URL, server.Client(), sess)
	ctx := context.Background()

	t.Run("bookings", func(t *testing.T) {
		v := NewBookings(api, sess, testPrices(), quietLogger())
		m, err := v.Load(ctx)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if m.State != StateIdle {
			t.Errorf("state = %s, want idle", m.State)
		}
	})

	t.Run("artist detail", func(t *testing.T) {
		v := NewArtistDetail(api, sess, testPrices(), quietLogger())
		m, err := v.Show(ctx, 3)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if m.State == StateLoading {
			t.Error("detail should not stay loading")
		}
	})
}

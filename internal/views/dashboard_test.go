package views

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	tu "github.com/desertthunder/gigx/internal/testing"
)

func TestComputeStats(t *testing.T) {
	bookings := []models.Booking{
		booking(1, models.StatusPending),
		booking(2, models.StatusConfirmed),
		booking(3, models.StatusConfirmed),
	}
	reviews := []models.Review{{RatingScore: 1}, {RatingScore: 1}}

	t.Run("uses the stored rating", func(t *testing.T) {
		s := ComputeStats(bookings, reviews, &models.Artist{Rating: fptr(4.75)})
		if s.TotalBookings != 3 || s.ConfirmedBookings != 2 || s.TotalReviews != 2 {
			t.Errorf("unexpected counts %+v", s)
		}
		if s.RatingText() != "4.8" {
			t.Errorf("rating = %q", s.RatingText())
		}
	})

	t.Run("no profile", func(t *testing.T) {
		s := ComputeStats(nil, nil, nil)
		if s != (Stats{}) || s.RatingText() != "0.0" {
			t.Errorf("unexpected stats %+v", s)
		}
	})
}

func TestReviewsSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		f := &fakeMarket{}
		r := NewReviews(f, quietLogger())
		if _, err := r.Submit(ctx, ReviewForm{BookingID: 3, ReviewedID: 4, Score: "4.5", Comment: "great"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.newReviews) != 1 || f.newReviews[0].RatingScore != 4.5 {
			t.Errorf("sent %+v", f.newReviews)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		f := &fakeMarket{}
		r := NewReviews(f, quietLogger())
		for _, score := range []string{"0", "6", "abc"} {
			if _, err := r.Submit(ctx, ReviewForm{BookingID: 3, ReviewedID: 4, Score: score}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("%q: expected ErrInvalidInput, got %v", score, err)
			}
		}
		if len(f.newReviews) != 0 {
			t.Error("nothing should be sent")
		}
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	artist := &models.Artist{ArtistID: 7, StageName: "DJ Test", Rating: fptr(4.5)}

	t.Run("signed out goes to entry", func(t *testing.T) {
		sess, _, nav := tu.NewTestSession(t)
		d := NewDashboard(&fakeMarket{}, sess, testPrices(), quietLogger())

		if _, err := d.Load(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if nav.Last() != session.PageEntry {
			t.Errorf("expected entry, got %q", nav.Last())
		}
	})

	t.Run("non-artist is signed out", func(t *testing.T) {
		sess, store, nav := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		f := &fakeMarket{user: &models.User{ID: 2, Role: models.RoleOrganizer}}
		d := NewDashboard(f, sess, testPrices(), quietLogger())

		if _, err := d.Load(ctx); !errors.Is(err, shared.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
		if sess.Authenticated() || store.Has("access_token") {
			t.Error("session should be cleared")
		}
		if nav.Last() != session.PageEntry {
			t.Errorf("expected entry, got %q", nav.Last())
		}
		if f.listCalls != 0 {
			t.Error("no sections should load")
		}
	})

	t.Run("bootstraps the user when missing", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		user := &models.User{ID: 1, Role: models.RoleArtist}
		f := &fakeMarket{
			user:    user,
			profile: services.ProfileResult{State: services.ProfileExists, Artist: artist},
		}
		f.onBootstrap = func() { sess.SetUser(user) }
		d := NewDashboard(f, sess, testPrices(), quietLogger())

		m, err := d.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.User == nil || m.User.ID != 1 {
			t.Errorf("user = %+v", m.User)
		}
	})

	t.Run("loads every section and computes stats", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		sess.SetUser(&models.User{ID: 1, Role: models.RoleArtist})
		f := &fakeMarket{
			profile: services.ProfileResult{State: services.ProfileExists, Artist: artist},
			bookingSnapshots: [][]models.Booking{{
				booking(1, models.StatusPending),
				booking(2, models.StatusConfirmed),
			}},
			reviews: []models.Review{{ReviewID: 1, RatingScore: 2}},
		}
		d := NewDashboard(f, sess, testPrices(), quietLogger())

		m, err := d.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Profile.Mode != ModeView || m.Bookings.State != StateLoaded || m.Reviews.State != StateLoaded {
			t.Errorf("unexpected sections %+v", m)
		}
		want := Stats{TotalBookings: 2, ConfirmedBookings: 1, TotalReviews: 1, Rating: 4.5}
		if m.Stats != want {
			t.Errorf("stats = %+v, want %+v", m.Stats, want)
		}
	})

	t.Run("missing profile skips reviews", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		sess.SetUser(&models.User{ID: 1, Role: models.RoleArtist})
		f := &fakeMarket{
			profile:    services.ProfileResult{State: services.ProfileMissing},
			reviewsErr: errors.New("must not be called"),
		}
		d := NewDashboard(f, sess, testPrices(), quietLogger())

		m, err := d.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.Reviews.Skipped || m.Reviews.Err != nil {
			t.Errorf("reviews = %+v", m.Reviews)
		}
		if m.Profile.Mode != ModeCreate {
			t.Errorf("mode = %s", m.Profile.Mode)
		}
	})

	t.Run("section failure does not abort", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		sess.SetUser(&models.User{ID: 1, Role: models.RoleArtist})
		f := &fakeMarket{
			profile:     services.ProfileResult{State: services.ProfileExists, Artist: artist},
			bookingsErr: errors.New("down"),
		}
		d := NewDashboard(f, sess, testPrices(), quietLogger())

		m, err := d.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Bookings.State != StateError || m.Reviews.State != StateLoaded {
			t.Errorf("unexpected sections bookings=%s reviews=%s", m.Bookings.State, m.Reviews.State)
		}
	})
}

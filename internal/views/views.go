// package views implements the view controllers of the gigx client
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

// State is the lifecycle of a view: idle, then loading, then loaded or failed.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Tracker orders the requests of one view.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Ticket identifies one request started by [Tracker.Begin].
type Ticket struct {
	gen    uint64
	cancel context.CancelFunc
}

// Done releases the request's context.
func (tk Ticket) Done() {
	if tk.cancel != nil {
		tk.cancel()
	}
}

// Begin cancels the in-flight request, if any, and starts a new generation.
func (t *Tracker) Begin(parent context.Context) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	t.cancel = cancel
	return ctx, Ticket{gen: t.gen, cancel: cancel}
}

// Current reports whether tk is still the newest request.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.gen == t.gen
}

// Commit runs apply only if tk is still current, otherwise it returns [shared.ErrSuperseded].
func (t *Tracker) Commit(tk Ticket, apply func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk.gen != t.gen {
		return shared.ErrSuperseded
	}
	apply()
	return nil
}

// Cancel aborts the in-flight request without starting a new one.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// settle maps a fetch error from a cancelled request to [shared.ErrSuperseded].
func settle(t *Tracker, tk Ticket, err error) error {
	if err != nil && !t.Current(tk) {
		return shared.ErrSuperseded
	}
	return err
}

// halts reports errors after which the response must not reach the view model: a newer request
// took over, or the session expired.
func halts(err error) bool {
	return errors.Is(err, shared.ErrSuperseded) || errors.Is(err, shared.ErrUnauthorized)
}

// rollback restores the pre-request state when the session expired mid-request, so the view never
// stays in loading. A superseded request leaves the state to its successor.
func rollback(t *Tracker, tk Ticket, err error, restore func()) {
	if errors.Is(err, shared.ErrUnauthorized) {
		_ = t.Commit(tk, restore)
	}
}

// IsSuperseded reports a result dropped in favour of a newer request.
func IsSuperseded(err error) bool {
	return errors.Is(err, shared.ErrSuperseded)
}

// ArtistSearcher lists artists.
type ArtistSearcher interface {
	SearchArtists(ctx context.Context, filters services.SearchFilters) ([]models.Artist, error)
}

// DetailSource loads one artist and their reviews.
type DetailSource interface {
	GetArtist(ctx context.Context, artistID int) (*models.Artist, error)
	ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error)
}

// ProfileSource reads and writes the signed-in artist's profile.
type ProfileSource interface {
	MyArtistProfile(ctx context.Context) (services.ProfileResult, error)
	CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error)
	UpdateArtist(ctx context.Context, artistID int, in models.ArtistInput) (*models.Artist, error)
}

// BookingSource lists bookings and changes their status.
type BookingSource interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int, status models.BookingStatus) (*models.Booking, error)
}

// ReviewSource lists and creates reviews.
type ReviewSource interface {
	ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error)
	CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error)
}

// AccountSource signs users in and up.
type AccountSource interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Bootstrap(ctx context.Context) (*models.User, error)
}

// MessageSource lists and sends direct messages.
type MessageSource interface {
	ListMessages(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error)
}

// BookingRequestSource creates bookings for a chosen artist.
type BookingRequestSource interface {
	GetArtist(ctx context.Context, artistID int) (*models.Artist, error)
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
}

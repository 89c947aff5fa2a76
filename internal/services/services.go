// package services defines interface Marketplace for the gigx backend API
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/desertthunder/gigx/internal/models"
)

// Marketplace defines the typed backend operations used by the views.
type Marketplace interface {
	// Login exchanges credentials for a token and stores it in the session.
	Login(ctx context.Context, email, password string) error

	// Register creates an account. The user still has to log in afterwards.
	Register(ctx context.Context, reg models.Registration) (*models.User, error)

	// CurrentUser fetches the signed-in user.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Bootstrap loads the current user into the session when a token is held.
	Bootstrap(ctx context.Context) (*models.User, error)

	SearchArtists(ctx context.Context, filters SearchFilters) ([]models.Artist, error)
	GetArtist(ctx context.Context, artistID int) (*models.Artist, error)
	MyArtistProfile(ctx context.Context) (ProfileResult, error)
	CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error)
	UpdateArtist(ctx context.Context, artistID int, in models.ArtistInput) (*models.Artist, error)

	ListBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int, status models.BookingStatus) (*models.Booking, error)

	ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error)
	CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error)

	ListMessages(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error)

	CreateOrganizer(ctx context.Context, in models.OrganizerInput) (*models.Organizer, error)
	GetOrganizer(ctx context.Context, organizerID int) (*models.Organizer, error)
}

// SearchFilters are the optional directory filters. Nil and empty values are left out of the query.
type SearchFilters struct {
	Search   string   `json:"search,omitempty"`
	Genre    string   `json:"genre,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
}

// Query encodes only the filters that are present.
func (f SearchFilters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.PriceMin != nil && *f.PriceMin > 0 {
		q.Set("price_min", strconv.FormatFloat(*f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != nil && *f.PriceMax > 0 {
		q.Set("price_max", strconv.FormatFloat(*f.PriceMax, 'f', -1, 64))
	}
	return q
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return len(f.Query()) == 0
}

// ProfileState distinguishes a missing artist profile from an existing one.
type ProfileState int

const (
	ProfileMissing ProfileState = iota
	ProfileExists
)

// ProfileResult is the outcome of looking up the signed-in artist's own profile.
type ProfileResult struct {
	State  ProfileState
	Artist *models.Artist
}

package views

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

type patch struct {
	id     int
	status models.BookingStatus
}

// fakeMarket is an in-memory stand-in for the backend.
type fakeMarket struct {
	mu sync.Mutex

	artists       []models.Artist
	searchErr     error
	searches      []services.SearchFilters
	searchResults map[int][]models.Artist
	searchGates   map[int]chan struct{}

	artist    *models.Artist
	artistErr error

	reviews    []models.Review
	reviewsErr error
	newReviews []models.ReviewInput

	profile    services.ProfileResult
	profileErr error
	created    []models.ArtistInput
	updated    []models.ArtistInput
	saveErr    error

	bookingSnapshots [][]models.Booking
	bookingsErr      error
	listCalls        int
	patches          []patch
	patchErr         error
	createdBookings  []models.BookingInput

	user         *models.User
	loginErr     error
	bootstrapErr error
	registered   []models.Registration
	onBootstrap  func()

	messages []models.Message
	sent     []models.MessageInput
}

func (f *fakeMarket) SearchArtists(ctx context.Context, filters services.SearchFilters) ([]models.Artist, error) {
	f.mu.Lock()
	f.searches = append(f.searches, filters)
	n := len(f.searches)
	gate := f.searchGates[n]
	result, ok := f.searchResults[n]
	if !ok {
		result = f.artists
	}
	err := f.searchErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *fakeMarket) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeMarket) GetArtist(ctx context.Context, artistID int) (*models.Artist, error) {
	if f.artistErr != nil {
		return nil, f.artistErr
	}
	return f.artist, nil
}

func (f *fakeMarket) ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error) {
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}
	return f.reviews, nil
}

func (f *fakeMarket) CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	f.newReviews = append(f.newReviews, in)
	return &models.Review{ReviewID: 1, BookingID: in.BookingID, RatingScore: in.RatingScore}, nil
}

func (f *fakeMarket) MyArtistProfile(ctx context.Context) (services.ProfileResult, error) {
	return f.profile, f.profileErr
}

func (f *fakeMarket) CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error) {
	f.created = append(f.created, in)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &models.Artist{ArtistID: 100, StageName: in.StageName, Bio: in.Bio, Genres: in.Genres, PriceMin: in.PriceMin, PriceMax: in.PriceMax}, nil
}

func (f *fakeMarket) UpdateArtist(ctx context.Context, artistID int, in models.ArtistInput) (*models.Artist, error) {
	f.updated = append(f.updated, in)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &models.Artist{ArtistID: artistID, StageName: in.StageName, Bio: in.Bio, Genres: in.Genres, PriceMin: in.PriceMin, PriceMax: in.PriceMax}, nil
}

func (f *fakeMarket) ListBookings(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	if len(f.bookingSnapshots) == 0 {
		return []models.Booking{}, nil
	}
	idx := min(f.listCalls, len(f.bookingSnapshots)) - 1
	return f.bookingSnapshots[idx], nil
}

func (f *fakeMarket) UpdateBookingStatus(ctx context.Context, bookingID int, status models.BookingStatus) (*models.Booking, error) {
	f.patches = append(f.patches, patch{bookingID, status})
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return &models.Booking{BookingID: bookingID, Status: status}, nil
}

func (f *fakeMarket) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	f.createdBookings = append(f.createdBookings, in)
	return &models.Booking{BookingID: 55, ArtistID: in.ArtistID, Status: models.StatusPending}, nil
}

func (f *fakeMarket) Login(ctx context.Context, email, password string) error {
	return f.loginErr
}

func (f *fakeMarket) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	f.registered = append(f.registered, reg)
	return &models.User{ID: 9, Email: reg.Email, Role: reg.Role}, nil
}

func (f *fakeMarket) Bootstrap(ctx context.Context) (*models.User, error) {
	if f.onBootstrap != nil {
		f.onBootstrap()
	}
	return f.user, f.bootstrapErr
}

func (f *fakeMarket) ListMessages(ctx context.Context) ([]models.Message, error) {
	return f.messages, nil
}

func (f *fakeMarket) SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	f.sent = append(f.sent, in)
	msg := models.Message{MessageID: len(f.sent), ReceiverID: in.ReceiverID, Content: in.Content}
	f.messages = append(f.messages, msg)
	return &msg, nil
}

func fptr(v float64) *float64 { return &v }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func testPrices() *shared.PriceFormatter { return shared.NewPriceFormatter("en", "₽") }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

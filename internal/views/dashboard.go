package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
)

// ReviewsModel lists the reviews of the held profile.
type ReviewsModel struct {
	State   State
	Reviews []models.Review
	Cards   []ReviewCard
	// Skipped is set when there was no profile to load reviews for.
	Skipped bool
	Err     error
}

// Empty reports a loaded list without reviews.
func (m ReviewsModel) Empty() bool {
	return m.State == StateLoaded && len(m.Reviews) == 0
}

// Reviews loads reviews for an artist and submits new ones.
type Reviews struct {
	api     ReviewSource
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model ReviewsModel
}

// NewReviews creates an idle review list.
func NewReviews(api ReviewSource, logger *log.Logger) *Reviews {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Reviews{api: api, logger: logger}
}

// Model returns a copy of the current view model.
func (v *Reviews) Model() ReviewsModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// Load fetches reviews for artist. Without a profile nothing is fetched.
func (v *Reviews) Load(ctx context.Context, artist *models.Artist) (ReviewsModel, error) {
	if artist == nil {
		v.tracker.Cancel()
		v.mu.Lock()
		v.model = ReviewsModel{State: StateLoaded, Skipped: true}
		v.mu.Unlock()
		return v.Model(), nil
	}

	ctx, tk := v.tracker.Begin(ctx)
	defer tk.Done()

	v.mu.Lock()
	prev := v.model.State
	v.model.State = StateLoading
	v.mu.Unlock()

	reviews, err := v.api.ArtistReviews(ctx, artist.ArtistID)
	if err = settle(&v.tracker, tk, err); halts(err) {
		rollback(&v.tracker, tk, err, func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.model.State = prev
		})
		return v.Model(), err
	}

	commitErr := v.tracker.Commit(tk, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if err != nil {
			v.logger.Error("failed to load reviews", "artist_id", artist.ArtistID, "error", err)
			v.model = ReviewsModel{State: StateError, Err: fmt.Errorf("failed to load reviews: %w", err)}
			return
		}
		cards := make([]ReviewCard, 0, len(reviews))
		for _, r := range reviews {
			cards = append(cards, ReviewCardFor(r))
		}
		v.model = ReviewsModel{State: StateLoaded, Reviews: reviews, Cards: cards}
	})
	if commitErr != nil {
		return v.Model(), commitErr
	}

	m := v.Model()
	return m, m.Err
}

// ReviewForm holds the raw review inputs.
type ReviewForm struct {
	BookingID  int
	ReviewedID int
	Score      string
	Comment    string
}

// Submit validates and posts a review.
func (v *Reviews) Submit(ctx context.Context, form ReviewForm) (*models.Review, error) {
	score, ok := shared.ParseNonNegative(form.Score)
	if !ok {
		return nil, fmt.Errorf("%w: rating must be a number between 1 and 5", shared.ErrInvalidInput)
	}

	in := models.ReviewInput{
		BookingID:   form.BookingID,
		ReviewedID:  form.ReviewedID,
		RatingScore: score,
		Comment:     form.Comment,
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	review, err := v.api.CreateReview(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}
	return review, nil
}

// Stats is the dashboard summary. It is derived on demand and never stored.
type Stats struct {
	TotalBookings     int
	ConfirmedBookings int
	TotalReviews      int
	Rating            float64
}

// RatingText renders the rating with one decimal.
func (s Stats) RatingText() string {
	return shared.FormatRating(&s.Rating)
}

// ComputeStats aggregates the snapshots. The rating is the artist's stored value, not an average of reviews.
func ComputeStats(bookings []models.Booking, reviews []models.Review, artist *models.Artist) Stats {
	s := Stats{TotalBookings: len(bookings), TotalReviews: len(reviews)}
	for _, b := range bookings {
		if b.Status == models.StatusConfirmed {
			s.ConfirmedBookings++
		}
	}
	if artist != nil && artist.Rating != nil {
		s.Rating = *artist.Rating
	}
	return s
}

// DashboardSource is everything the artist dashboard reads.
type DashboardSource interface {
	ProfileSource
	BookingSource
	ReviewSource
	Bootstrap(ctx context.Context) (*models.User, error)
}

// DashboardModel is the artist dashboard.
type DashboardModel struct {
	User     *models.User
	Profile  ProfileModel
	Bookings BookingsModel
	Reviews  ReviewsModel
	Stats    Stats
}

// Dashboard is the artist's home: profile, bookings, reviews and stats.
type Dashboard struct {
	api     DashboardSource
	session *session.Session
	logger  *log.Logger

	Profile  *Profile
	Bookings *Bookings
	Reviews  *Reviews
}

// NewDashboard wires the section views over one source.
func NewDashboard(api DashboardSource, sess *session.Session, prices *shared.PriceFormatter, logger *log.Logger) *Dashboard {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dashboard{
		api:      api,
		session:  sess,
		logger:   logger,
		Profile:  NewProfile(api, logger),
		Bookings: NewBookings(api, sess, prices, logger),
		Reviews:  NewReviews(api, logger),
	}
}

// Authorize makes sure an artist is signed in. Anyone else is signed out.
func (d *Dashboard) Authorize(ctx context.Context) (*models.User, error) {
	if !d.session.Authenticated() {
		d.session.Navigate(session.PageEntry)
		return nil, shared.ErrNotAuthenticated
	}

	user := d.session.User()
	if user == nil {
		var err error
		if user, err = d.api.Bootstrap(ctx); err != nil {
			return nil, err
		}
	}

	if user == nil || user.Role != models.RoleArtist {
		d.logger.Warn("artist dashboard denied", "role", roleOf(user))
		if err := d.session.Logout(); err != nil {
			d.logger.Error("failed to sign out", "error", err)
		}
		return nil, fmt.Errorf("%w: the dashboard is for artists", shared.ErrForbidden)
	}
	return user, nil
}

func roleOf(u *models.User) string {
	if u == nil {
		return ""
	}
	return string(u.Role)
}

// Load authorizes, then loads profile, bookings and reviews in order and computes stats.
//
// Section failures are recorded on their models; only authorization and session expiry abort.
func (d *Dashboard) Load(ctx context.Context) (DashboardModel, error) {
	user, err := d.Authorize(ctx)
	if err != nil {
		return DashboardModel{}, err
	}

	if _, err := d.Profile.Load(ctx); errors.Is(err, shared.ErrUnauthorized) {
		return DashboardModel{}, err
	}
	if _, err := d.Bookings.Load(ctx); errors.Is(err, shared.ErrUnauthorized) {
		return DashboardModel{}, err
	}
	if _, err := d.Reviews.Load(ctx, d.Profile.Artist()); errors.Is(err, shared.ErrUnauthorized) {
		return DashboardModel{}, err
	}

	return d.snapshot(user), nil
}

// Model returns the current state of all sections.
func (d *Dashboard) Model() DashboardModel {
	return d.snapshot(d.session.User())
}

func (d *Dashboard) snapshot(user *models.User) DashboardModel {
	profile := d.Profile.Model()
	bookings := d.Bookings.Model()
	reviews := d.Reviews.Model()
	return DashboardModel{
		User:     user,
		Profile:  profile,
		Bookings: bookings,
		Reviews:  reviews,
		Stats:    ComputeStats(bookings.All, reviews.Reviews, profile.Artist),
	}
}

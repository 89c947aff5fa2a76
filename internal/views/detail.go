package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
)

// Star is one position of a five star rating.
type Star int

const (
	StarEmpty Star = iota
	StarHalf
	StarFull
)

func (s Star) String() string {
	switch s {
	case StarFull:
		return "full"
	case StarHalf:
		return "half"
	default:
		return "empty"
	}
}

// Stars renders rating as five positions: full when i <= rating, half when i-0.5 <= rating.
func Stars(rating float64) [5]Star {
	var stars [5]Star
	for i := 1; i <= 5; i++ {
		pos := float64(i)
		switch {
		case pos <= rating:
			stars[i-1] = StarFull
		case pos-0.5 <= rating:
			stars[i-1] = StarHalf
		default:
			stars[i-1] = StarEmpty
		}
	}
	return stars
}

// ReviewCard is the rendered form of one review.
type ReviewCard struct {
	ReviewID int
	Author   string
	Score    float64
	Stars    [5]Star
	Comment  string
	Date     string
}

// ReviewCardFor builds the card for r.
func ReviewCardFor(r models.Review) ReviewCard {
	comment := strings.TrimSpace(r.Comment)
	if comment == "" {
		comment = shared.CommentPlaceholder
	}
	return ReviewCard{
		ReviewID: r.ReviewID,
		Author:   fmt.Sprintf("User #%d", r.ReviewerID),
		Score:    r.RatingScore,
		Stars:    Stars(r.RatingScore),
		Comment:  comment,
		Date:     shared.FormatDate(r.CreatedAt.Time),
	}
}

// DetailModel is the full profile of one artist.
type DetailModel struct {
	State   State
	Artist  *models.Artist
	Card    ArtistCard
	Genres  []string
	Reviews []ReviewCard
	// CanBook is set when the viewer is a signed-in organizer.
	CanBook bool
	Err     error
}

// ArtistDetail shows one artist with reviews and offers the organizer actions.
type ArtistDetail struct {
	api     DetailSource
	session *session.Session
	prices  *shared.PriceFormatter
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model DetailModel
}

// NewArtistDetail creates an idle detail view.
func NewArtistDetail(api DetailSource, sess *session.Session, prices *shared.PriceFormatter, logger *log.Logger) *ArtistDetail {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ArtistDetail{api: api, session: sess, prices: prices, logger: logger}
}

// Model returns a copy of the current view model.
func (v *ArtistDetail) Model() DetailModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// Show fetches the profile, then its reviews. A failure of either yields [shared.ErrDetailUnavailable] and
// nothing is rendered.
func (v *ArtistDetail) Show(ctx context.Context, artistID int) (DetailModel, error) {
	ctx, tk := v.tracker.Begin(ctx)
	defer tk.Done()

	v.mu.Lock()
	prev := v.model
	v.model = DetailModel{State: StateLoading}
	v.mu.Unlock()

	artist, reviews, err := v.fetch(ctx, artistID)
	if err = settle(&v.tracker, tk, err); halts(err) {
		rollback(&v.tracker, tk, err, func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.model = prev
		})
		return v.Model(), err
	}

	canBook := v.session != nil && v.session.Authenticated() && v.session.HasRole(models.RoleOrganizer)

	commitErr := v.tracker.Commit(tk, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if err != nil {
			v.model = DetailModel{State: StateError, Err: err}
			return
		}

		cards := make([]ReviewCard, 0, len(reviews))
		for _, r := range reviews {
			cards = append(cards, ReviewCardFor(r))
		}
		genres := make([]string, 0, len(artist.Genres))
		for _, g := range artist.Genres {
			genres = append(genres, strings.TrimSpace(g))
		}

		v.model = DetailModel{
			State:   StateLoaded,
			Artist:  artist,
			Card:    CardFor(*artist, v.prices),
			Genres:  genres,
			Reviews: cards,
			CanBook: canBook,
		}
	})
	if commitErr != nil {
		return v.Model(), commitErr
	}

	m := v.Model()
	return m, m.Err
}

func (v *ArtistDetail) fetch(ctx context.Context, artistID int) (*models.Artist, []models.Review, error) {
	artist, err := v.api.GetArtist(ctx, artistID)
	if err != nil {
		return nil, nil, v.generic(err, artistID)
	}

	reviews, err := v.api.ArtistReviews(ctx, artistID)
	if err != nil {
		return nil, nil, v.generic(err, artistID)
	}
	return artist, reviews, nil
}

func (v *ArtistDetail) generic(err error, artistID int) error {
	if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return err
	}
	v.logger.Error("failed to load artist", "artist_id", artistID, "error", err)
	return shared.ErrDetailUnavailable
}

// requireOrganizer sends signed-out users to the entry page.
func (v *ArtistDetail) requireOrganizer() error {
	if v.session == nil || !v.session.Authenticated() {
		if v.session != nil {
			v.session.Navigate(session.PageEntry)
		}
		return shared.ErrNotAuthenticated
	}
	if !v.session.HasRole(models.RoleOrganizer) {
		return fmt.Errorf("%w: only organizers can book artists", shared.ErrForbidden)
	}
	return nil
}

func (v *ArtistDetail) shown() (*models.Artist, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.model.Artist == nil {
		return nil, fmt.Errorf("%w: no artist loaded", shared.ErrMissingArgument)
	}
	return v.model.Artist, nil
}

// RequestBooking hands the shown artist to the booking request page.
func (v *ArtistDetail) RequestBooking() error {
	if err := v.requireOrganizer(); err != nil {
		return err
	}
	artist, err := v.shown()
	if err != nil {
		return err
	}
	if err := v.session.SetHandoff(session.HandoffSelectedArtist, strconv.Itoa(artist.ArtistID)); err != nil {
		return err
	}
	v.session.Navigate(session.PageBookingRequest)
	return nil
}

// MessageArtist hands the shown artist's user to the messages page.
func (v *ArtistDetail) MessageArtist() error {
	if err := v.requireOrganizer(); err != nil {
		return err
	}
	artist, err := v.shown()
	if err != nil {
		return err
	}
	if err := v.session.SetHandoff(session.HandoffMessageRecipient, strconv.Itoa(artist.UserID)); err != nil {
		return err
	}
	v.session.Navigate(session.PageMessages)
	return nil
}

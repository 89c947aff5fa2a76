// Typed endpoints of the gigx backend
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"golang.org/x/oauth2"
)

// routeNotFound is the detail the backend router returns for unknown paths.
const routeNotFound = "Not Found"

// Login performs the OAuth2 resource-owner password grant against /api/token and stores the token.
func (a *APIService) Login(ctx context.Context, email, password string) error {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  a.baseURL + "/api/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			detail := parseDetail(rerr.Body)
			if detail == "" {
				detail = shared.ErrInvalidCredentials.Error()
			}
			if rerr.Response.StatusCode == http.StatusUnauthorized || rerr.Response.StatusCode == http.StatusBadRequest {
				return fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, detail)
			}
			return &APIError{Status: rerr.Response.StatusCode, Detail: detail}
		}
		a.logger.Error("login request failed", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if a.session == nil {
		return fmt.Errorf("%w: no session to store the token in", shared.ErrAuthFailed)
	}
	return a.session.SetToken(token.AccessToken)
}

// Register creates an account with POST /api/register.
func (a *APIService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	var user models.User
	if err := a.doJSON(ctx, http.MethodPost, "/api/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches GET /api/users/me.
func (a *APIService) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.doJSON(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Bootstrap loads the current user when a token is held.
//
// A non-success response signs the session out. Network failures leave the token in place.
func (a *APIService) Bootstrap(ctx context.Context) (*models.User, error) {
	if a.session == nil || !a.session.Authenticated() {
		return nil, nil
	}

	user, err := a.CurrentUser(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if lerr := a.session.Logout(); lerr != nil {
				a.logger.Error("failed to sign out", "error", lerr)
			}
		}
		return nil, err
	}

	a.session.SetUser(user)
	return user, nil
}

// SearchArtists fetches GET /api/artists with only the present filters in the query.
func (a *APIService) SearchArtists(ctx context.Context, filters SearchFilters) ([]models.Artist, error) {
	endpoint := "/api/artists"
	if q := filters.Query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	artists := []models.Artist{}
	if err := a.doJSON(ctx, http.MethodGet, endpoint, nil, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetArtist fetches GET /api/artists/{id}.
func (a *APIService) GetArtist(ctx context.Context, artistID int) (*models.Artist, error) {
	var artist models.Artist
	err := a.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/artists/%d", artistID), nil, &artist)
	if StatusOf(err) == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", shared.ErrArtistNotFound, artistID)
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// MyArtistProfile looks up GET /api/artists/me.
//
// A 404 means the profile has not been created yet, unless the detail is the router's generic
// "Not Found", which means the endpoint itself is missing.
func (a *APIService) MyArtistProfile(ctx context.Context) (ProfileResult, error) {
	resp, err := a.Do(ctx, http.MethodGet, "/api/artists/me", nil, nil)
	if err != nil {
		return ProfileResult{}, err
	}

	if resp.StatusCode == http.StatusNotFound {
		if parseDetail(resp.Body) == routeNotFound {
			return ProfileResult{}, fmt.Errorf("%w: /api/artists/me", shared.ErrRouteNotFound)
		}
		return ProfileResult{State: ProfileMissing}, nil
	}
	if err := resp.Err(); err != nil {
		return ProfileResult{}, err
	}

	var artist models.Artist
	if err := resp.Decode(&artist); err != nil {
		return ProfileResult{}, err
	}
	return ProfileResult{State: ProfileExists, Artist: &artist}, nil
}

// CreateArtist sends POST /api/artists.
func (a *APIService) CreateArtist(ctx context.Context, in models.ArtistInput) (*models.Artist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var artist models.Artist
	if err := a.doJSON(ctx, http.MethodPost, "/api/artists", in, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// UpdateArtist sends PUT /api/artists/{id}.
func (a *APIService) UpdateArtist(ctx context.Context, artistID int, in models.ArtistInput) (*models.Artist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var artist models.Artist
	if err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/artists/%d", artistID), in, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ListBookings fetches GET /api/bookings for the signed-in user.
func (a *APIService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := a.doJSON(ctx, http.MethodGet, "/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking sends POST /api/bookings.
func (a *APIService) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var booking models.Booking
	if err := a.doJSON(ctx, http.MethodPost, "/api/bookings", in, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus sends PATCH /api/bookings/{id}.
func (a *APIService) UpdateBookingStatus(ctx context.Context, bookingID int, status models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	err := a.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", bookingID), models.StatusUpdate{Status: status}, &booking)
	if StatusOf(err) == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d: %s", shared.ErrBookingNotFound, bookingID, DetailOf(err))
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ArtistReviews fetches GET /api/reviews/artist/{id}.
func (a *APIService) ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := a.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/artist/%d", artistID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview sends POST /api/reviews.
func (a *APIService) CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var review models.Review
	if err := a.doJSON(ctx, http.MethodPost, "/api/reviews", in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ListMessages fetches GET /api/messages.
func (a *APIService) ListMessages(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	if err := a.doJSON(ctx, http.MethodGet, "/api/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends POST /api/messages.
func (a *APIService) SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var msg models.Message
	if err := a.doJSON(ctx, http.MethodPost, "/api/messages", in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateOrganizer sends POST /api/organizers.
func (a *APIService) CreateOrganizer(ctx context.Context, in models.OrganizerInput) (*models.Organizer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var org models.Organizer
	if err := a.doJSON(ctx, http.MethodPost, "/api/organizers", in, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// GetOrganizer fetches GET /api/organizers/{id}.
func (a *APIService) GetOrganizer(ctx context.Context, organizerID int) (*models.Organizer, error) {
	var org models.Organizer
	if err := a.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/organizers/%d", organizerID), nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

var _ Marketplace = (*APIService)(nil)

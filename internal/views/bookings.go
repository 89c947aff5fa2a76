package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
)

// FilterAll shows every booking.
const FilterAll = "all"

// ParseBookingFilter accepts "all" or a booking status.
func ParseBookingFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == FilterAll {
		return FilterAll, nil
	}
	st, err := models.ParseBookingStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	return string(st), nil
}

// FilterBookings returns the bookings with status, keeping their order. "all" returns everything.
func FilterBookings(bookings []models.Booking, status string) []models.Booking {
	if status == "" || status == FilterAll {
		return slices.Clone(bookings)
	}
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}

// AvailableActions lists the status changes role may request for b.
//
// Artists answer pending bookings; organizers may cancel pending or confirmed ones.
func AvailableActions(role models.Role, b models.Booking) []models.BookingStatus {
	switch role {
	case models.RoleArtist:
		if b.Status == models.StatusPending {
			return []models.BookingStatus{models.StatusConfirmed, models.StatusDeclined}
		}
	case models.RoleOrganizer:
		if b.Status == models.StatusPending || b.Status == models.StatusConfirmed {
			return []models.BookingStatus{models.StatusCancelled}
		}
	}
	return nil
}

// BookingCard is the rendered form of one booking.
type BookingCard struct {
	BookingID    int
	Title        string
	Created      string
	Status       models.BookingStatus
	StatusLabel  string
	Counterparty string
	Price        string
	Requirements string
	Deadline     string
	Actions      []models.BookingStatus
}

// BookingCardFor builds the card for b as seen by role.
func BookingCardFor(b models.Booking, role models.Role, prices *shared.PriceFormatter) BookingCard {
	card := BookingCard{
		BookingID:    b.BookingID,
		Title:        fmt.Sprintf("Booking #%d", b.BookingID),
		Created:      shared.FormatDateTime(b.CreatedAt.Time),
		Status:       b.Status,
		StatusLabel:  b.Status.Label(),
		Requirements: strings.TrimSpace(b.TechnicalRequirements),
		Actions:      AvailableActions(role, b),
	}

	if role == models.RoleOrganizer {
		card.Counterparty = fmt.Sprintf("Artist #%d", b.ArtistID)
	} else {
		card.Counterparty = fmt.Sprintf("Organizer #%d", b.OrganizerID)
	}
	if b.ProposedPrice != nil && *b.ProposedPrice > 0 {
		card.Price = prices.Amount(*b.ProposedPrice)
	}
	if b.ResponseDeadline != nil && !b.ResponseDeadline.IsZero() {
		card.Deadline = shared.FormatDateTime(b.ResponseDeadline.Time)
	}
	return card
}

// BookingsModel is the booking list after the active filter.
type BookingsModel struct {
	State  State
	Filter string
	// All is the last full snapshot; Visible is All narrowed by Filter.
	All     []models.Booking
	Visible []models.Booking
	Cards   []BookingCard
	Err     error
}

// Bookings lists the signed-in user's bookings and requests status changes.
type Bookings struct {
	api     BookingSource
	session *session.Session
	prices  *shared.PriceFormatter
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model BookingsModel
}

// NewBookings creates an idle booking list filtered to "all".
func NewBookings(api BookingSource, sess *session.Session, prices *shared.PriceFormatter, logger *log.Logger) *Bookings {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Bookings{
		api:     api,
		session: sess,
		prices:  prices,
		logger:  logger,
		model:   BookingsModel{Filter: FilterAll},
	}
}

// Model returns a copy of the current view model.
func (v *Bookings) Model() BookingsModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

func (v *Bookings) role() models.Role {
	if v.session == nil {
		return ""
	}
	if u := v.session.User(); u != nil {
		return u.Role
	}
	return ""
}

// apply recomputes the visible subset. Callers hold mu.
func (v *Bookings) apply() {
	role := v.role()
	v.model.Visible = FilterBookings(v.model.All, v.model.Filter)
	v.model.Cards = make([]BookingCard, 0, len(v.model.Visible))
	for _, b := range v.model.Visible {
		v.model.Cards = append(v.model.Cards, BookingCardFor(b, role, v.prices))
	}
}

// Load fetches the full collection and re-applies the active filter.
func (v *Bookings) Load(ctx context.Context) (BookingsModel, error) {
	ctx, tk := v.tracker.Begin(ctx)
	defer tk.Done()

	v.mu.Lock()
	prev := v.model.State
	v.model.State = StateLoading
	v.mu.Unlock()

	bookings, err := v.api.ListBookings(ctx)
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
			v.logger.Error("failed to load bookings", "error", err)
			v.model.State = StateError
			v.model.Err = fmt.Errorf("failed to load bookings: %w", err)
			return
		}
		v.model.State = StateLoaded
		v.model.Err = nil
		v.model.All = bookings
		v.apply()
	})
	if commitErr != nil {
		return v.Model(), commitErr
	}

	m := v.Model()
	return m, m.Err
}

// Filter narrows the last snapshot locally.
func (v *Bookings) Filter(status string) (BookingsModel, error) {
	filter, err := ParseBookingFilter(status)
	if err != nil {
		return v.Model(), err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.model.Filter = filter
	v.apply()
	return v.model, nil
}

// Transition requests a status change, then refetches the whole collection.
//
// Only changes listed by [AvailableActions] for the booking in the last snapshot are sent.
func (v *Bookings) Transition(ctx context.Context, bookingID int, status models.BookingStatus) (BookingsModel, error) {
	v.mu.RLock()
	idx := slices.IndexFunc(v.model.All, func(b models.Booking) bool { return b.BookingID == bookingID })
	var booking models.Booking
	if idx >= 0 {
		booking = v.model.All[idx]
	}
	v.mu.RUnlock()

	if idx < 0 {
		return v.Model(), fmt.Errorf("%w: %d", shared.ErrBookingNotFound, bookingID)
	}
	if !slices.Contains(AvailableActions(v.role(), booking), status) {
		return v.Model(), fmt.Errorf("%w: booking #%d is %s", shared.ErrInvalidTransition, bookingID, booking.Status)
	}

	if _, err := v.api.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		v.logger.Error("failed to update booking", "booking_id", bookingID, "status", status, "error", err)
		return v.Model(), fmt.Errorf("failed to update booking #%d: %w", bookingID, err)
	}
	v.logger.Info("booking updated", "booking_id", bookingID, "status", status)

	return v.Load(ctx)
}

package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
)

// MessageCard is the rendered form of one message.
type MessageCard struct {
	MessageID int
	Outgoing  bool
	Peer      string
	Content   string
	SentAt    string
	Unread    bool
}

// MessagesModel is the inbox plus the recipient handed over by the previous page.
type MessagesModel struct {
	State       State
	RecipientID int
	Messages    []models.Message
	Cards       []MessageCard
	Err         error
}

// Messages lists and sends direct messages.
type Messages struct {
	api     MessageSource
	session *session.Session
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model MessagesModel
}

// NewMessages creates an idle inbox.
func NewMessages(api MessageSource, sess *session.Session, logger *log.Logger) *Messages {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Messages{api: api, session: sess, logger: logger}
}

// Model returns a copy of the current view model.
func (v *Messages) Model() MessagesModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// Open consumes the recipient hand-off, if any, and loads the inbox.
func (v *Messages) Open(ctx context.Context) (MessagesModel, error) {
	id, ok, err := v.session.TakeHandoffID(session.HandoffMessageRecipient)
	if err != nil {
		v.logger.Warn("ignoring bad recipient hand-off", "error", err)
	}
	if ok {
		v.mu.Lock()
		v.model.RecipientID = id
		v.mu.Unlock()
	}
	return v.Load(ctx)
}

// Load fetches the inbox.
func (v *Messages) Load(ctx context.Context) (MessagesModel, error) {
	ctx, tk := v.tracker.Begin(ctx)
	defer tk.Done()

	v.mu.Lock()
	prev := v.model.State
	v.model.State = StateLoading
	v.mu.Unlock()

	msgs, err := v.api.ListMessages(ctx)
	if err = settle(&v.tracker, tk, err); halts(err) {
		rollback(&v.tracker, tk, err, func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.model.State = prev
		})
		return v.Model(), err
	}

	var self int
	if u := v.session.User(); u != nil {
		self = u.ID
	}

	commitErr := v.tracker.Commit(tk, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if err != nil {
			v.logger.Error("failed to load messages", "error", err)
			v.model.State = StateError
			v.model.Err = fmt.Errorf("failed to load messages: %w", err)
			return
		}

		cards := make([]MessageCard, 0, len(msgs))
		for _, m := range msgs {
			outgoing := self != 0 && m.SenderID == self
			peer := m.SenderID
			if outgoing {
				peer = m.ReceiverID
			}
			cards = append(cards, MessageCard{
				MessageID: m.MessageID,
				Outgoing:  outgoing,
				Peer:      fmt.Sprintf("User #%d", peer),
				Content:   m.Content,
				SentAt:    shared.FormatDateTime(m.SentAt.Time),
				Unread:    !m.IsRead && !outgoing,
			})
		}
		v.model.State = StateLoaded
		v.model.Err = nil
		v.model.Messages = msgs
		v.model.Cards = cards
	})
	if commitErr != nil {
		return v.Model(), commitErr
	}

	m := v.Model()
	return m, m.Err
}

// Send posts content to receiverID, or to the handed-over recipient when receiverID is 0, then reloads.
func (v *Messages) Send(ctx context.Context, receiverID int, content string) (MessagesModel, error) {
	if receiverID == 0 {
		receiverID = v.Model().RecipientID
	}
	if receiverID == 0 {
		return v.Model(), fmt.Errorf("%w: recipient", shared.ErrMissingArgument)
	}

	in := models.MessageInput{ReceiverID: receiverID, Content: strings.TrimSpace(content)}
	if err := in.Validate(); err != nil {
		return v.Model(), err
	}
	if _, err := v.api.SendMessage(ctx, in); err != nil {
		return v.Model(), fmt.Errorf("failed to send message: %w", err)
	}
	return v.Load(ctx)
}

// BookingForm holds the raw booking request inputs.
type BookingForm struct {
	ProposedPrice         string
	TechnicalRequirements string
	EventID               string
}

// Input converts the form. A price that is not a non-negative number is dropped.
func (f BookingForm) Input(artistID int) models.BookingInput {
	in := models.BookingInput{
		ArtistID:              artistID,
		TechnicalRequirements: strings.TrimSpace(f.TechnicalRequirements),
	}
	if v, ok := shared.ParseNonNegative(f.ProposedPrice); ok {
		in.ProposedPrice = &v
	}
	if id, err := strconv.Atoi(strings.TrimSpace(f.EventID)); err == nil && id > 0 {
		in.EventID = &id
	}
	return in
}

// BookingRequestModel is the booking request page.
type BookingRequestModel struct {
	State  State
	Artist *models.Artist
	Card   ArtistCard
	Err    error
}

// BookingRequest lets an organizer book the artist chosen on the detail page.
type BookingRequest struct {
	api     BookingRequestSource
	session *session.Session
	prices  *shared.PriceFormatter
	logger  *log.Logger

	mu    sync.RWMutex
	model BookingRequestModel
}

// NewBookingRequest creates an idle booking request page.
func NewBookingRequest(api BookingRequestSource, sess *session.Session, prices *shared.PriceFormatter, logger *log.Logger) *BookingRequest {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BookingRequest{api: api, session: sess, prices: prices, logger: logger}
}

// Model returns a copy of the current view model.
func (v *BookingRequest) Model() BookingRequestModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// Open loads the artist named by the hand-off, or artistID when no hand-off exists.
func (v *BookingRequest) Open(ctx context.Context, artistID int) (BookingRequestModel, error) {
	if !v.session.HasRole(models.RoleOrganizer) {
		return v.Model(), fmt.Errorf("%w: only organizers can create bookings", shared.ErrForbidden)
	}

	id, ok, err := v.session.TakeHandoffID(session.HandoffSelectedArtist)
	if err != nil {
		return v.Model(), err
	}
	if ok {
		artistID = id
	}
	if artistID == 0 {
		return v.Model(), fmt.Errorf("%w: artist", shared.ErrMissingArgument)
	}

	artist, err := v.api.GetArtist(ctx, artistID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.model = BookingRequestModel{State: StateError, Err: err}
		return v.model, err
	}
	v.model = BookingRequestModel{State: StateLoaded, Artist: artist, Card: CardFor(*artist, v.prices)}
	return v.model, nil
}

// Submit sends the booking for the opened artist and returns to the organizer dashboard.
func (v *BookingRequest) Submit(ctx context.Context, form BookingForm) (*models.Booking, error) {
	artist := v.Model().Artist
	if artist == nil {
		return nil, fmt.Errorf("%w: no artist selected", shared.ErrMissingArgument)
	}

	in := form.Input(artist.ArtistID)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	booking, err := v.api.CreateBooking(ctx, in)
	if err != nil {
		v.logger.Error("failed to create booking", "artist_id", artist.ArtistID, "error", err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	v.logger.Info("booking created", "booking_id", booking.BookingID, "artist_id", artist.ArtistID)
	v.session.Navigate(session.PageOrganizerDashboard)
	return booking, nil
}

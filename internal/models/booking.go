package models

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a [Booking].
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusDeclined  BookingStatus = "declined"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusDeclined, StatusCancelled}

// ParseBookingStatus matches s case-insensitively against the known statuses.
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range BookingStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Label is the human readable form of the status.
func (s BookingStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusDeclined:
		return "Declined"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Booking is a request from an organizer to an artist.
type Booking struct {
	BookingID             int           `json:"booking_id"`
	EventID               *int          `json:"event_id"`
	ArtistID              int           `json:"artist_id"`
	OrganizerID           int           `json:"organizer_id"`
	Status                BookingStatus `json:"status"`
	ProposedPrice         *float64      `json:"proposed_price"`
	TechnicalRequirements string        `json:"technical_requirements,omitempty"`
	CreatedAt             Timestamp     `json:"created_at"`
	UpdatedAt             Timestamp     `json:"updated_at"`
	ResponseDeadline      *Timestamp    `json:"response_deadline"`
}

// BookingInput is the body of POST /api/bookings.
type BookingInput struct {
	ArtistID              int        `json:"artist_id" validate:"required,gt=0"`
	ProposedPrice         *float64   `json:"proposed_price,omitempty" validate:"omitempty,gte=0"`
	TechnicalRequirements string     `json:"technical_requirements,omitempty" validate:"max=2000"`
	EventID               *int       `json:"event_id,omitempty"`
	ResponseDeadline      *Timestamp `json:"response_deadline,omitempty"`
}

func (in BookingInput) Validate() error { return validateStruct(in) }

// StatusUpdate is the body of PATCH /api/bookings/{id}.
type StatusUpdate struct {
	Status BookingStatus `json:"status"`
}

package models

import (
	"fmt"

	"github.com/desertthunder/gigx/internal/shared"
)

// Artist is a performer profile.
type Artist struct {
	ArtistID  int      `json:"artist_id"`
	UserID    int      `json:"user_id"`
	StageName string   `json:"stage_name"`
	Bio       string   `json:"bio,omitempty"`
	Genres    []string `json:"genres"`
	PriceMin  *float64 `json:"price_min"`
	PriceMax  *float64 `json:"price_max"`
	Rating    *float64 `json:"rating"`
}

// TopGenres returns at most n genres in their stored order.
func (a Artist) TopGenres(n int) []string {
	if len(a.Genres) <= n {
		return a.Genres
	}
	return a.Genres[:n]
}

// ArtistInput is the body of POST /api/artists and PUT /api/artists/{id}.
//
// Nil prices are sent as null.
type ArtistInput struct {
	StageName string   `json:"stage_name" validate:"required,min=2,max=100"`
	Bio       string   `json:"bio" validate:"max=2000"`
	Genres    []string `json:"genres"`
	PriceMin  *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax  *float64 `json:"price_max" validate:"omitempty,gte=0"`
}

func (in ArtistInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.PriceMin != nil && in.PriceMax != nil && *in.PriceMax < *in.PriceMin {
		return fmt.Errorf("%w: price_max must be greater than or equal to price_min", shared.ErrInvalidInput)
	}
	return nil
}

// Organizer is an event organizer profile.
type Organizer struct {
	OrganizerID int      `json:"organizer_id"`
	UserID      int      `json:"user_id"`
	CompanyName string   `json:"company_name"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Website     string   `json:"website,omitempty"`
	Rating      *float64 `json:"rating"`
}

// OrganizerInput is the body of POST /api/organizers.
type OrganizerInput struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Address     string `json:"address,omitempty"`
	Website     string `json:"website,omitempty"`
}

func (in OrganizerInput) Validate() error { return validateStruct(in) }

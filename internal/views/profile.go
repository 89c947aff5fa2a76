package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

// ProfileMode is what the profile section currently shows.
type ProfileMode int

const (
	// ModeCreate is an empty form for an artist without a profile.
	ModeCreate ProfileMode = iota
	ModeView
	ModeEdit
)

func (m ProfileMode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeView:
		return "view"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// ProfileForm holds the raw text of the profile inputs.
type ProfileForm struct {
	StageName string
	Genres    string
	Bio       string
	PriceMin  string
	PriceMax  string
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormFromArtist pre-populates the form with exactly the record's values.
func FormFromArtist(a *models.Artist) ProfileForm {
	if a == nil {
		return ProfileForm{}
	}
	return ProfileForm{
		StageName: a.StageName,
		Genres:    shared.JoinGenres(a.Genres),
		Bio:       a.Bio,
		PriceMin:  formatAmount(a.PriceMin),
		PriceMax:  formatAmount(a.PriceMax),
	}
}

// Input converts the form to a request body. Unparsable prices become nil.
func (f ProfileForm) Input() models.ArtistInput {
	return models.ArtistInput{
		StageName: strings.TrimSpace(f.StageName),
		Bio:       strings.TrimSpace(f.Bio),
		Genres:    shared.SplitGenres(f.Genres),
		PriceMin:  shared.ParseOptionalAmount(f.PriceMin),
		PriceMax:  shared.ParseOptionalAmount(f.PriceMax),
	}
}

// ProfileModel is the profile section.
type ProfileModel struct {
	State  State
	Mode   ProfileMode
	Artist *models.Artist
	Form   ProfileForm
	Err    error
}

// Profile loads and saves the signed-in artist's profile.
type Profile struct {
	api     ProfileSource
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model ProfileModel
}

// NewProfile creates an idle profile view.
func NewProfile(api ProfileSource, logger *log.Logger) *Profile {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Profile{api: api, logger: logger}
}

// Model returns a copy of the current view model.
func (p *Profile) Model() ProfileModel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// Artist returns the held profile, nil when none exists.
func (p *Profile) Artist() *models.Artist {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model.Artist
}

// Load fetches the profile. A missing profile opens create mode with a blank form.
func (p *Profile) Load(ctx context.Context) (ProfileModel, error) {
	ctx, tk := p.tracker.Begin(ctx)
	defer tk.Done()

	p.mu.Lock()
	prev := p.model.State
	p.model.State = StateLoading
	p.mu.Unlock()

	res, err := p.api.MyArtistProfile(ctx)
	if err = settle(&p.tracker, tk, err); halts(err) {
		rollback(&p.tracker, tk, err, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.model.State = prev
		})
		return p.Model(), err
	}

	commitErr := p.tracker.Commit(tk, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		switch {
		case err != nil:
			p.logger.Error("failed to load profile", "error", err)
			p.model.State = StateError
			p.model.Err = err
		case res.State == services.ProfileMissing:
			p.model = ProfileModel{State: StateLoaded, Mode: ModeCreate}
		default:
			p.model = ProfileModel{
				State:  StateLoaded,
				Mode:   ModeView,
				Artist: res.Artist,
				Form:   FormFromArtist(res.Artist),
			}
		}
	})
	if commitErr != nil {
		return p.Model(), commitErr
	}

	m := p.Model()
	return m, m.Err
}

// SetEditing opens or closes the edit form. Opening it resets the form to the held record.
//
// Without a held profile the view stays in create mode.
func (p *Profile) SetEditing(on bool) ProfileModel {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.model.Artist == nil:
		p.model.Mode = ModeCreate
		if on {
			p.model.Form = ProfileForm{}
		}
	case on:
		p.model.Mode = ModeEdit
		p.model.Form = FormFromArtist(p.model.Artist)
	default:
		p.model.Mode = ModeView
	}
	return p.model
}

// ToggleEdit flips between view and edit mode.
func (p *Profile) ToggleEdit() ProfileModel {
	p.mu.RLock()
	editing := p.model.Mode != ModeView
	p.mu.RUnlock()
	return p.SetEditing(!editing)
}

// Save validates form and creates or updates the profile. The server's detail is surfaced on failure.
func (p *Profile) Save(ctx context.Context, form ProfileForm) (ProfileModel, error) {
	in := form.Input()
	if err := in.Validate(); err != nil {
		p.mu.Lock()
		p.model.Form = form
		p.model.Err = err
		p.mu.Unlock()
		return p.Model(), err
	}

	ctx, tk := p.tracker.Begin(ctx)
	defer tk.Done()

	held := p.Artist()

	var (
		saved *models.Artist
		err   error
	)
	if held != nil {
		saved, err = p.api.UpdateArtist(ctx, held.ArtistID, in)
	} else {
		saved, err = p.api.CreateArtist(ctx, in)
	}
	if err = settle(&p.tracker, tk, err); halts(err) {
		return p.Model(), err
	}

	commitErr := p.tracker.Commit(tk, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		if err != nil {
			p.logger.Error("failed to save profile", "error", err)
			p.model.Form = form
			p.model.Err = fmt.Errorf("failed to save profile: %w", err)
			return
		}
		p.model = ProfileModel{
			State:  StateLoaded,
			Mode:   ModeView,
			Artist: saved,
			Form:   FormFromArtist(saved),
		}
	})
	if commitErr != nil {
		return p.Model(), commitErr
	}

	m := p.Model()
	return m, m.Err
}

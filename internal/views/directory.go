package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

// Layout is the presentation of the artist collection.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// ParseLayout defaults blank input to grid.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutGrid:
		return LayoutGrid, nil
	case LayoutList:
		return LayoutList, nil
	default:
		return "", fmt.Errorf("%w: layout must be grid or list, got %q", shared.ErrInvalidFlag, s)
	}
}

// maxCardGenres caps the genre tags shown on a card.
const maxCardGenres = 3

// SearchForm holds the raw text of the four search inputs.
type SearchForm struct {
	Search   string
	Genre    string
	PriceMin string
	PriceMax string
}

// ParseFilters keeps only usable fields: blank text is dropped, and price inputs that are not
// positive numbers are discarded rather than sent. A zero bound filters nothing.
func ParseFilters(form SearchForm) services.SearchFilters {
	f := services.SearchFilters{
		Search: strings.TrimSpace(form.Search),
		Genre:  strings.TrimSpace(form.Genre),
	}
	if v, ok := shared.ParseNonNegative(form.PriceMin); ok && v > 0 {
		f.PriceMin = &v
	}
	if v, ok := shared.ParseNonNegative(form.PriceMax); ok && v > 0 {
		f.PriceMax = &v
	}
	return f
}

// ArtistCard is the rendered summary of one artist.
type ArtistCard struct {
	ArtistID  int
	StageName string
	Rating    string
	Genres    []string
	Bio       string
	Price     string
}

// CardFor builds the card for a.
func CardFor(a models.Artist, prices *shared.PriceFormatter) ArtistCard {
	bio := strings.TrimSpace(a.Bio)
	if bio == "" {
		bio = shared.BioPlaceholder
	}

	genres := make([]string, 0, maxCardGenres)
	for _, g := range a.TopGenres(maxCardGenres) {
		genres = append(genres, strings.TrimSpace(g))
	}

	return ArtistCard{
		ArtistID:  a.ArtistID,
		StageName: a.StageName,
		Rating:    shared.FormatRating(a.Rating),
		Genres:    genres,
		Bio:       bio,
		Price:     prices.Range(a.PriceMin, a.PriceMax),
	}
}

// DirectoryModel is the artist listing.
type DirectoryModel struct {
	State   State
	Layout  Layout
	Filters services.SearchFilters
	Artists []models.Artist
	Cards   []ArtistCard
	// Empty is set when a search succeeded with no results.
	Empty bool
	Err   error
}

// Directory searches artists and renders them as cards.
type Directory struct {
	api     ArtistSearcher
	prices  *shared.PriceFormatter
	logger  *log.Logger
	tracker Tracker

	mu    sync.RWMutex
	model DirectoryModel
}

// NewDirectory creates an idle directory with the given layout.
func NewDirectory(api ArtistSearcher, prices *shared.PriceFormatter, layout Layout, logger *log.Logger) *Directory {
	if layout == "" {
		layout = LayoutGrid
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Directory{
		api:    api,
		prices: prices,
		logger: logger,
		model:  DirectoryModel{Layout: layout},
	}
}

// Model returns a copy of the current view model.
func (d *Directory) Model() DirectoryModel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model
}

// PerformSearch issues one fetch with the present filters and replaces the collection.
func (d *Directory) PerformSearch(ctx context.Context, form SearchForm) (DirectoryModel, error) {
	filters := ParseFilters(form)

	ctx, tk := d.tracker.Begin(ctx)
	defer tk.Done()

	d.mu.Lock()
	prev := d.model.State
	d.model.State = StateLoading
	d.model.Filters = filters
	d.mu.Unlock()

	artists, err := d.api.SearchArtists(ctx, filters)
	if err = settle(&d.tracker, tk, err); halts(err) {
		rollback(&d.tracker, tk, err, func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.model.State = prev
		})
		return d.Model(), err
	}

	commitErr := d.tracker.Commit(tk, func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if err != nil {
			d.logger.Error("artist search failed", "error", err)
			d.model.State = StateError
			d.model.Err = fmt.Errorf("failed to load artists: %w", err)
			d.model.Artists = nil
			d.model.Cards = nil
			d.model.Empty = false
			return
		}

		cards := make([]ArtistCard, 0, len(artists))
		for _, a := range artists {
			cards = append(cards, CardFor(a, d.prices))
		}
		d.model.State = StateLoaded
		d.model.Err = nil
		d.model.Artists = artists
		d.model.Cards = cards
		d.model.Empty = len(artists) == 0
	})
	if commitErr != nil {
		return d.Model(), commitErr
	}

	m := d.Model()
	return m, m.Err
}

// ToggleLayout switches between grid and list without refetching.
func (d *Directory) ToggleLayout(layout Layout) DirectoryModel {
	d.mu.Lock()
	defer d.mu.Unlock()
	if layout == "" {
		if d.model.Layout == LayoutGrid {
			layout = LayoutList
		} else {
			layout = LayoutGrid
		}
	}
	d.model.Layout = layout
	return d.model
}

package views

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
)

func TestParseFilters(t *testing.T) {
	t.Run("non-numeric and negative prices are absent", func(t *testing.T) {
		f := ParseFilters(SearchForm{PriceMin: "cheap", PriceMax: "-100"})
		if f.PriceMin != nil || f.PriceMax != nil {
			t.Errorf("expected no price filters, got %+v", f)
		}
		if q := f.Query(); q.Has("price_min") || q.Has("price_max") {
			t.Errorf("query should omit prices, got %s", q.Encode())
		}
	})

	t.Run("NaN and infinities are absent", func(t *testing.T) {
		for _, in := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf"} {
			f := ParseFilters(SearchForm{PriceMin: in, PriceMax: in})
			if f.PriceMin != nil || f.PriceMax != nil {
				t.Errorf("%q: expected no price filters, got %+v", in, f)
			}
			if q := f.Query().Encode(); q != "" {
				t.Errorf("%q: query should be empty, got %q", in, q)
			}
		}
	})

	t.Run("zero prices are absent", func(t *testing.T) {
		f := ParseFilters(SearchForm{PriceMin: "0", PriceMax: " 0.0 "})
		if f.PriceMin != nil || f.PriceMax != nil {
			t.Errorf("expected no price filters, got %+v", f)
		}
		if !f.IsEmpty() {
			t.Errorf("expected empty filters, got %s", f.Query().Encode())
		}
	})

	t.Run("blank text is absent", func(t *testing.T) {
		f := ParseFilters(SearchForm{Search: "   ", Genre: ""})
		if !f.IsEmpty() {
			t.Errorf("expected empty filters, got %s", f.Query().Encode())
		}
	})

	t.Run("valid values are trimmed and kept", func(t *testing.T) {
		f := ParseFilters(SearchForm{Search: " dj ", Genre: "house", PriceMin: "1500", PriceMax: " 5000 "})
		if f.Search != "dj" || f.Genre != "house" {
			t.Errorf("got %+v", f)
		}
		if f.PriceMin == nil || *f.PriceMin != 1500 || f.PriceMax == nil || *f.PriceMax != 5000 {
			t.Errorf("got prices %v %v", f.PriceMin, f.PriceMax)
		}
	})
}

func TestCardFor(t *testing.T) {
	prices := testPrices()

	t.Run("full record", func(t *testing.T) {
		a := models.Artist{
			ArtistID:  1,
			StageName: "The Band",
			Bio:       "Loud",
			Genres:    []string{"rock", " jazz", "pop", "folk"},
			PriceMin:  fptr(10000),
			PriceMax:  fptr(20000),
			Rating:    fptr(4.5),
		}
		card := CardFor(a, prices)
		if card.Rating != "4.5" {
			t.Errorf("rating = %q", card.Rating)
		}
		if len(card.Genres) != 3 || card.Genres[1] != "jazz" {
			t.Errorf("genres = %v", card.Genres)
		}
		if card.Price != "10,000 - 20,000 ₽" {
			t.Errorf("price = %q", card.Price)
		}
		if card.Bio != "Loud" {
			t.Errorf("bio = %q", card.Bio)
		}
	})

	t.Run("placeholders", func(t *testing.T) {
		card := CardFor(models.Artist{StageName: "Solo", PriceMin: fptr(100)}, prices)
		if card.Rating != "0.0" {
			t.Errorf("rating = %q", card.Rating)
		}
		if card.Bio != shared.BioPlaceholder {
			t.Errorf("bio = %q", card.Bio)
		}
		if card.Price != shared.PricePlaceholder {
			t.Errorf("price = %q", card.Price)
		}
	})
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("PerformSearch sends only present filters", func(t *testing.T) {
		f := &fakeMarket{artists: []models.Artist{{ArtistID: 1, StageName: "A"}}}
		d := NewDirectory(f, testPrices(), LayoutGrid, quietLogger())

		m, err := d.PerformSearch(ctx, SearchForm{Genre: "rock", PriceMin: "abc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.searches[0].Query().Encode(); got != "genre=rock" {
			t.Errorf("query = %q", got)
		}
		if m.State != StateLoaded || len(m.Cards) != 1 || m.Empty {
			t.Errorf("unexpected model %+v", m)
		}
	})

	t.Run("empty result shows empty state and no cards", func(t *testing.T) {
		f := &fakeMarket{artists: []models.Artist{}}
		d := NewDirectory(f, testPrices(), LayoutGrid, quietLogger())

		m, err := d.PerformSearch(ctx, SearchForm{Search: "nobody"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.Empty || len(m.Cards) != 0 {
			t.Errorf("expected empty state, got %+v", m)
		}
	})

	t.Run("results replace the previous collection", func(t *testing.T) {
		f := &fakeMarket{searchResults: map[int][]models.Artist{
			1: {{ArtistID: 1}, {ArtistID: 2}},
			2: {{ArtistID: 3}},
		}}
		d := NewDirectory(f, testPrices(), LayoutGrid, quietLogger())

		_, _ = d.PerformSearch(ctx, SearchForm{})
		m, _ := d.PerformSearch(ctx, SearchForm{Search: "x"})
		if len(m.Cards) != 1 || m.Cards[0].ArtistID != 3 {
			t.Errorf("expected only the new result, got %+v", m.Cards)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := &fakeMarket{searchErr: errors.New("down")}
		d := NewDirectory(f, testPrices(), LayoutGrid, quietLogger())

		m, err := d.PerformSearch(ctx, SearchForm{})
		if err == nil || m.State != StateError || m.Cards != nil {
			t.Errorf("expected error state, got %+v, %v", m, err)
		}
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		gate := make(chan struct{})
		f := &fakeMarket{
			searchGates: map[int]chan struct{}{1: gate},
			searchResults: map[int][]models.Artist{
				1: {{ArtistID: 1, StageName: "old"}},
				2: {{ArtistID: 2, StageName: "new"}},
			},
		}
		d := NewDirectory(f, testPrices(), LayoutGrid, quietLogger())

		done := make(chan error, 1)
		go func() {
			_, err := d.PerformSearch(ctx, SearchForm{Search: "old"})
			done <- err
		}()
		waitFor(t, func() bool { return f.searchCount() == 1 })

		if _, err := d.PerformSearch(ctx, SearchForm{Search: "new"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(gate)

		if err := <-done; !IsSuperseded(err) {
			t.Errorf("expected superseded, got %v", err)
		}
		m := d.Model()
		if len(m.Cards) != 1 || m.Cards[0].StageName != "new" {
			t.Errorf("stale result leaked into the model: %+v", m.Cards)
		}
	})

	t.Run("ToggleLayout does not refetch", func(t *testing.T) {
		f := &fakeMarket{}
		d := NewDirectory(f, testPrices(), "", quietLogger())
		if d.Model().Layout != LayoutGrid {
			t.Fatalf("default layout should be grid")
		}
		if m := d.ToggleLayout(LayoutList); m.Layout != LayoutList {
			t.Errorf("layout = %s", m.Layout)
		}
		if m := d.ToggleLayout(""); m.Layout != LayoutGrid {
			t.Errorf("toggle should flip back, got %s", m.Layout)
		}
		if f.searchCount() != 0 {
			t.Error("layout change must not fetch")
		}
	})
}

func TestParseLayout(t *testing.T) {
	if l, err := ParseLayout(" LIST "); err != nil || l != LayoutList {
		t.Errorf("got %v, %v", l, err)
	}
	if l, _ := ParseLayout(""); l != LayoutGrid {
		t.Errorf("blank should be grid, got %v", l)
	}
	if _, err := ParseLayout("masonry"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

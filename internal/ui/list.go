package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/views"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = bookingItem{}
)

// artistItem wraps [views.ArtistCard] to implement [list.Item].
type artistItem struct {
	card views.ArtistCard
}

func (i artistItem) FilterValue() string { return i.card.StageName }
func (i artistItem) Title() string {
	return fmt.Sprintf("%s  ★ %s", i.card.StageName, i.card.Rating)
}
func (i artistItem) Description() string {
	desc := i.card.Price
	if len(i.card.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", strings.Join(i.card.Genres, ", "), desc)
	}
	return desc
}

// bookingItem wraps [views.BookingCard] to implement [list.Item].
type bookingItem struct {
	card views.BookingCard
}

func (i bookingItem) FilterValue() string { return i.card.Title }
func (i bookingItem) Title() string {
	return fmt.Sprintf("%s  [%s]", i.card.Title, i.card.StatusLabel)
}
func (i bookingItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.card.Counterparty, i.card.Created)
	if i.card.Price != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.card.Price)
	}
	return desc
}

func artistItems(cards []views.ArtistCard) []list.Item {
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = artistItem{card: c}
	}
	return items
}

func bookingItems(cards []views.BookingCard) []list.Item {
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = bookingItem{card: c}
	}
	return items
}

// newList builds a list without its own quit and filter keys, which the screens handle.
func newList(title string, showDescription bool) list.Model {
	l := list.New(nil, newDelegate(showDescription), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// newDelegate shows descriptions for the grid layout and hides them for the compact list.
func newDelegate(showDescription bool) list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = showDescription
	return delegate
}

// reviewLines renders review cards with star glyphs.
func reviewLines(cards []views.ReviewCard) string {
	return formatter.RenderReviews(cards)
}

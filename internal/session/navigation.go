package session

import "github.com/desertthunder/gigx/internal/models"

// Page names a navigation target.
type Page string

const (
	PageEntry              Page = "entry"
	PageArtists            Page = "artists"
	PageArtistDashboard    Page = "dashboard-artist"
	PageOrganizerDashboard Page = "dashboard-organizer"
	PageDashboard          Page = "dashboard"
	PageMessages           Page = "messages"
	PageBookingRequest     Page = "create-booking"
)

// Navigator performs a page change. The CLI prints the next command; the TUI switches screens.
type Navigator interface {
	Navigate(page Page)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(Page)

func (f NavigatorFunc) Navigate(p Page) { f(p) }

// NopNavigator ignores every navigation.
type NopNavigator struct{}

func (NopNavigator) Navigate(Page) {}

// DestinationFor returns the landing page after login for role.
func DestinationFor(role models.Role) Page {
	switch role {
	case models.RoleArtist:
		return PageArtistDashboard
	case models.RoleOrganizer:
		return PageOrganizerDashboard
	default:
		return PageDashboard
	}
}

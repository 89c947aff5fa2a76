// Package ui implements an interactive terminal client using bubbletea's Elm architecture.
//
// The TUI is a set of screens over the same view controllers the CLI uses:
//  1. [LoginView] : Sign in, or browse as a guest
//  2. [DirectoryView] : Search artists, toggle grid/list layout, start a roster export
//  3. [DetailView] : Full profile with reviews; organizers can book or message
//  4. [DashboardView] : Artist profile, bookings, reviews and stats tabs
//  5. [ProfileFormView] : Create or edit the artist profile
//  6. [OrganizerView] : Organizer bookings with cancellation
//  7. [MessagesView] and [BookingRequestView] : Reached through hand-off from the detail screen
//  8. [ExportView] : Progress of a roster export
//
// Page changes requested by the session (login, logout, expiry) arrive through a [Navigator] channel, so a
// 401 anywhere lands on the login screen. Fetches run as [tea.Cmd] goroutines; results from superseded
// requests are dropped by the view controllers and ignored here.
//
// The (view) [Model] receives messages via the Msg union type.
package ui

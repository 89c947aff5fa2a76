// Package views holds the view controllers shared by the CLI and the TUI.
//
// Each controller fetches collection snapshots through a narrow slice of [services.Marketplace],
// keeps the last snapshot, and exposes a plain view model for a renderer. Local filters and layout
// switches never touch the network; saving or changing a status does, followed by a full refetch.
//
// Controllers:
//   - [Directory] : artist search and card listing
//   - [ArtistDetail] : single artist with reviews and star ratings
//   - [Profile] : the signed-in artist's profile, create or edit
//   - [Bookings] : booking list with local status filter and transitions
//   - [Reviews] : reviews of the held profile
//   - [Dashboard] : the artist dashboard tying profile, bookings, reviews and [Stats] together
//   - [Auth], [Messages], [BookingRequest] : account and organizer flows
//
// Every controller owns a [Tracker]. Starting a request cancels the previous one; a result that
// arrives after a newer request began is dropped with [shared.ErrSuperseded].
package views

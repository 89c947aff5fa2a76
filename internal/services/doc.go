// Package services talks to the gigx marketplace backend over HTTP.
//
// # APIService
//
// [APIService.Do] is the single transport path. Every request gets a JSON content type, the session's
// bearer token when one is held, and a fresh X-Request-ID; caller headers are merged last and win.
// One HTTP call is made per request with no retry. An optional [rate.Limiter] paces requests.
//
// A 401 from any call expires the [session.Session] (token and user cleared, navigation to the entry
// page) and returns [shared.ErrUnauthorized], so the caller stops handling that response.
//
// # Marketplace
//
// [Marketplace] is the typed endpoint surface consumed by the views. [APIService] implements it:
//   - Accounts: Login (OAuth2 password grant against /api/token), Register, CurrentUser, Bootstrap
//   - Artists: SearchArtists, GetArtist, MyArtistProfile, CreateArtist, UpdateArtist
//   - Bookings: ListBookings, CreateBooking, UpdateBookingStatus
//   - Reviews, messages and organizer profiles
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : network failure, undecodable body, or (via [APIError]) a non-success status
//   - [shared.ErrUnauthorized] : the backend rejected the session
//   - [shared.ErrInvalidCredentials] : login refused
//   - [shared.ErrInvalidInput] : client-side validation failed before any request
//
// [APIError] carries the status code and the backend's "detail" message.
package services

// Package models defines the marketplace entities exchanged with the gigx backend.
//
// The package contains two categories of types:
//
// 1. Records: snapshots returned by the API, decoded from JSON with the backend's wire names
//   - [User] : Account with a [Role]
//   - [Artist] : Performer profile with genres, price band and rating
//   - [Organizer] : Event organizer profile
//   - [Booking] : Booking request moving through [BookingStatus] values
//   - [Review] : Rating left on a completed booking
//   - [Message] : Direct message between two users
//
// 2. Inputs: request bodies validated client-side before they are sent
//   - [Registration], [ArtistInput], [OrganizerInput], [BookingInput], [ReviewInput], [MessageInput]
//
// Inputs implement [Validator]; validation failures wrap [shared.ErrInvalidInput].
package models

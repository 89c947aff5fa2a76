// Package session holds the signed-in state shared by the API service and every view.
//
// A [Session] keeps the bearer token and the current [models.User] in memory, persists the token
// and page hand-off values through a [Store], and moves the user between pages with a [Navigator].
// Session expiry (a 401 from the backend) clears everything and navigates to [PageEntry].
package session

// Package repositories implements SQLite persistence for the client's local state.
//
// The backend owns every marketplace record; the client only keeps what must survive between
// invocations: the session token and values handed from one page to the next.
//
// Key Implementations:
//   - [StateRepository] : key/value rows in the client_state table
package repositories

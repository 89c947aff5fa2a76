package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrUnauthorized       = fmt.Errorf("session expired or invalid")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrForbidden          = fmt.Errorf("access denied")
	ErrInvalidToken       = fmt.Errorf("malformed access token")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrArtistNotFound     = fmt.Errorf("artist not found")
	ErrBookingNotFound    = fmt.Errorf("booking not found")
	ErrRouteNotFound      = fmt.Errorf("endpoint not found")
	ErrDetailUnavailable  = fmt.Errorf("failed to load artist profile")

	// View errors
	ErrSuperseded        = fmt.Errorf("request superseded by a newer one")
	ErrInvalidTransition = fmt.Errorf("status transition not allowed")
	ErrNoProfile         = fmt.Errorf("artist profile not created")

	// Storage errors
	ErrStateNotFound = fmt.Errorf("state key not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

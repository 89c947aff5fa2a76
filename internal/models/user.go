package models

import "fmt"

// Role is the account type chosen at registration.
type Role string

const (
	RoleArtist    Role = "artist"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts the two self-service roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleArtist, RoleOrganizer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q: expected artist or organizer", s)
	}
}

// User is the account returned by /api/users/me and /api/register.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// Registration is the body of POST /api/register.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role" validate:"required,oneof=artist organizer"`
}

func (r Registration) Validate() error { return validateStruct(r) }

// Token is the body returned by POST /api/token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
)

// RegisterForm holds the raw registration inputs.
type RegisterForm struct {
	Email           string
	Password        string
	PasswordConfirm string
	Phone           string
	Role            string
}

// Auth signs users in, up and out.
type Auth struct {
	api     AccountSource
	session *session.Session
	logger  *log.Logger
}

// NewAuth creates the account flows over api.
func NewAuth(api AccountSource, sess *session.Session, logger *log.Logger) *Auth {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Auth{api: api, session: sess, logger: logger}
}

// Login stores the token, loads the user and navigates to the role's landing page.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.User, session.Page, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", shared.ErrMissingArgument)
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		a.logger.Warn("login failed", "email", email, "error", err)
		return nil, "", err
	}

	user, err := a.api.Bootstrap(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("signed in but failed to load user: %w", err)
	}
	if user == nil {
		return nil, "", shared.ErrNotAuthenticated
	}

	dest := session.DestinationFor(user.Role)
	a.logger.Info("signed in", "email", user.Email, "role", user.Role)
	a.session.Navigate(dest)
	return user, dest, nil
}

// Register checks the password confirmation before sending anything, then sends the user to log in.
func (a *Auth) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	if form.Password != form.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", shared.ErrInvalidInput)
	}

	role, err := models.ParseRole(strings.TrimSpace(form.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	user, err := a.api.Register(ctx, models.Registration{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Phone:    strings.TrimSpace(form.Phone),
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("registered", "email", user.Email, "role", user.Role)
	a.session.Navigate(session.PageEntry)
	return user, nil
}

// Logout clears the session and returns to the entry page.
func (a *Auth) Logout() error {
	return a.session.Logout()
}

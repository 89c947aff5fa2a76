package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in and stores the token in client storage.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	auth := views.NewAuth(r.api, r.session, r.logger)
	user, dest, err := auth.Login(ctx, cmd.String("email"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in as %s (%s)\n", user.Email, user.Role)
	if next, ok := nextCommands[dest]; ok {
		r.writePlain("Next: %s\n", next)
	}
	return nil
}

// AuthRegister creates an account. The user signs in separately.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	auth := views.NewAuth(r.api, r.session, r.logger)
	user, err := auth.Register(ctx, views.RegisterForm{
		Email:           cmd.String("email"),
		Password:        cmd.String("password"),
		PasswordConfirm: cmd.String("confirm"),
		Phone:           cmd.String("phone"),
		Role:            cmd.String("role"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Registered %s as %s\n", user.Email, user.Role)
	return r.writePlain("Sign in with: gigx auth login --email %s\n", user.Email)
}

// AuthLogout forgets the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := views.NewAuth(r.api, r.session, r.logger).Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

type authStatus struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
}

// AuthStatus reports whether a token is stored and when it lapses. It makes no network calls.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	status := authStatus{Authenticated: r.session.Authenticated()}
	if status.Authenticated {
		info, err := shared.InspectToken(r.session.Token())
		if err != nil {
			r.logger.Warn("stored token is not a JWT", "error", err)
		} else {
			now := time.Now()
			status.Subject = info.Subject
			status.Expired = info.Expired(now)
			if !info.ExpiresAt.IsZero() {
				status.ExpiresAt = &info.ExpiresAt
			}
		}
	}

	return r.writeResult(cmd, status, func() string {
		var b strings.Builder
		switch {
		case !status.Authenticated:
			b.WriteString("✗ Not signed in\n")
		case status.Expired:
			b.WriteString("✗ Stored token has expired\n")
		default:
			b.WriteString("✓ Signed in\n")
		}
		if status.Subject != "" {
			b.WriteString(fmt.Sprintf("Subject: %s\n", status.Subject))
		}
		if status.ExpiresAt != nil {
			b.WriteString(fmt.Sprintf("Expires: %s\n", shared.FormatDateTime(*status.ExpiresAt)))
		}
		return b.String()
	})
}

// AuthWhoami fetches the signed-in account.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user, err := r.signedIn(ctx)
	if err != nil {
		return err
	}
	return r.writeResult(cmd, user, func() string { return formatter.RenderUser(user) })
}

// AuthImport stores the bearer token from a browser "Copy as cURL" command.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var headers *shared.CurlHeaders
	var err error
	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return fmt.Errorf("failed to parse cURL command: %w", err)
	}

	token, err := headers.BearerToken()
	if err != nil {
		return err
	}
	if info, err := shared.InspectToken(token); err == nil && info.Expired(time.Now()) {
		return fmt.Errorf("%w: imported token expired at %s", shared.ErrInvalidToken, shared.FormatDateTime(info.ExpiresAt))
	}

	if err := r.connect(); err != nil {
		return err
	}
	if err := r.session.SetToken(token); err != nil {
		return err
	}

	user, err := r.api.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("%w: backend rejected the imported token: %w", shared.ErrAuthFailed, err)
	}
	r.logger.Info("token imported", "email", user.Email)
	return r.writePlain("✓ Signed in as %s (%s)\n", user.Email, user.Role)
}

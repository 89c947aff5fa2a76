package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

func (r *Runner) requireRole(ctx context.Context, role models.Role) (*models.User, error) {
	user, err := r.signedIn(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: this command is for %ss, you are signed in as %s", shared.ErrForbidden, role, user.Role)
	}
	return user, nil
}

// ProfileShow prints the signed-in artist's profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireRole(ctx, models.RoleArtist); err != nil {
		return err
	}

	m, err := views.NewProfile(r.api, r.logger).Load(ctx)
	if err != nil {
		return err
	}
	return r.writeResult(cmd, m.Artist, func() string { return formatter.RenderProfile(m, r.prices) })
}

// ProfileEdit creates the artist profile, or updates it with only the flags that were given.
func (r *Runner) ProfileEdit(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireRole(ctx, models.RoleArtist); err != nil {
		return err
	}

	profile := views.NewProfile(r.api, r.logger)
	m, err := profile.Load(ctx)
	if err != nil {
		return err
	}

	form := profile.SetEditing(true).Form
	for name, field := range map[string]*string{
		"stage-name": &form.StageName,
		"genres":     &form.Genres,
		"bio":        &form.Bio,
		"price-min":  &form.PriceMin,
		"price-max":  &form.PriceMax,
	} {
		if cmd.IsSet(name) {
			*field = cmd.String(name)
		}
	}

	saved, err := profile.Save(ctx, form)
	if err != nil {
		return err
	}

	verb := "Updated"
	if m.Mode == views.ModeCreate {
		verb = "Created"
	}
	r.writePlain("✓ %s profile for %s\n\n", verb, saved.Artist.StageName)
	return r.writePlain("%s", formatter.RenderProfile(saved, r.prices))
}

// ProfileOrganizer creates the signed-in organizer's company profile.
func (r *Runner) ProfileOrganizer(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireRole(ctx, models.RoleOrganizer); err != nil {
		return err
	}

	in := models.OrganizerInput{
		CompanyName: strings.TrimSpace(cmd.String("company")),
		Description: strings.TrimSpace(cmd.String("description")),
		Address:     strings.TrimSpace(cmd.String("address")),
		Website:     strings.TrimSpace(cmd.String("website")),
	}
	if err := in.Validate(); err != nil {
		return err
	}

	org, err := r.api.CreateOrganizer(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create organizer profile: %w", err)
	}
	return r.writeResult(cmd, org, func() string {
		return fmt.Sprintf("✓ Organizer profile #%d created for %s\n", org.OrganizerID, org.CompanyName)
	})
}

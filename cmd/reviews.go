package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

// ReviewsList prints reviews for --artist, or for the signed-in artist's own profile.
func (r *Runner) ReviewsList(ctx context.Context, cmd *cli.Command) error {
	var artist *models.Artist

	if raw := strings.TrimSpace(cmd.String("artist")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return fmt.Errorf("%w: --artist must be a positive number, got %q", shared.ErrInvalidFlag, raw)
		}
		if err := r.connect(); err != nil {
			return err
		}
		if artist, err = r.api.GetArtist(ctx, id); err != nil {
			return err
		}
	} else {
		if _, err := r.requireRole(ctx, models.RoleArtist); err != nil {
			return err
		}
		res, err := r.api.MyArtistProfile(ctx)
		if err != nil {
			return err
		}
		artist = res.Artist
	}

	m, err := views.NewReviews(r.api, r.logger).Load(ctx, artist)
	if err != nil {
		return err
	}

	return r.writeResult(cmd, m.Reviews, func() string {
		switch {
		case m.Skipped:
			return "No artist profile yet. Create one with: gigx profile edit --stage-name <name>\n"
		case m.Empty():
			return fmt.Sprintf("No reviews for %s yet\n", artist.StageName)
		}
		return fmt.Sprintf("Reviews for %s\n\n%s", artist.StageName, formatter.RenderReviews(m.Cards))
	})
}

// ReviewsCreate reviews the other party of a booking.
func (r *Runner) ReviewsCreate(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	review, err := views.NewReviews(r.api, r.logger).Submit(ctx, views.ReviewForm{
		BookingID:  int(cmd.Int("booking")),
		ReviewedID: int(cmd.Int("user")),
		Score:      cmd.String("rating"),
		Comment:    cmd.String("comment"),
	})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Review #%d saved for booking #%d\n", review.ReviewID, review.BookingID)
}

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

// loadBookings signs in, fetches the user's bookings and applies the --status filter.
func (r *Runner) loadBookings(ctx context.Context, cmd *cli.Command) (*views.Bookings, views.BookingsModel, error) {
	if _, err := r.signedIn(ctx); err != nil {
		return nil, views.BookingsModel{}, err
	}

	filter, err := views.ParseBookingFilter(cmd.String("status"))
	if err != nil {
		return nil, views.BookingsModel{}, err
	}

	v := views.NewBookings(r.api, r.session, r.prices, r.logger)
	if _, err := v.Load(ctx); err != nil {
		return nil, views.BookingsModel{}, err
	}
	m, err := v.Filter(filter)
	return v, m, err
}

// BookingsList prints the signed-in user's bookings.
func (r *Runner) BookingsList(ctx context.Context, cmd *cli.Command) error {
	_, m, err := r.loadBookings(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writeResult(cmd, m.Visible, func() string { return formatter.RenderBookings(m) })
}

func (r *Runner) transition(ctx context.Context, cmd *cli.Command, status models.BookingStatus) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	v, _, err := r.loadBookings(ctx, cmd)
	if err != nil {
		return err
	}
	m, err := v.Transition(ctx, id, status)
	if err != nil {
		return err
	}

	for _, b := range m.All {
		if b.BookingID == id {
			return r.writePlain("✓ Booking #%d is now %s\n", id, b.Status.Label())
		}
	}
	return r.writePlain("✓ Booking #%d set to %s\n", id, status)
}

// BookingsConfirm confirms a pending booking.
func (r *Runner) BookingsConfirm(ctx context.Context, cmd *cli.Command) error {
	return r.transition(ctx, cmd, models.StatusConfirmed)
}

// BookingsDecline declines a pending booking.
func (r *Runner) BookingsDecline(ctx context.Context, cmd *cli.Command) error {
	return r.transition(ctx, cmd, models.StatusDeclined)
}

// BookingsCancel cancels a pending or confirmed booking.
func (r *Runner) BookingsCancel(ctx context.Context, cmd *cli.Command) error {
	return r.transition(ctx, cmd, models.StatusCancelled)
}

// BookingsCreate requests a booking for --artist.
func (r *Runner) BookingsCreate(ctx context.Context, cmd *cli.Command) error {
	raw := strings.TrimSpace(cmd.String("artist"))
	artistID, err := strconv.Atoi(raw)
	if err != nil || artistID <= 0 {
		return fmt.Errorf("%w: --artist must be a positive number, got %q", shared.ErrInvalidFlag, raw)
	}
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	req := views.NewBookingRequest(r.api, r.session, r.prices, r.logger)
	m, err := req.Open(ctx, artistID)
	if err != nil {
		return err
	}
	booking, err := req.Submit(ctx, views.BookingForm{
		ProposedPrice:         cmd.String("price"),
		TechnicalRequirements: cmd.String("requirements"),
		EventID:               cmd.String("event"),
	})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Booking #%d requested for %s (%s)\n", booking.BookingID, m.Card.StageName, booking.Status)
}

// BookingsExport writes the filtered bookings to a file.
func (r *Runner) BookingsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	_, m, err := r.loadBookings(ctx, cmd)
	if err != nil {
		return err
	}

	path, err := formatter.WriteBookingsExport(format, cmd.String("output"), m.Visible, r.prices)
	if err != nil {
		return err
	}
	r.logger.Info("bookings exported", "path", path, "count", len(m.Visible))
	return r.writePlain("✓ Exported %d bookings to %s\n", len(m.Visible), path)
}

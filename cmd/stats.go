package main

import (
	"context"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

type dashboardStats struct {
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	TotalReviews      int     `json:"total_reviews"`
	Rating            float64 `json:"rating"`
}

// Stats loads the artist dashboard: profile, bookings, reviews and their summary.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	m, err := views.NewDashboard(r.api, r.session, r.prices, r.logger).Load(ctx)
	if err != nil {
		return err
	}

	s := dashboardStats{
		TotalBookings:     m.Stats.TotalBookings,
		ConfirmedBookings: m.Stats.ConfirmedBookings,
		TotalReviews:      m.Stats.TotalReviews,
		Rating:            m.Stats.Rating,
	}
	return r.writeResult(cmd, s, func() string { return formatter.RenderDashboard(m, r.prices) })
}

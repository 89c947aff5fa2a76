package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/tasks"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

func searchForm(cmd *cli.Command) views.SearchForm {
	return views.SearchForm{
		Search:   cmd.String("q"),
		Genre:    cmd.String("genre"),
		PriceMin: cmd.String("price-min"),
		PriceMax: cmd.String("price-max"),
	}
}

// ArtistsSearch lists the directory with the given filters. It works signed out.
func (r *Runner) ArtistsSearch(ctx context.Context, cmd *cli.Command) error {
	layout, err := r.layout(cmd)
	if err != nil {
		return err
	}
	if err := r.connect(); err != nil {
		return err
	}

	dir := views.NewDirectory(r.api, r.prices, layout, r.logger)
	m, err := dir.PerformSearch(ctx, searchForm(cmd))
	if err != nil {
		return err
	}
	return r.writeResult(cmd, m.Artists, func() string { return formatter.RenderDirectory(m) })
}

// ArtistsShow prints one artist with their reviews.
func (r *Runner) ArtistsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.connect(); err != nil {
		return err
	}

	detail := views.NewArtistDetail(r.api, r.session, r.prices, r.logger)
	m, err := detail.Show(ctx, id)
	if err != nil {
		return err
	}

	data := struct {
		Artist  any `json:"artist"`
		Reviews any `json:"reviews"`
	}{m.Artist, m.Reviews}
	return r.writeResult(cmd, data, func() string { return formatter.RenderDetail(m) })
}

// ArtistsBook opens the artist, hands it to the booking request and submits it.
func (r *Runner) ArtistsBook(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	detail := views.NewArtistDetail(r.api, r.session, r.prices, r.logger)
	if _, err := detail.Show(ctx, id); err != nil {
		return err
	}
	if err := detail.RequestBooking(); err != nil {
		return err
	}

	req := views.NewBookingRequest(r.api, r.session, r.prices, r.logger)
	m, err := req.Open(ctx, 0)
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

// ArtistsMessage sends a message to the artist's account.
func (r *Runner) ArtistsMessage(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	detail := views.NewArtistDetail(r.api, r.session, r.prices, r.logger)
	m, err := detail.Show(ctx, id)
	if err != nil {
		return err
	}
	if err := detail.MessageArtist(); err != nil {
		return err
	}

	inbox := views.NewMessages(r.api, r.session, r.logger)
	if _, err := inbox.Open(ctx); err != nil {
		return err
	}
	if _, err := inbox.Send(ctx, 0, cmd.String("content")); err != nil {
		return err
	}
	return r.writePlain("✓ Message sent to %s\n", m.Card.StageName)
}

// ArtistsExport writes every matching artist with their reviews, one file per artist, plus a manifest.
func (r *Runner) ArtistsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.connect(); err != nil {
		return err
	}

	opts := tasks.RosterExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate-limit"),
		Filters:    views.ParseFilters(searchForm(cmd)),
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.Workers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RateLimit
	}
	if opts.OutputDir == "" && r.config.Export.OutputDir != "" {
		opts.OutputDir = filepath.Join(r.config.Export.OutputDir, fmt.Sprintf("roster_export_%d", time.Now().Unix()))
	}

	quiet := cmd.Bool("json")
	progress := make(chan tasks.ProgressUpdate, 100)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if quiet {
				r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
				continue
			}
			if update.Total > 0 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewRosterEngine(r.api, r.prices, r.logger).Export(ctx, progress, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	if quiet {
		return r.writeJSON(tasks.NewManifest(result, format, opts.Filters, time.Now()), cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Export complete")
	r.writePlain("Artists:    %d\n", result.TotalArtists)
	r.writePlain("Exported:   %d\n", result.SuccessfulExports)
	r.writePlain("Failed:     %d\n", result.FailedExports)
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest:   %s\n", result.ManifestPath)
	}
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s: %v\n", res.StageName, res.Error)
		}
	}
	if result.Cancelled {
		r.writePlain("⚠ Export was cancelled before every artist was written\n")
	}
	return nil
}

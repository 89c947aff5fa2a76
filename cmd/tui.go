package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/tasks"
	"github.com/desertthunder/gigx/internal/ui"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

// tuiDeps builds the view controllers the TUI drives, all over one session and API client.
func (r *Runner) tuiDeps(nav *ui.Navigator) (ui.Deps, error) {
	layout, err := views.ParseLayout(r.config.Display.Layout)
	if err != nil {
		return ui.Deps{}, err
	}

	return ui.Deps{
		Session:        r.session,
		Navigator:      nav,
		API:            r.api,
		Auth:           views.NewAuth(r.api, r.session, r.logger),
		Directory:      views.NewDirectory(r.api, r.prices, layout, r.logger),
		Detail:         views.NewArtistDetail(r.api, r.session, r.prices, r.logger),
		Dashboard:      views.NewDashboard(r.api, r.session, r.prices, r.logger),
		Bookings:       views.NewBookings(r.api, r.session, r.prices, r.logger),
		Messages:       views.NewMessages(r.api, r.session, r.logger),
		BookingRequest: views.NewBookingRequest(r.api, r.session, r.prices, r.logger),
		Roster:         tasks.NewRosterEngine(r.api, r.prices, r.logger),
		Prices:         r.prices,
		ExportFormat:   "json",
		ExportDir:      r.config.Export.OutputDir,
		ExportWorkers:  r.config.Export.Workers,
		ExportRate:     r.config.Export.RateLimit,
		Logger:         r.logger,
	}, nil
}

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/gigx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	nav := ui.NewNavigator()
	r.forward = nav
	if err := r.connect(); err != nil {
		return err
	}

	deps, err := r.tuiDeps(nav)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui.NewModel(ctx, deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

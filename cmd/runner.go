package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/repositories"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

// nextCommands is the CLI equivalent of each navigation target.
var nextCommands = map[session.Page]string{
	session.PageEntry:              "gigx auth login",
	session.PageArtists:            "gigx artists search",
	session.PageArtistDashboard:    "gigx stats",
	session.PageOrganizerDashboard: "gigx bookings list",
	session.PageDashboard:          "gigx artists search",
	session.PageMessages:           "gigx messages list",
	session.PageBookingRequest:     "gigx artists book <id>",
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	prices     *shared.PriceFormatter

	store   session.Store
	db      *sql.DB
	session *session.Session
	api     *services.APIService
	pages   []session.Page
	// forward receives navigation instead of the CLI hints, as in the TUI.
	forward session.Navigator
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	// Store replaces the SQLite client storage, mainly for tests.
	Store session.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		prices:     shared.NewPriceFormatter(opts.Config.Display.Locale, opts.Config.Display.Currency),
		store:      opts.Store,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, artistsCommand, profileCommand, bookingsCommand,
		reviewsCommand, messagesCommand, statsCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger for the runner and everything it builds afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.api != nil {
		r.api.WithLogger(l)
	}
}

// Navigate records p and points the user at the matching command.
func (r *Runner) Navigate(p session.Page) {
	r.pages = append(r.pages, p)
	if r.forward != nil {
		r.forward.Navigate(p)
		return
	}
	if next, ok := nextCommands[p]; ok {
		r.logger.Info("next", "command", next)
	}
}

// connect opens client storage, restores the session and builds the API client. It is safe to call repeatedly.
func (r *Runner) connect() error {
	if r.api != nil {
		return nil
	}

	if r.store == nil {
		db, err := shared.OpenStorage(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open client storage: %w", err)
		}
		r.db = db
		r.store = repositories.NewStateRepository(db)
	}

	r.session = session.New(r.store, r, r.logger)
	if err := r.session.Load(); err != nil {
		return err
	}

	r.api = services.NewAPIService(r.config.API.BaseURL, r.httpClient, r.session).
		WithRateLimit(r.config.API.RequestsPerSecond).
		WithLogger(r.logger)
	return nil
}

// Close releases the client storage.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// signedIn connects and loads the current user. Signed-out sessions get [shared.ErrNotAuthenticated].
func (r *Runner) signedIn(ctx context.Context) (*models.User, error) {
	if err := r.connect(); err != nil {
		return nil, err
	}
	if !r.session.Authenticated() {
		r.Navigate(session.PageEntry)
		return nil, fmt.Errorf("%w: run gigx auth login first", shared.ErrNotAuthenticated)
	}

	user, err := r.api.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return user, nil
}

func (r *Runner) layout(cmd *cli.Command) (views.Layout, error) {
	if l := cmd.String("layout"); l != "" {
		return views.ParseLayout(l)
	}
	return views.ParseLayout(r.config.Display.Layout)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeResult prints data as JSON when --json is set and as text otherwise.
func (r *Runner) writeResult(cmd *cli.Command, data any, text func() string) error {
	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", text())
}

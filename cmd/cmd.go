// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/gigx/internal/shared"
	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func exportFlags(defaultFormat string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: csv, markdown, pdf or json",
			Value:   defaultFormat,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path",
		},
	}
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

// idArg reads a positive numeric argument.
func idArg(cmd *cli.Command, name string) (int, error) {
	raw := strings.TrimSpace(cmd.StringArg(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// setupCommand handles setup operations for the local database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize client storage and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml populated with defaults",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "show",
						Usage: "Print the effective configuration instead of writing a file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles account operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in, sign up and inspect the stored session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an artist or organizer account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.StringFlag{Name: "confirm", Usage: "Repeat the password", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "role", Usage: "artist or organizer", Value: "artist"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show whether a token is stored and when it expires",
				Flags:  outputFlags(),
				Action: r.AuthStatus,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in account",
				Flags:  outputFlags(),
				Action: r.AuthWhoami,
			},
			{
				Name:  "import",
				Usage: "Import a bearer token from a browser \"Copy as cURL\" command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// artistsCommand handles the artist directory.
func artistsCommand(r *Runner) *cli.Command {
	searchFlags := []cli.Flag{
		&cli.StringFlag{Name: "q", Aliases: []string{"search"}, Usage: "Free-text search"},
		&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre filter"},
		&cli.StringFlag{Name: "price-min", Usage: "Minimum price"},
		&cli.StringFlag{Name: "price-max", Usage: "Maximum price"},
	}

	return &cli.Command{
		Name:    "artists",
		Aliases: []string{"a"},
		Usage:   "Browse and book artists",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the artist directory",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "grid or list"},
				}, searchFlags...), outputFlags()...),
				Action: r.ArtistsSearch,
			},
			{
				Name:      "show",
				Usage:     "Show one artist with reviews",
				Arguments: idArgument(),
				Flags:     outputFlags(),
				Action:    r.ArtistsShow,
			},
			{
				Name:      "book",
				Usage:     "Request a booking (organizers)",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "price", Usage: "Proposed price"},
					&cli.StringFlag{Name: "requirements", Usage: "Technical requirements"},
					&cli.StringFlag{Name: "event", Usage: "Event id"},
				},
				Action: r.ArtistsBook,
			},
			{
				Name:      "message",
				Usage:     "Send a message to an artist (organizers)",
				Arguments: idArgument(),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Aliases: []string{"m"}, Usage: "Message text", Required: true},
				},
				Action: r.ArtistsMessage,
			},
			{
				Name:  "export",
				Usage: "Export matching artists with their reviews, one file per artist",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, pdf or json",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: roster_export_{timestamp})",
					},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent writers (1-10)"},
					&cli.FloatFlag{Name: "rate-limit", Usage: "Review fetches per second"},
				}, searchFlags...), outputFlags()...),
				Action: r.ArtistsExport,
			},
		},
	}
}

// profileCommand handles the signed-in user's profile.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage your artist or organizer profile",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show your artist profile",
				Flags:  outputFlags(),
				Action: r.ProfileShow,
			},
			{
				Name:  "edit",
				Usage: "Create or update your artist profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "stage-name", Usage: "Stage name"},
					&cli.StringFlag{Name: "genres", Usage: "Comma separated genres"},
					&cli.StringFlag{Name: "bio", Usage: "Biography"},
					&cli.StringFlag{Name: "price-min", Usage: "Minimum price"},
					&cli.StringFlag{Name: "price-max", Usage: "Maximum price"},
				},
				Action: r.ProfileEdit,
			},
			{
				Name:  "organizer",
				Usage: "Create your organizer profile",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "Company name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Description"},
					&cli.StringFlag{Name: "address", Usage: "Address"},
					&cli.StringFlag{Name: "website", Usage: "Website"},
				}, outputFlags()...),
				Action: r.ProfileOrganizer,
			},
		},
	}
}

// bookingsCommand handles booking requests.
func bookingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Aliases: []string{"b"},
		Usage:   "List and answer booking requests",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your bookings",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "all, pending, confirmed, declined or cancelled", Value: "all"},
				}, outputFlags()...),
				Action: r.BookingsList,
			},
			{
				Name:      "confirm",
				Usage:     "Confirm a pending booking (artists)",
				Arguments: idArgument(),
				Action:    r.BookingsConfirm,
			},
			{
				Name:      "decline",
				Usage:     "Decline a pending booking (artists)",
				Arguments: idArgument(),
				Action:    r.BookingsDecline,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel a booking (organizers)",
				Arguments: idArgument(),
				Action:    r.BookingsCancel,
			},
			{
				Name:  "create",
				Usage: "Request a booking for an artist (organizers)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "artist", Usage: "Artist id", Required: true},
					&cli.StringFlag{Name: "price", Usage: "Proposed price"},
					&cli.StringFlag{Name: "requirements", Usage: "Technical requirements"},
					&cli.StringFlag{Name: "event", Usage: "Event id"},
				},
				Action: r.BookingsCreate,
			},
			{
				Name:  "export",
				Usage: "Export your bookings",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Status filter", Value: "all"},
				}, exportFlags("csv")...),
				Action: r.BookingsExport,
			},
		},
	}
}

// reviewsCommand handles reviews.
func reviewsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reviews",
		Usage: "Read and write reviews",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List reviews for an artist, or your own",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "artist", Usage: "Artist id (default: your profile)"},
				}, outputFlags()...),
				Action: r.ReviewsList,
			},
			{
				Name:  "create",
				Usage: "Review the other side of a booking",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "booking", Usage: "Booking id", Required: true},
					&cli.IntFlag{Name: "user", Usage: "Reviewed user id", Required: true},
					&cli.StringFlag{Name: "rating", Usage: "Score from 1 to 5", Required: true},
					&cli.StringFlag{Name: "comment", Usage: "Comment"},
				},
				Action: r.ReviewsCreate,
			},
		},
	}
}

// messagesCommand handles direct messages.
func messagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "messages",
		Aliases: []string{"m"},
		Usage:   "Read and send direct messages",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show your inbox",
				Flags:  outputFlags(),
				Action: r.MessagesList,
			},
			{
				Name:  "send",
				Usage: "Send a message",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "to", Usage: "Recipient user id", Required: true},
					&cli.StringFlag{Name: "content", Aliases: []string{"m"}, Usage: "Message text", Required: true},
				},
				Action: r.MessagesSend,
			},
		},
	}
}

// statsCommand shows the artist dashboard.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "stats",
		Aliases: []string{"dashboard"},
		Usage:   "Show your artist dashboard",
		Flags:   outputFlags(),
		Action:  r.Stats,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the marketplace backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "docs",
				Usage: "Open the backend's API documentation in a browser",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Print the URL instead of opening it",
					},
				},
				Action: r.APIDocs,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}

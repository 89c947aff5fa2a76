// package tasks implements bulk operations over the marketplace API.
package tasks

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

// RosterSource is the part of the API the roster export reads.
type RosterSource interface {
	SearchArtists(ctx context.Context, filters services.SearchFilters) ([]models.Artist, error)
	ArtistReviews(ctx context.Context, artistID int) ([]models.Review, error)
}

// ArtistExportJob is one artist with its reviews, ready to be written.
type ArtistExportJob struct {
	Export *formatter.ArtistExport
}

// ArtistExportResult is the outcome for one artist.
type ArtistExportResult struct {
	ArtistID  int
	StageName string
	Success   bool
	Files     []string
	Error     error
}

// RosterExportResult summarizes a whole roster export.
type RosterExportResult struct {
	TotalArtists      int
	SuccessfulExports int
	FailedExports     int
	Results           []ArtistExportResult
	OutputDirectory   string
	ManifestPath      string
	// Cancelled is set when the context ended before every artist was handled.
	Cancelled bool
}

// ManifestEntry is one artist in export_manifest.json.
type ManifestEntry struct {
	ArtistID  int      `json:"artist_id"`
	StageName string   `json:"stage_name"`
	Status    string   `json:"status"`
	Files     []string `json:"files,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Manifest is the summary file written next to the exported artists.
type Manifest struct {
	Format            formatter.Format       `json:"format"`
	ExportedAt        time.Time              `json:"exported_at"`
	Filters           services.SearchFilters `json:"filters"`
	TotalArtists      int                    `json:"total_artists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	Artists           []ManifestEntry        `json:"artists"`
}

// NewManifest builds the manifest for result.
func NewManifest(result *RosterExportResult, format formatter.Format, filters services.SearchFilters, at time.Time) Manifest {
	m := Manifest{
		Format:            format,
		ExportedAt:        at,
		Filters:           filters,
		TotalArtists:      result.TotalArtists,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Artists:           make([]ManifestEntry, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		entry := ManifestEntry{ArtistID: r.ArtistID, StageName: r.StageName, Status: "success", Files: r.Files}
		if !r.Success {
			entry.Status = "failed"
			if r.Error != nil {
				entry.Error = r.Error.Error()
			}
		}
		m.Artists = append(m.Artists, entry)
	}
	return m
}

// RosterEngine exports artists and their reviews to files.
type RosterEngine struct {
	api    RosterSource
	prices *shared.PriceFormatter
	logger *log.Logger
	now    func() time.Time
}

// NewRosterEngine creates an engine reading from api.
func NewRosterEngine(api RosterSource, prices *shared.PriceFormatter, logger *log.Logger) *RosterEngine {
	if prices == nil {
		prices = shared.NewPriceFormatter("en", "")
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RosterEngine{api: api, prices: prices, logger: logger, now: time.Now}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *RosterEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Slug turns a stage name into a file name fragment. Letters of any script are kept.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "artist"
	}
	return s
}

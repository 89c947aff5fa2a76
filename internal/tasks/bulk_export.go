package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestFile     = "export_manifest.json"
)

// RosterExportOpts contains configuration for roster exports.
type RosterExportOpts struct {
	Format     formatter.Format       // Export format: json, csv, markdown, pdf
	OutputDir  string                 // Base output directory (default: roster_export_{epoch})
	NumWorkers int                    // Concurrent writers, clamped to 1..10 (default: 5)
	RateLimit  float64                // Review fetches per second (default: 5)
	Filters    services.SearchFilters // Directory filters
}

func (o *RosterExportOpts) normalize(now func() int64) {
	if o.Format == "" {
		o.Format = formatter.FormatJSON
	}
	if o.OutputDir == "" {
		o.OutputDir = fmt.Sprintf("roster_export_%d", now())
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = defaultWorkers
	}
	if o.NumWorkers > maxWorkers {
		o.NumWorkers = maxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRateLimit
	}
}

// Export writes every artist matching opts.Filters, with their reviews, to opts.OutputDir.
//
// Reviews are fetched sequentially at opts.RateLimit per second and written by a worker pool.
// Per-artist failures are recorded in the result and the manifest; the export carries on.
func (e *RosterEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, opts RosterExportOpts) (*RosterExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	opts.normalize(func() int64 { return e.now().Unix() })

	e.sendProgress(prog, fetchingArtistsUpdate())
	artists, err := e.api.SearchArtists(ctx, opts.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artists: %w", err)
	}
	e.sendProgress(prog, foundArtistsUpdate(len(artists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &RosterExportResult{
		TotalArtists:    len(artists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ArtistExportResult, 0, len(artists)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ArtistExportJob, len(artists))
	results := make(chan ArtistExportResult, len(artists))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, artist := range artists {
			if ctx.Err() != nil {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchingReviewsUpdate(i+1, len(artists), artist.StageName))
			reviews, err := e.api.ArtistReviews(ctx, artist.ArtistID)
			if err != nil {
				results <- ArtistExportResult{
					ArtistID:  artist.ArtistID,
					StageName: artist.StageName,
					Error:     fmt.Errorf("failed to fetch reviews: %w", err),
				}
				if errors.Is(err, shared.ErrUnauthorized) {
					e.logger.Warn("session expired during export, stopping")
					return
				}
				continue
			}

			jobs <- ArtistExportJob{Export: &formatter.ArtistExport{
				Artist:     artist,
				Reviews:    reviews,
				ExportedAt: e.now(),
			}}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(artists), res.StageName, len(res.Files)))
		} else {
			result.FailedExports++
			e.logger.Error("artist export failed", "artist_id", res.ArtistID, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(artists), res.StageName, res.Error))
		}
	}
	result.Cancelled = ctx.Err() != nil

	manifestPath := filepath.Join(opts.OutputDir, manifestFile)
	if err := writeManifest(NewManifest(result, opts.Format, opts.Filters, e.now()), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

// writeManifest writes m as indented JSON to path.
func writeManifest(m Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// exportWorker is a worker goroutine that writes artists from the jobs channel.
func (e *RosterEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ArtistExportJob,
	results chan<- ArtistExportResult,
	opts RosterExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportSingleArtist(job, opts)
	}
}

// ArtistFilename is the file name of one artist in a roster export.
func ArtistFilename(a models.Artist, format formatter.Format) string {
	return fmt.Sprintf("%d_%s.%s", a.ArtistID, Slug(a.StageName), format.Ext())
}

// exportSingleArtist renders and writes one artist file.
func (e *RosterEngine) exportSingleArtist(j ArtistExportJob, opts RosterExportOpts) ArtistExportResult {
	a := j.Export.Artist
	result := ArtistExportResult{
		ArtistID:  a.ArtistID,
		StageName: a.StageName,
		Files:     []string{},
	}

	data, err := formatter.ExportArtist(opts.Format, j.Export, e.prices)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	path := filepath.Join(opts.OutputDir, ArtistFilename(a, opts.Format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		result.Error = fmt.Errorf("%s write failed: %w", opts.Format, err)
		return result
	}

	result.Files = []string{path}
	result.Success = true
	return result
}

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/shared"
)

func quietEngine(src RosterSource) *RosterEngine {
	return NewRosterEngine(src, shared.NewPriceFormatter("en", "₽"), log.New(io.Discard))
}

func drain(ch chan ProgressUpdate) {
	go func() {
		for range ch {
		}
	}()
}

func readManifest(t *testing.T, path string) Manifest {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	return m
}

func TestRosterExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name    string
		format  formatter.Format
		artists int
		ext     string
	}{
		{"single artist json export", formatter.FormatJSON, 1, ".json"},
		{"multiple artists csv export", formatter.FormatCSV, 3, ".csv"},
		{"markdown export", formatter.FormatMarkdown, 2, ".md"},
		{"pdf export", formatter.FormatPDF, 2, ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			src := newRoster(tt.artists)
			engine := quietEngine(src)

			progressCh := make(chan ProgressUpdate, 100)
			drain(progressCh)

			result, err := engine.Export(context.Background(), progressCh, RosterExportOpts{
				Format:     tt.format,
				OutputDir:  tempDir,
				NumWorkers: 2,
				RateLimit:  100,
			})
			close(progressCh)

			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if result.SuccessfulExports != tt.artists || result.FailedExports != 0 {
				t.Errorf("successful = %d failed = %d", result.SuccessfulExports, result.FailedExports)
			}
			if len(result.Results) != tt.artists {
				t.Errorf("expected %d results, got %d", tt.artists, len(result.Results))
			}
			for _, res := range result.Results {
				if len(res.Files) != 1 || !strings.HasSuffix(res.Files[0], tt.ext) {
					t.Errorf("expected one %s file, got %v", tt.ext, res.Files)
					continue
				}
				if _, err := os.Stat(res.Files[0]); err != nil {
					t.Errorf("file not created: %v", err)
				}
			}

			if result.ManifestPath != filepath.Join(tempDir, "export_manifest.json") {
				t.Errorf("manifest path = %s", result.ManifestPath)
			}
			m := readManifest(t, result.ManifestPath)
			if m.Format != tt.format || m.TotalArtists != tt.artists || len(m.Artists) != tt.artists {
				t.Errorf("unexpected manifest %+v", m)
			}
		})
	}
}

func TestRosterExport_JSONContent(t *testing.T) {
	tempDir := t.TempDir()
	engine := quietEngine(newRoster(1))

	result, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: tempDir, RateLimit: 100})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "1_artist-1.json"))
	if err != nil {
		t.Fatalf("missing artist file: %v (results %+v)", err, result.Results)
	}
	var export formatter.ArtistExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if export.Artist.StageName != "Artist 1" || len(export.Reviews) != 1 {
		t.Errorf("unexpected export %+v", export)
	}
}

func TestRosterExport_PartialFailures(t *testing.T) {
	tempDir := t.TempDir()
	src := newRoster(3)
	src.reviewErrs[2] = errors.New("network timeout")
	engine := quietEngine(src)

	result, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: tempDir, RateLimit: 100})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.SuccessfulExports != 2 || result.FailedExports != 1 {
		t.Errorf("successful = %d failed = %d", result.SuccessfulExports, result.FailedExports)
	}

	m := readManifest(t, result.ManifestPath)
	var failed []ManifestEntry
	for _, a := range m.Artists {
		if a.Status == "failed" {
			failed = append(failed, a)
		}
	}
	if len(failed) != 1 || failed[0].ArtistID != 2 || !strings.Contains(failed[0].Error, "network timeout") {
		t.Errorf("unexpected failures %+v", failed)
	}
}

func TestRosterExport_SessionExpiredStops(t *testing.T) {
	tempDir := t.TempDir()
	src := newRoster(4)
	src.reviewErrs[2] = shared.ErrUnauthorized
	engine := quietEngine(src)

	result, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: tempDir, NumWorkers: 1, RateLimit: 100})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if src.calls() != 2 {
		t.Errorf("fetching should stop after the expired session, got %d calls", src.calls())
	}
	if result.SuccessfulExports != 1 || result.FailedExports != 1 {
		t.Errorf("successful = %d failed = %d", result.SuccessfulExports, result.FailedExports)
	}
}

func TestRosterExport_DirectoryError(t *testing.T) {
	src := &mockRoster{searchErr: shared.ErrAPIRequest}
	engine := quietEngine(src)

	_, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: t.TempDir()})
	if !errors.Is(err, shared.ErrAPIRequest) {
		t.Errorf("expected ErrAPIRequest, got %v", err)
	}
}

func TestRosterExport_NilSource(t *testing.T) {
	engine := NewRosterEngine(nil, nil, log.New(io.Discard))
	if _, err := engine.Export(context.Background(), nil, RosterExportOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestRosterExport_Filters(t *testing.T) {
	src := newRoster(1)
	engine := quietEngine(src)
	priceMin := 1000.0
	filters := services.SearchFilters{Genre: "jazz", PriceMin: &priceMin}

	result, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: t.TempDir(), RateLimit: 100, Filters: filters})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(src.filters) != 1 || src.filters[0].Genre != "jazz" {
		t.Errorf("filters not forwarded: %+v", src.filters)
	}
	m := readManifest(t, result.ManifestPath)
	if m.Filters.PriceMin == nil || *m.Filters.PriceMin != 1000 {
		t.Errorf("manifest filters = %+v", m.Filters)
	}
}

func TestRosterExport_ContextCancellation(t *testing.T) {
	engine := quietEngine(newRoster(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Export(ctx, nil, RosterExportOpts{OutputDir: t.TempDir(), NumWorkers: 1, RateLimit: 10})
	if err != nil {
		t.Fatalf("Export() should handle cancellation gracefully, got error: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}
	if !result.Cancelled {
		t.Error("result should be marked cancelled")
	}
}

func TestRosterExport_DefaultOptions(t *testing.T) {
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change to temp directory: %v", err)
	}
	defer os.Chdir(originalDir)

	engine := quietEngine(newRoster(1))
	result, err := engine.Export(context.Background(), nil, RosterExportOpts{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(result.OutputDirectory), "roster_export_") {
		t.Errorf("default output directory should start with 'roster_export_', got: %s", result.OutputDirectory)
	}
	if _, err := os.Stat(filepath.Join(result.OutputDirectory, "1_artist-1.json")); err != nil {
		t.Errorf("default format should be json: %v", err)
	}
}

func TestRosterExportOpts_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"default workers (0 -> 5)", 0, 5},
		{"negative workers (-1 -> 5)", -1, 5},
		{"max workers (15 -> 10)", 15, 10},
		{"valid workers (1)", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := RosterExportOpts{NumWorkers: tt.workers}
			opts.normalize(func() int64 { return 42 })
			if opts.NumWorkers != tt.want {
				t.Errorf("NumWorkers = %d, want %d", opts.NumWorkers, tt.want)
			}
			if opts.OutputDir != "roster_export_42" || opts.RateLimit != 5 || opts.Format != formatter.FormatJSON {
				t.Errorf("unexpected defaults %+v", opts)
			}
		})
	}
}

func TestRosterExport_RateLimiting(t *testing.T) {
	engine := quietEngine(newRoster(3))

	start := time.Now()
	result, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: t.TempDir(), NumWorkers: 3, RateLimit: 10})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.SuccessfulExports != 3 {
		t.Errorf("SuccessfulExports = %d, want 3", result.SuccessfulExports)
	}
	// Burst of one: the second and third fetch each wait ~100ms.
	if elapsed < 150*time.Millisecond {
		t.Errorf("export finished in %v, rate limit not applied", elapsed)
	}
}

func TestRosterExport_ProgressUpdates(t *testing.T) {
	engine := quietEngine(newRoster(2))
	progressCh := make(chan ProgressUpdate, 100)

	_, err := engine.Export(context.Background(), progressCh, RosterExportOpts{OutputDir: t.TempDir(), RateLimit: 100})
	close(progressCh)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	phases := map[Phase]int{}
	for u := range progressCh {
		phases[u.Phase]++
	}
	if phases[FetchArtists] != 2 || phases[FetchReviews] != 2 || phases[ExportArtist] != 2 || phases[WriteManifest] != 1 {
		t.Errorf("unexpected phase counts %v", phases)
	}
}

func TestRosterExport_InvalidOutputDirectory(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	engine := quietEngine(newRoster(1))
	_, err := engine.Export(context.Background(), nil, RosterExportOpts{OutputDir: filepath.Join(blocker, "sub")})
	if err == nil || !strings.Contains(err.Error(), "failed to create output directory") {
		t.Errorf("expected directory error, got %v", err)
	}
}

package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchArtists Phase = iota
	FetchReviews
	ExportArtist
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchArtists:
		return "fetch_artists"
	case FetchReviews:
		return "fetch_reviews"
	case ExportArtist:
		return "export_artist"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingArtistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtists,
		Step:    0,
		Total:   1,
		Message: "Fetching artist directory...",
	}
}

func foundArtistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d artists", count),
		Data:    count,
	}
}

func fetchingReviewsUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchReviews,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching reviews: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
		Data:    path,
	}
}

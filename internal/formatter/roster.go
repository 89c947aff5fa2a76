package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
)

// ArtistExport is one artist of a roster export with their reviews.
type ArtistExport struct {
	Artist     models.Artist   `json:"artist"`
	Reviews    []models.Review `json:"reviews"`
	ExportedAt time.Time       `json:"exported_at"`
}

// ExportArtistCSV writes the profile as a key/value block followed by one row per review.
func ExportArtistCSV(export *ArtistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	a := export.Artist
	rows := [][]string{
		{"Field", "Value"},
		{"ID", strconv.Itoa(a.ArtistID)},
		{"Stage name", a.StageName},
		{"Genres", shared.JoinGenres(a.Genres)},
		{"Price min", amount(a.PriceMin)},
		{"Price max", amount(a.PriceMax)},
		{"Rating", shared.FormatRating(a.Rating)},
		{"Bio", a.Bio},
		{},
		{"Review", "Booking", "Reviewer", "Rating", "Date", "Comment"},
	}
	for _, r := range export.Reviews {
		rows = append(rows, []string{
			strconv.Itoa(r.ReviewID),
			strconv.Itoa(r.BookingID),
			strconv.Itoa(r.ReviewerID),
			strconv.FormatFloat(r.RatingScore, 'f', -1, 64),
			shared.FormatDate(r.CreatedAt.Time),
			r.Comment,
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportArtistMarkdown renders the profile and its reviews.
func ExportArtistMarkdown(export *ArtistExport, prices *shared.PriceFormatter) ([]byte, error) {
	var buf bytes.Buffer
	a := export.Artist

	buf.WriteString(fmt.Sprintf("# %s\n\n", a.StageName))
	if bio := strings.TrimSpace(a.Bio); bio != "" {
		buf.WriteString(bio + "\n\n")
	}

	buf.WriteString(fmt.Sprintf("**Genres**: %s\n", shared.JoinGenres(a.Genres)))
	buf.WriteString(fmt.Sprintf("**Price**: %s\n", prices.Range(a.PriceMin, a.PriceMax)))
	buf.WriteString(fmt.Sprintf("**Rating**: %s %s\n\n", StarGlyphs(a.Rating), shared.FormatRating(a.Rating)))

	buf.WriteString(fmt.Sprintf("## Reviews (%d)\n\n", len(export.Reviews)))
	for i, r := range export.Reviews {
		comment := strings.TrimSpace(r.Comment)
		if comment == "" {
			comment = shared.CommentPlaceholder
		}
		score := r.RatingScore
		buf.WriteString(fmt.Sprintf("%d. %s User #%d (%s): %s\n",
			i+1, StarGlyphs(&score), r.ReviewerID, shared.FormatDate(r.CreatedAt.Time), comment))
	}

	return buf.Bytes(), nil
}

// ExportArtistPDF renders the profile and its reviews on A4 pages.
func ExportArtistPDF(export *ArtistExport, prices *shared.PriceFormatter) ([]byte, error) {
	a := export.Artist
	pdf, tr := newPDF(a.StageName)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr("Genres: "+shared.JoinGenres(a.Genres)))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr("Price: "+prices.Range(a.PriceMin, a.PriceMax)))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Rating: "+shared.FormatRating(a.Rating))
	pdf.Ln(10)

	if bio := strings.TrimSpace(a.Bio); bio != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr(bio), "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Reviews (%d)", len(export.Reviews)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range export.Reviews {
		comment := strings.TrimSpace(r.Comment)
		if comment == "" {
			comment = shared.CommentPlaceholder
		}
		line := fmt.Sprintf("%.1f/5  User #%d  %s: %s", r.RatingScore, r.ReviewerID, shared.FormatDate(r.CreatedAt.Time), comment)
		pdf.MultiCell(0, 6, tr(line), "", "", false)
	}

	return outputPDF(pdf)
}

// ExportArtist renders export in format.
func ExportArtist(format Format, export *ArtistExport, prices *shared.PriceFormatter) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportArtistCSV(export)
	case FormatMarkdown:
		return ExportArtistMarkdown(export, prices)
	case FormatPDF:
		return ExportArtistPDF(export, prices)
	case FormatJSON:
		if export.Reviews == nil {
			export.Reviews = []models.Review{}
		}
		return shared.MarshalJSON(export, true)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

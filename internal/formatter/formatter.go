// package formatter renders view models as terminal text and exports bookings and artist rosters
// to CSV, Markdown, PDF and JSON.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/phpdave11/gofpdf"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatJSON     Format = "json"
)

// Formats lists every supported export format.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatPDF, FormatJSON}

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: format must be csv, markdown, pdf or json, got %q", shared.ErrInvalidFlag, s)
	}
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optionalID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}

// ExportBookingsCSV writes one row per booking with columns: ID, Event, Artist, Organizer, Status, Price,
// Created, Deadline, Requirements
func ExportBookingsCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Event", "Artist", "Organizer", "Status", "Price", "Created", "Deadline", "Requirements"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, b := range bookings {
		deadline := ""
		if b.ResponseDeadline != nil {
			deadline = shared.FormatDateTime(b.ResponseDeadline.Time)
		}
		record := []string{
			strconv.Itoa(b.BookingID),
			optionalID(b.EventID),
			strconv.Itoa(b.ArtistID),
			strconv.Itoa(b.OrganizerID),
			string(b.Status),
			amount(b.ProposedPrice),
			shared.FormatDateTime(b.CreatedAt.Time),
			deadline,
			b.TechnicalRequirements,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportBookingsMarkdown renders the bookings as a titled list.
func ExportBookingsMarkdown(title string, bookings []models.Booking, prices *shared.PriceFormatter) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Bookings**: %d\n\n", len(bookings)))

	for _, b := range bookings {
		buf.WriteString(fmt.Sprintf("## Booking #%d\n\n", b.BookingID))
		buf.WriteString(fmt.Sprintf("- **Status**: %s\n", b.Status.Label()))
		buf.WriteString(fmt.Sprintf("- **Artist**: #%d\n", b.ArtistID))
		buf.WriteString(fmt.Sprintf("- **Organizer**: #%d\n", b.OrganizerID))
		if b.ProposedPrice != nil && *b.ProposedPrice > 0 {
			buf.WriteString(fmt.Sprintf("- **Price**: %s\n", prices.Amount(*b.ProposedPrice)))
		}
		buf.WriteString(fmt.Sprintf("- **Created**: %s\n", shared.FormatDateTime(b.CreatedAt.Time)))
		if req := strings.TrimSpace(b.TechnicalRequirements); req != "" {
			buf.WriteString(fmt.Sprintf("\n%s\n", req))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// newPDF starts an A4 document with a bold heading.
func newPDF(title string) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	return pdf, tr
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBookingsPDF renders one block per booking.
func ExportBookingsPDF(title string, bookings []models.Booking, prices *shared.PriceFormatter) ([]byte, error) {
	pdf, tr := newPDF(title)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Bookings: %d", len(bookings)))
	pdf.Ln(10)

	for _, b := range bookings {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Booking #%d - %s", b.BookingID, b.Status.Label()))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Artist #%d, Organizer #%d", b.ArtistID, b.OrganizerID))
		pdf.Ln(6)
		if b.ProposedPrice != nil && *b.ProposedPrice > 0 {
			pdf.Cell(0, 6, tr("Price: "+prices.Amount(*b.ProposedPrice)))
			pdf.Ln(6)
		}
		pdf.Cell(0, 6, "Created: "+shared.FormatDateTime(b.CreatedAt.Time))
		pdf.Ln(6)
		if req := strings.TrimSpace(b.TechnicalRequirements); req != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr(req), "", "", false)
		}
		pdf.Ln(4)
	}

	return outputPDF(pdf)
}

// ExportBookings renders bookings in format.
func ExportBookings(format Format, title string, bookings []models.Booking, prices *shared.PriceFormatter) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportBookingsCSV(bookings)
	case FormatMarkdown:
		return ExportBookingsMarkdown(title, bookings, prices)
	case FormatPDF:
		return ExportBookingsPDF(title, bookings, prices)
	case FormatJSON:
		if bookings == nil {
			bookings = []models.Booking{}
		}
		return shared.MarshalJSON(bookings, true)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteBookingsExport writes bookings to path, defaulting to bookings.{ext}.
func WriteBookingsExport(format Format, path string, bookings []models.Booking, prices *shared.PriceFormatter) (string, error) {
	if path == "" {
		path = "bookings." + format.Ext()
	}

	data, err := ExportBookings(format, "Bookings", bookings, prices)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

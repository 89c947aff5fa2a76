package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/views"
)

const (
	glyphFull  = "★"
	glyphHalf  = "⯪"
	glyphEmpty = "☆"

	rule = "═══════════════════════════════════════"
)

// Glyph is the terminal symbol for one star position.
func Glyph(s views.Star) string {
	switch s {
	case views.StarFull:
		return glyphFull
	case views.StarHalf:
		return glyphHalf
	default:
		return glyphEmpty
	}
}

// StarGlyphs renders a rating as five star symbols. A nil rating is five empty stars.
func StarGlyphs(rating *float64) string {
	var r float64
	if rating != nil {
		r = *rating
	}
	return RenderStars(views.Stars(r))
}

// RenderStars joins the glyphs of stars.
func RenderStars(stars [5]views.Star) string {
	var b strings.Builder
	for _, s := range stars {
		b.WriteString(Glyph(s))
	}
	return b.String()
}

func header(buf *bytes.Buffer, title string) {
	buf.WriteString(rule + "\n")
	buf.WriteString(title + "\n")
	buf.WriteString(rule + "\n")
}

func genreTags(genres []string) string {
	if len(genres) == 0 {
		return "-"
	}
	tags := make([]string, len(genres))
	for i, g := range genres {
		tags[i] = "[" + g + "]"
	}
	return strings.Join(tags, " ")
}

// RenderArtistCard renders one card as an indented block.
func RenderArtistCard(card views.ArtistCard) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s (#%d)  ★ %s\n", card.StageName, card.ArtistID, card.Rating))
	buf.WriteString(fmt.Sprintf("  %s\n", genreTags(card.Genres)))
	buf.WriteString(fmt.Sprintf("  %s\n", shared.Truncate(card.Bio, 100)))
	buf.WriteString(fmt.Sprintf("  %s\n", card.Price))
	return buf.String()
}

// RenderArtistRow renders one card on a single line.
func RenderArtistRow(card views.ArtistCard) string {
	return fmt.Sprintf("#%-5d %-24s ★ %-4s %-30s %s\n",
		card.ArtistID,
		shared.Truncate(card.StageName, 24),
		card.Rating,
		shared.Truncate(strings.Join(card.Genres, ", "), 30),
		card.Price,
	)
}

// RenderDirectory renders the artist listing in its layout, or the empty or error state.
func RenderDirectory(m views.DirectoryModel) string {
	var buf bytes.Buffer

	switch {
	case m.Err != nil:
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
		return buf.String()
	case m.Empty:
		buf.WriteString("No artists found. Try different filters.\n")
		return buf.String()
	}

	header(&buf, fmt.Sprintf("Artists (%d)", len(m.Cards)))
	for i, card := range m.Cards {
		if m.Layout == views.LayoutList {
			buf.WriteString(RenderArtistRow(card))
			continue
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(RenderArtistCard(card))
	}
	return buf.String()
}

// RenderReviewCard renders one review.
func RenderReviewCard(card views.ReviewCard) string {
	return fmt.Sprintf("%s %s  %s\n  %s\n", RenderStars(card.Stars), card.Author, card.Date, card.Comment)
}

// RenderReviews renders a review list with its empty state.
func RenderReviews(cards []views.ReviewCard) string {
	if len(cards) == 0 {
		return "No reviews yet.\n"
	}
	var buf bytes.Buffer
	for _, c := range cards {
		buf.WriteString(RenderReviewCard(c))
	}
	return buf.String()
}

// RenderDetail renders the full artist profile followed by reviews.
func RenderDetail(m views.DetailModel) string {
	var buf bytes.Buffer
	if m.Err != nil {
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
		return buf.String()
	}
	if m.Artist == nil {
		return ""
	}

	header(&buf, m.Artist.StageName)
	buf.WriteString(fmt.Sprintf("Rating: %s %s\n", StarGlyphs(m.Artist.Rating), m.Card.Rating))
	buf.WriteString(fmt.Sprintf("Genres: %s\n", genreTags(m.Genres)))
	buf.WriteString(fmt.Sprintf("Price:  %s\n\n", m.Card.Price))
	buf.WriteString(m.Card.Bio + "\n\n")

	buf.WriteString(fmt.Sprintf("Reviews (%d)\n", len(m.Reviews)))
	buf.WriteString(RenderReviews(m.Reviews))
	return buf.String()
}

// RenderProfile renders the profile section in its mode.
func RenderProfile(m views.ProfileModel, prices *shared.PriceFormatter) string {
	var buf bytes.Buffer
	switch {
	case m.Err != nil && m.Artist == nil && m.Mode != views.ModeCreate:
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
	case m.Mode == views.ModeCreate:
		buf.WriteString("No artist profile yet. Create one with: gigx profile edit --stage-name <name>\n")
	default:
		a := m.Artist
		buf.WriteString(fmt.Sprintf("Stage name: %s\n", a.StageName))
		buf.WriteString(fmt.Sprintf("Genres:     %s\n", shared.JoinGenres(a.Genres)))
		buf.WriteString(fmt.Sprintf("Price:      %s\n", prices.Range(a.PriceMin, a.PriceMax)))
		buf.WriteString(fmt.Sprintf("Rating:     %s %s\n", StarGlyphs(a.Rating), shared.FormatRating(a.Rating)))
		bio := strings.TrimSpace(a.Bio)
		if bio == "" {
			bio = shared.BioPlaceholder
		}
		buf.WriteString(fmt.Sprintf("Bio:        %s\n", bio))
	}
	return buf.String()
}

// RenderBookingCard renders one booking with its available actions.
func RenderBookingCard(card views.BookingCard) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s  [%s]  %s\n", card.Title, card.StatusLabel, card.Created))
	buf.WriteString(fmt.Sprintf("  %s", card.Counterparty))
	if card.Price != "" {
		buf.WriteString("  " + card.Price)
	}
	buf.WriteString("\n")
	if card.Deadline != "" {
		buf.WriteString(fmt.Sprintf("  Respond by %s\n", card.Deadline))
	}
	if card.Requirements != "" {
		buf.WriteString(fmt.Sprintf("  %s\n", shared.Truncate(card.Requirements, 120)))
	}
	if len(card.Actions) > 0 {
		actions := make([]string, len(card.Actions))
		for i, a := range card.Actions {
			actions[i] = string(a)
		}
		buf.WriteString(fmt.Sprintf("  Actions: %s\n", strings.Join(actions, ", ")))
	}
	return buf.String()
}

// RenderBookings renders the filtered booking list.
func RenderBookings(m views.BookingsModel) string {
	var buf bytes.Buffer
	if m.Err != nil {
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
		return buf.String()
	}

	header(&buf, fmt.Sprintf("Bookings: %s (%d of %d)", m.Filter, len(m.Visible), len(m.All)))
	if len(m.Cards) == 0 {
		buf.WriteString("No bookings.\n")
		return buf.String()
	}
	for _, c := range m.Cards {
		buf.WriteString(RenderBookingCard(c))
	}
	return buf.String()
}

// RenderStats renders the dashboard summary.
func RenderStats(s views.Stats) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Bookings:  %d\n", s.TotalBookings))
	buf.WriteString(fmt.Sprintf("Confirmed: %d\n", s.ConfirmedBookings))
	buf.WriteString(fmt.Sprintf("Reviews:   %d\n", s.TotalReviews))
	buf.WriteString(fmt.Sprintf("Rating:    %s\n", s.RatingText()))
	return buf.String()
}

// RenderDashboard renders every section of the artist dashboard.
func RenderDashboard(m views.DashboardModel, prices *shared.PriceFormatter) string {
	var buf bytes.Buffer
	if m.User != nil {
		header(&buf, fmt.Sprintf("Dashboard: %s", m.User.Email))
	}
	buf.WriteString(RenderStats(m.Stats))
	buf.WriteString("\nProfile\n")
	buf.WriteString(RenderProfile(m.Profile, prices))
	buf.WriteString("\n")
	buf.WriteString(RenderBookings(m.Bookings))
	buf.WriteString("\nReviews\n")
	switch {
	case m.Reviews.Skipped:
		buf.WriteString("Create a profile to receive reviews.\n")
	case m.Reviews.Err != nil:
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Reviews.Err))
	default:
		buf.WriteString(RenderReviews(m.Reviews.Cards))
	}
	return buf.String()
}

// RenderMessages renders the inbox.
func RenderMessages(m views.MessagesModel) string {
	var buf bytes.Buffer
	if m.Err != nil {
		buf.WriteString(fmt.Sprintf("Error: %v\n", m.Err))
		return buf.String()
	}
	if len(m.Cards) == 0 {
		buf.WriteString("No messages.\n")
		return buf.String()
	}
	for _, c := range m.Cards {
		dir := "from"
		if c.Outgoing {
			dir = "to"
		}
		marker := " "
		if c.Unread {
			marker = "*"
		}
		buf.WriteString(fmt.Sprintf("%s %s  %s %s: %s\n", marker, c.SentAt, dir, c.Peer, c.Content))
	}
	return buf.String()
}

// RenderUser renders the signed-in account.
func RenderUser(u *models.User) string {
	if u == nil {
		return "Not signed in.\n"
	}
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("ID:     %d\n", u.ID))
	buf.WriteString(fmt.Sprintf("Email:  %s\n", u.Email))
	buf.WriteString(fmt.Sprintf("Role:   %s\n", u.Role))
	if u.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone:  %s\n", u.Phone))
	}
	buf.WriteString(fmt.Sprintf("Joined: %s\n", shared.FormatDate(u.CreatedAt.Time)))
	return buf.String()
}

package shared

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	PricePlaceholder   = "Price not specified"
	BioPlaceholder     = "No description"
	CommentPlaceholder = "No comment"
	DateLayout         = "2006-01-02"
	DateTimeLayout     = "2006-01-02 15:04"
)

// PriceFormatter renders amounts with locale-aware digit grouping and a currency suffix.
type PriceFormatter struct {
	printer  *message.Printer
	currency string
}

// NewPriceFormatter builds a formatter for a BCP 47 locale such as "ru" or "en-US".
//
// Unknown locales fall back to English.
func NewPriceFormatter(locale, currency string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &PriceFormatter{printer: message.NewPrinter(tag), currency: currency}
}

func (f *PriceFormatter) number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func (f *PriceFormatter) suffix(s string) string {
	if f.currency == "" {
		return s
	}
	return s + " " + f.currency
}

// Amount formats a single price, e.g. "15,000 ₽".
func (f *PriceFormatter) Amount(v float64) string {
	return f.suffix(f.number(v))
}

// Range formats a price band as "min - max currency".
//
// A nil or zero bound yields [PricePlaceholder].
func (f *PriceFormatter) Range(min, max *float64) string {
	if min == nil || max == nil || *min == 0 || *max == 0 {
		return PricePlaceholder
	}
	return f.suffix(f.number(*min) + " - " + f.number(*max))
}

// FormatRating renders a rating with one decimal, "0.0" when absent.
func FormatRating(r *float64) string {
	if r == nil {
		return "0.0"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

// parseFinite parses a trimmed decimal, rejecting NaN and infinities that ParseFloat accepts.
func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseNonNegative parses a trimmed numeric string, reporting false for blank, non-numeric or negative input.
func ParseNonNegative(s string) (float64, bool) {
	v, ok := parseFinite(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseOptionalAmount parses a price field where unparsable input means "absent".
//
// Negative values are returned as-is so validation can reject them.
func ParseOptionalAmount(s string) *float64 {
	v, ok := parseFinite(s)
	if !ok {
		return nil
	}
	return &v
}

// SplitGenres splits a comma separated list, trimming entries and dropping empties.
func SplitGenres(s string) []string {
	genres := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// JoinGenres is the inverse of [SplitGenres] for pre-populating edit forms.
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}

// FormatDate renders the calendar date of t, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// FormatDateTime renders t with minute precision, or "-" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateTimeLayout)
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return fmt.Sprintf("%s…", string(r[:n-1]))
}

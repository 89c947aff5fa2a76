package shared

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestPriceFormatter(t *testing.T) {
	f := NewPriceFormatter("en", "₽")

	t.Run("Range", func(t *testing.T) {
		tt := []struct {
			name     string
			min, max *float64
			want     string
		}{
			{"both bounds", ptr(10000), ptr(20000), "10,000 - 20,000 ₽"},
			{"small values", ptr(500), ptr(900), "500 - 900 ₽"},
			{"missing min", nil, ptr(20000), PricePlaceholder},
			{"missing max", ptr(10000), nil, PricePlaceholder},
			{"zero bound", ptr(0), ptr(20000), PricePlaceholder},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				if got := f.Range(tc.min, tc.max); got != tc.want {
					t.Errorf("Range() = %q, want %q", got, tc.want)
				}
			})
		}
	})

	t.Run("Amount", func(t *testing.T) {
		if got := f.Amount(15000); got != "15,000 ₽" {
			t.Errorf("Amount() = %q", got)
		}
	})

	t.Run("no currency", func(t *testing.T) {
		nf := NewPriceFormatter("en", "")
		if got := nf.Amount(1200); got != "1,200" {
			t.Errorf("Amount() = %q", got)
		}
	})

	t.Run("unknown locale falls back", func(t *testing.T) {
		nf := NewPriceFormatter("not a locale!", "$")
		if got := nf.Amount(1000); got != "1,000 $" {
			t.Errorf("Amount() = %q", got)
		}
	})
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating(nil); got != "0.0" {
		t.Errorf("nil rating = %q", got)
	}
	if got := FormatRating(ptr(4.25)); got != "4.2" && got != "4.3" {
		t.Errorf("rating = %q", got)
	}
	if got := FormatRating(ptr(5)); got != "5.0" {
		t.Errorf("rating = %q", got)
	}
}

func TestParseNonNegative(t *testing.T) {
	tt := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"100", 100, true},
		{" 2.5 ", 2.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"nan", 0, false},
		{"Inf", 0, false},
		{"+Inf", 0, false},
		{"-Infinity", 0, false},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseNonNegative(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ParseNonNegative(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestParseOptionalAmount(t *testing.T) {
	if ParseOptionalAmount("") != nil {
		t.Error("blank should be nil")
	}
	if ParseOptionalAmount("ten") != nil {
		t.Error("non-numeric should be nil")
	}
	if v := ParseOptionalAmount("1500"); v == nil || *v != 1500 {
		t.Errorf("got %v", v)
	}
	if v := ParseOptionalAmount("-5"); v == nil || *v != -5 {
		t.Errorf("negative should pass through, got %v", v)
	}
	for _, in := range []string{"NaN", "Inf", "+Inf", "-inf"} {
		if v := ParseOptionalAmount(in); v != nil {
			t.Errorf("ParseOptionalAmount(%q) = %v, want nil", in, *v)
		}
	}
}

func TestGenres(t *testing.T) {
	t.Run("SplitGenres", func(t *testing.T) {
		got := SplitGenres(" rock, , jazz ,blues,")
		want := []string{"rock", "jazz", "blues"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("SplitGenres empty", func(t *testing.T) {
		if got := SplitGenres("  "); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("JoinGenres", func(t *testing.T) {
		if got := JoinGenres([]string{"rock", "jazz"}); got != "rock, jazz" {
			t.Errorf("got %q", got)
		}
	})
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-03-09" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatDateTime(ts); got != "2024-03-09 18:30" {
		t.Errorf("FormatDateTime() = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("zero date = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Errorf("got %q", got)
	}
}

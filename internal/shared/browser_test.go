package shared

import (
	"errors"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	orig := getRuntime
	t.Cleanup(func() { getRuntime = orig })

	tt := []struct {
		goos string
		bin  string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "cmd"},
	}

	for _, tc := range tt {
		t.Run(tc.goos, func(t *testing.T) {
			getRuntime = func() string { return tc.goos }
			cmd, err := browserCommand("http://localhost:8000/docs")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Args[0] != tc.bin {
				t.Errorf("expected %s, got %s", tc.bin, cmd.Args[0])
			}
			if got := cmd.Args[len(cmd.Args)-1]; got != "http://localhost:8000/docs" {
				t.Errorf("expected url as last arg, got %s", got)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("http://localhost"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

func TestDocsURL(t *testing.T) {
	t.Run("trailing slash", func(t *testing.T) {
		got, err := DocsURL("http://localhost:8000/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "http://localhost:8000/docs" {
			t.Errorf("got %s", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := DocsURL("localhost"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

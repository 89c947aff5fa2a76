package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	tu "github.com/desertthunder/gigx/internal/testing"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*APIService, *session.Session, *tu.MemoryStore, *tu.RecordingNavigator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess, store, nav := tu.NewTestSession(t)
	srv := NewAPIService(server.URL, server.Client(), sess).WithLogger(log.New(io.Discard))
	return srv, sess, store, nav
}

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient, nil)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected trailing slash trimmed, got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil, nil)

			if srv.baseURL != "http://localhost:8000" {
				t.Errorf("expected default baseURL 'http://localhost:8000', got %s", srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("WithRateLimit", func(t *testing.T) {
			srv := NewAPIService("", nil, nil).WithRateLimit(5)
			if srv.limiter == nil {
				t.Fatal("expected limiter")
			}
			if srv.WithRateLimit(0).limiter != nil {
				t.Error("zero rps should disable the limiter")
			}
		})
	})

	t.Run("Do", func(t *testing.T) {
		t.Run("Sets Default Headers", func(t *testing.T) {
			srv, sess, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("expected json content type, got %q", got)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("expected bearer token, got %q", got)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected request id")
				}
				tu.WriteJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
			})
			_ = sess.SetToken("tok")

			resp, err := srv.Do(context.Background(), http.MethodGet, "/api/bookings", nil, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() || !resp.IsJSON {
				t.Errorf("expected OK JSON response, got %+v", resp)
			}
			if resp.RequestID == "" {
				t.Error("expected request id on response")
			}
		})

		t.Run("Caller Headers Win", func(t *testing.T) {
			srv, sess, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer override" {
					t.Errorf("expected caller authorization, got %q", got)
				}
				if got := r.Header.Get("Accept-Language"); got != "ru" {
					t.Errorf("expected extra header, got %q", got)
				}
				w.WriteHeader(http.StatusNoContent)
			})
			_ = sess.SetToken("tok")

			header := http.Header{}
			header.Set("Authorization", "Bearer override")
			header.Set("Accept-Language", "ru")
			if _, err := srv.Do(context.Background(), http.MethodGet, "/x", nil, header); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})

		t.Run("Signed Out Sends No Authorization", func(t *testing.T) {
			srv, _, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "" {
					t.Error("expected no authorization header")
				}
				tu.WriteJSON(t, w, http.StatusOK, []any{})
			})

			if _, err := srv.Do(context.Background(), http.MethodGet, "/api/artists", nil, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})

		t.Run("Encodes JSON Body", func(t *testing.T) {
			srv, _, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				if string(body) != `{"a":1}` {
					t.Errorf("unexpected body %s", body)
				}
				w.WriteHeader(http.StatusCreated)
			})

			resp, err := srv.Do(context.Background(), http.MethodPost, "/x", map[string]int{"a": 1}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201, got %d", resp.StatusCode)
			}
		})

		t.Run("Unauthorized Expires Session", func(t *testing.T) {
			srv, sess, store, nav := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				tu.WriteJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			})
			_ = sess.SetToken("stale")

			resp, err := srv.Do(context.Background(), http.MethodGet, "/api/bookings", nil, nil)
			if !errors.Is(err, shared.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			if !strings.Contains(err.Error(), "GET /api/bookings") {
				t.Errorf("expected the endpoint in the error, got %q", err)
			}
			if resp != nil {
				t.Error("no response should reach the caller")
			}
			if sess.Authenticated() {
				t.Error("token should be cleared")
			}
			if store.Has("access_token") {
				t.Error("stored token should be removed")
			}
			if nav.Last() != session.PageEntry {
				t.Errorf("expected navigation to entry, got %q", nav.Last())
			}
		})

		t.Run("Network Error", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			srv := NewAPIService("http://example.com", client, nil).WithLogger(log.New(io.Discard))

			_, err := srv.Do(context.Background(), http.MethodGet, "/x", nil, nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Response Read Error", func(t *testing.T) {
			mockResp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: make(http.Header)}
			client := &http.Client{Transport: tu.NewMockRoundTripper(mockResp, nil)}
			srv := NewAPIService("http://example.com", client, nil).WithLogger(log.New(io.Discard))

			_, err := srv.Do(context.Background(), http.MethodGet, "/x", nil, nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Cancelled Context With Limiter", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil, nil).WithRateLimit(1)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := srv.Do(ctx, http.MethodGet, "/x", nil, nil); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	})

	t.Run("Get and Post", func(t *testing.T) {
		srv, _, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte("plain"))
			case http.MethodPost:
				body, _ := io.ReadAll(r.Body)
				w.Write(body)
			}
		})

		resp, err := srv.Get(context.Background(), "/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.IsJSON {
			t.Error("plain text should not be JSON")
		}

		resp, err = srv.Post(context.Background(), "/echo", []byte(`{"k":"v"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.IsJSON || !strings.Contains(string(resp.Body), `"k"`) {
			t.Errorf("expected echoed JSON, got %s", resp.Body)
		}
	})
}

func TestAPIError(t *testing.T) {
	t.Run("string detail", func(t *testing.T) {
		resp := &APIResponse{StatusCode: 400, Body: []byte(`{"detail":"Email already registered"}`)}
		err := resp.Err()
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("APIError should wrap ErrAPIRequest")
		}
		if DetailOf(err) != "Email already registered" {
			t.Errorf("got %q", DetailOf(err))
		}
		if StatusOf(err) != 400 {
			t.Errorf("got %d", StatusOf(err))
		}
	})

	t.Run("validation list detail", func(t *testing.T) {
		body := `{"detail":[{"loc":["body","stage_name"],"msg":"too short","type":"value_error"},{"loc":["body","price_min"],"msg":"must be >= 0"}]}`
		resp := &APIResponse{StatusCode: 422, Body: []byte(body)}
		if got := DetailOf(resp.Err()); got != "stage_name: too short; price_min: must be >= 0" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no detail", func(t *testing.T) {
		resp := &APIResponse{StatusCode: 500, Body: []byte("oops")}
		if got := resp.Err().Error(); got != "API error: status 500" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("success has no error", func(t *testing.T) {
		if (&APIResponse{StatusCode: 204}).Err() != nil {
			t.Error("expected nil")
		}
	})

	t.Run("helpers on plain errors", func(t *testing.T) {
		err := errors.New("boom")
		if StatusOf(err) != 0 || DetailOf(err) != "boom" {
			t.Error("plain errors should pass through")
		}
	})
}

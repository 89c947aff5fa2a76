// HTTP transport for the gigx backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8000"

// APIService sends requests to the backend on behalf of a [session.Session].
type APIService struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewAPIService creates a new API service for the backend at baseURL.
func NewAPIService(baseURL string, client *http.Client, sess *session.Session) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		session:    sess,
		logger:     shared.NewLogger(nil),
	}
}

// WithRateLimit paces requests to rps per second. Zero or less disables pacing.
func (a *APIService) WithRateLimit(rps float64) *APIService {
	if rps <= 0 {
		a.limiter = nil
		return a
	}
	a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	return a
}

// WithLogger replaces the default stderr logger.
func (a *APIService) WithLogger(l *log.Logger) *APIService {
	if l != nil {
		a.logger = l
	}
	return a
}

// Session returns the session the service authenticates with.
func (a *APIService) Session() *session.Session { return a.session }

// BaseURL returns the backend root without a trailing slash.
func (a *APIService) BaseURL() string { return a.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
	RequestID  string
}

// OK reports a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns an [*APIError] for non-success responses and nil otherwise.
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{Status: r.StatusCode, Detail: parseDetail(r.Body)}
}

// Decode unmarshals the body into v.
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// APIError is a non-success response from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error: status %d", e.Status)
	}
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// StatusOf returns the status code carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// DetailOf returns the backend's detail message carried by err, or err's text.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// parseDetail extracts "detail" from an error body. Validation errors arrive as a list of {loc, msg}.
func parseDetail(body []byte) string {
	var errResp struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(errResp.Detail, &msg); err == nil {
		return msg
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(errResp.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if n := len(it.Loc); n > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[n-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return string(errResp.Detail)
}

// Do performs one request against endpoint (a path such as /api/bookings).
//
// body may be nil, a []byte sent as-is, or any value encoded as JSON. Headers in header override the defaults.
// A 401 expires the session and returns [shared.ErrUnauthorized]; other statuses are returned to the caller.
func (a *APIService) Do(ctx context.Context, method, endpoint string, body any, header http.Header) (*APIResponse, error) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", shared.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if a.session != nil {
		if token := a.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	logger := shared.WithLogger(a.logger, "method", method, "endpoint", endpoint, "request_id", requestID)
	logger.Debug("sending request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Error("request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response", "error", err)
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("request rejected", "status", resp.StatusCode)
		if a.session != nil {
			a.session.Expire()
		}
		return nil, fmt.Errorf("%w: %s %s", shared.ErrUnauthorized, method, endpoint)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
		RequestID:  requestID,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	logger.Debug("received response", "status", resp.StatusCode)
	return apiResp, nil
}

// doJSON runs [APIService.Do], turns non-success statuses into [*APIError], and decodes the body into result.
func (a *APIService) doJSON(ctx context.Context, method, endpoint string, body, result any) error {
	resp, err := a.Do(ctx, method, endpoint, body, nil)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		a.logger.Debug("request unsuccessful", "endpoint", endpoint, "error", err)
		return err
	}
	if result != nil {
		return resp.Decode(result)
	}
	return nil
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, nil, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, data, nil)
}

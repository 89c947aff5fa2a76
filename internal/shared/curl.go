// Utilities for lifting a session out of a browser "Copy as cURL" command.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var curlHeaderRegex = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)

// CurlHeaders holds the request headers found in a cURL command, keyed by canonical-insensitive name.
type CurlHeaders struct {
	Headers map[string]string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*CurlHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand extracts -H/--header values from a cURL command.
//
// Line continuations are folded before matching. Returns an error when the command carries no headers.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	headers := make(map[string]string)
	for _, match := range curlHeaderRegex.FindAllStringSubmatch(cmd, -1) {
		line := match[1]
		if line == "" {
			line = match[2]
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}

	return &CurlHeaders{Headers: headers}, nil
}

// Get returns the header value matching name case-insensitively.
func (c *CurlHeaders) Get(name string) (string, bool) {
	for key, value := range c.Headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

// BearerToken returns the token from the Authorization header.
func (c *CurlHeaders) BearerToken() (string, error) {
	auth, ok := c.Get("Authorization")
	if !ok {
		return "", fmt.Errorf("%w: no Authorization header in curl command", ErrInvalidInput)
	}

	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: Authorization header is not a bearer token", ErrInvalidInput)
	}

	return strings.TrimSpace(token), nil
}

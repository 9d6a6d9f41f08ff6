package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DayFetcher is the subset of *Client the picture fetcher depends on.
type DayFetcher interface {
	FetchDay(ctx context.Context, day time.Time) (Entry, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Ensure Client implements DayFetcher at compile time.
var _ DayFetcher = (*Client)(nil)

// Client talks to the APOD HTTP API.
type Client struct {
	endpoint  *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	defaultEndpoint  = "https://api.nasa.gov/planetary/apod"
	defaultAPIKey    = "DEMO_KEY"
	defaultUserAgent = "apodbar/0.1"

	// images larger than this are refused rather than buffered
	maxImageBytes = 64 << 20
)

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.Code)
}

// IsNotFound reports whether err carries a status the API uses for days
// without a picture (400 for out-of-range dates, 404 for gaps).
func IsNotFound(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusBadRequest || se.Code == http.StatusNotFound
}

// NewClient builds a Client for endpoint. An empty endpoint or key falls back
// to NASA's public endpoint and DEMO_KEY. A zero timeout leaves requests
// bounded only by their context.
func NewClient(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = defaultAPIKey
	}
	return &Client{
		endpoint:  base,
		apiKey:    key,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchDay retrieves the entry published on day (UTC calendar date).
func (c *Client) FetchDay(ctx context.Context, day time.Time) (Entry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	values.Set("date", FormatDay(day))
	values.Set("thumbs", "true")

	reqURL := *c.endpoint
	reqURL.RawQuery = values.Encode()

	resp, err := c.get(ctx, reqURL.String(), "application/json")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: redact(reqURL)}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return newEntry(raw), nil
}

// FetchImage downloads the raw bytes behind imageURL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	resp, err := c.get(ctx, imageURL, "image/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: imageURL}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", imageURL, maxImageBytes)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// redact drops the api key so errors can be logged verbatim.
func redact(u url.URL) string {
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "***")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", endpoint, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

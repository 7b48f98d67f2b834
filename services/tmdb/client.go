// Package tmdb is the low-level TMDB HTTP client. It attaches credentials and
// relays requests; interpretation of payloads lives in services/catalog.
package tmdb

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

const DefaultBaseURL = "https://api.themoviedb.org/3"

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("tmdb: api key not configured")

type Client struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client
}

func NewClient(apiKey, language string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if language == "" {
		language = "en-US"
	}
	return &Client{
		apiKey:   strings.TrimSpace(apiKey),
		language: language,
		baseURL:  DefaultBaseURL,
		httpc:    httpc,
	}
}

// SetBaseURL points the client at a different API host. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// MovieListPath maps a movie list category to its API path.
func MovieListPath(category string) (string, bool) {
	switch category {
	case "popular", "top_rated", "now_playing", "upcoming":
		return "/movie/" + category, true
	}
	return "", false
}

// TVListPath maps a TV list category to its API path.
func TVListPath(category string) (string, bool) {
	switch category {
	case "popular", "top_rated", "on_the_air", "airing_today":
		return "/tv/" + category, true
	}
	return "", false
}

// Result is a relayed upstream response. Status and body are passed through
// untouched so handlers can forward them verbatim.
type Result struct {
	StatusCode int
	Body       []byte
}

// Relay performs a GET against the given API path with the client's
// credentials and language attached, returning the upstream status and body
// as-is. Query values from the caller are preserved; api_key and language
// are overridden.
func (c *Client) Relay(ctx context.Context, apiPath string, query url.Values) (*Result, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	if q.Get("language") == "" {
		q.Set("language", c.language)
	}

	endpoint := c.baseURL + apiPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Result{StatusCode: resp.StatusCode, Body: body}, nil
}

// Get relays a request and decodes a successful JSON response into v. Any
// non-2xx upstream status is an error.
func (c *Client) Get(ctx context.Context, apiPath string, query url.Values, v any) error {
	res, err := c.Relay(ctx, apiPath, query)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("tmdb request failed: status %d", res.StatusCode)
	}
	return json.Unmarshal(res.Body, v)
}

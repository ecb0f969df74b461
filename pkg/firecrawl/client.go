// Package firecrawl provides a client for the Firecrawl scrape API,
// covering the v1 endpoint (with page actions and proxy tiers) and the
// legacy v0 endpoint kept as a last-resort fallback.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Default base URL for the Firecrawl API.
const defaultBaseURL = "https://api.firecrawl.dev"

// Proxy tiers accepted by the v1 scrape endpoint. Stealth costs more
// credits and is only worth it after basic gets denied.
const (
	ProxyBasic   = "basic"
	ProxyStealth = "stealth"
)

// Client defines the Firecrawl scrape operations.
type Client interface {
	Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error)
	ScrapeLegacy(ctx context.Context, req LegacyScrapeRequest) (*ScrapeResponse, error)
}

// Action is a scripted page interaction executed before content capture.
type Action struct {
	Type         string `json:"type"` // "wait" | "scroll"
	Milliseconds int    `json:"milliseconds,omitempty"`
	Direction    string `json:"direction,omitempty"` // "down" | "up"
}

// WaitAction pauses the page for the given duration.
func WaitAction(ms int) Action {
	return Action{Type: "wait", Milliseconds: ms}
}

// ScrollAction scrolls the page in the given direction.
func ScrollAction(direction string) Action {
	return Action{Type: "scroll", Direction: direction}
}

// ScrapeRequest is the body for POST /v1/scrape.
type ScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats,omitempty"`
	WaitFor int      `json:"waitFor,omitempty"` // milliseconds
	Actions []Action `json:"actions,omitempty"`
	Proxy   string   `json:"proxy,omitempty"`
	Timeout int      `json:"timeout,omitempty"` // milliseconds
}

// LegacyScrapeRequest is the body for POST /v0/scrape.
type LegacyScrapeRequest struct {
	URL         string             `json:"url"`
	PageOptions *LegacyPageOptions `json:"pageOptions,omitempty"`
}

// LegacyPageOptions configures the v0 scrape.
type LegacyPageOptions struct {
	WaitFor         int  `json:"waitFor,omitempty"`
	OnlyMainContent bool `json:"onlyMainContent,omitempty"`
}

// ScrapeResponse is the response from either scrape endpoint.
type ScrapeResponse struct {
	Success bool     `json:"success"`
	Data    PageData `json:"data"`
}

// PageData represents a single page result from Firecrawl.
type PageData struct {
	URL        string   `json:"url"`
	Markdown   string   `json:"markdown"`
	HTML       string   `json:"html,omitempty"`
	Title      string   `json:"title"`
	Links      []string `json:"links,omitempty"`
	StatusCode int      `json:"statusCode"`
}

// APIError is returned when Firecrawl responds with a non-2xx status.
// The fetch layer inspects StatusCode and Body to classify the failure.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firecrawl: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Firecrawl client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 90 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error) {
	var resp ScrapeResponse
	if err := c.post(ctx, "/v1/scrape", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) ScrapeLegacy(ctx context.Context, req LegacyScrapeRequest) (*ScrapeResponse, error) {
	var resp ScrapeResponse
	if err := c.post(ctx, "/v0/scrape", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "firecrawl: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "firecrawl: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "firecrawl: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "firecrawl: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "firecrawl: decode response")
	}

	return nil
}

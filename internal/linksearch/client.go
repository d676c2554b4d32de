package linksearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// Client calls the search endpoint over HTTP:
//
//	GET {base}/search/{model}/{field}?q=&locale=
//	GET {base}/get/{id}
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed with
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// NewClient creates a client for the endpoint rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Search implements Searcher.
func (c *Client) Search(ctx context.Context, q Query) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search/%s/%s", c.baseURL, url.PathEscape(q.Model), url.PathEscape(q.Field))
	params := url.Values{}
	params.Set("q", q.Q)
	if q.Locale != "" {
		params.Set("locale", q.Locale)
	}

	var results []Result
	if err := c.get(ctx, "search", endpoint+"?"+params.Encode(), &results); err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Label = SanitizeLabel(results[i].Label)
	}
	c.logger.Debug("link search completed",
		"model", q.Model,
		"field", q.Field,
		"results", len(results),
	)
	return results, nil
}

// Get implements Searcher.
func (c *Client) Get(ctx context.Context, id string) (*Result, error) {
	endpoint := c.baseURL + "/get/" + strings.TrimPrefix(id, "/")

	var result *Result
	err := c.get(ctx, "get", endpoint, &result)
	var se *SearchError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	result.Label = SanitizeLabel(result.Label)
	return result, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &SearchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SearchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &SearchError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SearchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

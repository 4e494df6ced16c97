package naver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"bindery/internal/metrics"
	"bindery/internal/services"
)

// Item represents a single book search result. All fields are raw strings as
// returned by the API; titles frequently carry <b> highlight markup and must
// be sanitized before comparison or display.
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	ISBN      string `json:"isbn"`
}

// Response models the Naver book search payload.
type Response struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

// Searcher defines the book search operation consumed by cover resolution
// and the live search panel.
type Searcher interface {
	Search(ctx context.Context, query string, display int) (*Response, error)
}

// Client provides access to the Naver Book Search API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	metrics      *metrics.Metrics
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit sets the outbound request ceiling. The API enforces a
// per-second quota, so callers share one client per credential pair.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithMetrics records request counts and latency per outbound call.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Naver book search client.
func New(clientID, clientSecret, baseURL string, opts ...Option) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("naver client id required")
	}
	clientSecret = strings.TrimSpace(clientSecret)
	if clientSecret == "" {
		return nil, errors.New("naver client secret required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("naver base url required")
	}
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(8), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the book endpoint sorted by similarity. A malformed or
// absent items field decodes to an empty result set, not an error.
func (c *Client) Search(ctx context.Context, query string, display int) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "naver", "search", "query must not be empty", nil)
	}
	if display <= 0 {
		display = 10
	}
	if display > 100 {
		display = 100
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint, err := url.Parse(c.baseURL + "/v1/search/book.json")
	if err != nil {
		return nil, fmt.Errorf("parse naver url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "sim")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		c.metrics.SearchRequest("error", latency)
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, "naver", "search",
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()
	c.metrics.SearchRequest(strconv.Itoa(resp.StatusCode), latency)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			marker = services.ErrConfiguration
		}
		return nil, services.Wrap(marker, "naver", "search",
			fmt.Sprintf("status %d (latency=%v): %s", resp.StatusCode, latency, strings.TrimSpace(string(body))), nil)
	}

	payload, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode naver response: %w", err)
	}
	return payload, nil
}

// decodeResponse tolerates an items field of the wrong shape by treating it
// as empty. The envelope itself must still be valid JSON.
func decodeResponse(r io.Reader) (*Response, error) {
	var envelope struct {
		Total   int             `json:"total"`
		Start   int             `json:"start"`
		Display int             `json:"display"`
		Items   json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, err
	}

	payload := &Response{
		Total:   envelope.Total,
		Start:   envelope.Start,
		Display: envelope.Display,
	}
	if len(envelope.Items) > 0 {
		var items []Item
		if err := json.Unmarshal(envelope.Items, &items); err == nil {
			payload.Items = items
		}
	}
	return payload, nil
}

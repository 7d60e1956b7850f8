// Package newsapi is a client of the remote location-based news API.
// Every call returns the decoded value together with the raw JSON payload.
package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/time/rate"

	"github.com/umputun/newsnearme/pkg/domain"
)

// maxBodySize limits the size of an API response
const maxBodySize = 10 * 1024 * 1024

var (
	// ErrTransport is returned when the API can't be reached or answers with non-2xx status
	ErrTransport = errors.New("transport error")
	// ErrParse is returned when the API answer is not the expected JSON
	ErrParse = errors.New("parse error")
	// errNoRetry marks failures retrying can't fix, i.e. 4xx answers and malformed payloads
	errNoRetry = errors.New("no retry")
)

// Params configures the client
type Params struct {
	BaseURL    string        // absolute API base URL, e.g. http://127.0.0.1:8000/api/v1
	Timeout    time.Duration // per request timeout, 0 means no timeout
	Attempts   int           // attempts per request, 1 or less disables retries
	RetryDelay time.Duration // initial backoff delay between attempts
	RateLimit  float64       // max requests per second, 0 means unlimited
	Burst      int           // rate limiter burst
	UserAgent  string
	HTTPClient *http.Client // optional, a client with Timeout is created if nil
}

// Client talks to the remote news API
type Client struct {
	baseURL    string
	userAgent  string
	attempts   int
	retryDelay time.Duration
	limiter    *rate.Limiter
	client     *http.Client
}

// New makes a client for the given params
func New(p Params) *Client {
	res := &Client{
		baseURL:    strings.TrimRight(p.BaseURL, "/"),
		userAgent:  p.UserAgent,
		attempts:   p.Attempts,
		retryDelay: p.RetryDelay,
		client:     p.HTTPClient,
	}
	if res.client == nil {
		res.client = &http.Client{Timeout: p.Timeout}
	}
	if res.userAgent == "" {
		res.userAgent = "NewsNearMe/1.0"
	}
	if res.retryDelay <= 0 {
		res.retryDelay = 100 * time.Millisecond
	}
	if p.RateLimit > 0 {
		burst := p.Burst
		if burst < 1 {
			burst = 1
		}
		res.limiter = rate.NewLimiter(rate.Limit(p.RateLimit), burst)
	}
	return res
}

// BaseURL returns API base URL used by the client
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks API health
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, json.RawMessage, error) {
	var res domain.HealthStatus
	raw, err := c.call(ctx, http.MethodGet, "/health", nil, nil, &res)
	if err != nil {
		return domain.HealthStatus{}, nil, fmt.Errorf("health: %w", err)
	}
	return res, raw, nil
}

// Categories returns available news categories
func (c *Client) Categories(ctx context.Context) ([]domain.Category, json.RawMessage, error) {
	var res []domain.Category
	raw, err := c.call(ctx, http.MethodGet, "/news/categories", nil, nil, &res)
	if err != nil {
		return nil, nil, fmt.Errorf("categories: %w", err)
	}
	if res == nil {
		res = []domain.Category{}
	}
	return res, raw, nil
}

// Location returns the location detected by the API for this caller
func (c *Client) Location(ctx context.Context) (domain.Location, json.RawMessage, error) {
	var res domain.Location
	raw, err := c.call(ctx, http.MethodGet, "/news/location", nil, nil, &res)
	if err != nil {
		return domain.Location{}, nil, fmt.Errorf("location: %w", err)
	}
	return res, raw, nil
}

// Search returns news for the detected location.
// Query string has limit and, only if category is set, categories.
func (c *Client) Search(ctx context.Context, q domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Category != "" {
		params.Set("categories", q.Category)
	}

	var res domain.NewsResponse
	raw, err := c.call(ctx, http.MethodGet, "/news/", params, nil, &res)
	if err != nil {
		return nil, nil, fmt.Errorf("search news: %w", err)
	}
	if res.News == nil {
		res.News = []domain.NewsItem{}
	}
	return res.News, raw, nil
}

// customSearchRequest is the body of the custom news search
type customSearchRequest struct {
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	Limit      int    `json:"limit"`
	Categories string `json:"categories,omitempty"`
}

// SearchCustom returns news for an explicitly given place
func (c *Client) SearchCustom(ctx context.Context, q domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
	body := customSearchRequest{City: q.City, Country: q.Country, Limit: q.Limit, Categories: q.Category}

	var res domain.NewsResponse
	raw, err := c.call(ctx, http.MethodPost, "/news/", nil, body, &res)
	if err != nil {
		return nil, nil, fmt.Errorf("search custom news: %w", err)
	}
	if res.News == nil {
		res.News = []domain.NewsItem{}
	}
	return res.News, raw, nil
}

// call performs the request with optional retries and decodes the answer into dest
func (c *Client) call(ctx context.Context, method, path string, params url.Values, body, dest any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var raw json.RawMessage
	fn := func() error {
		var err error
		raw, err = c.do(ctx, method, reqURL, payload)
		return err
	}

	var err error
	if c.attempts <= 1 {
		err = fn()
	} else {
		retrier := repeater.NewBackoff(c.attempts, c.retryDelay, repeater.WithMaxDelay(5*time.Second))
		err = retrier.Do(ctx, fn, errNoRetry)
	}
	if err != nil {
		err = stripNoRetry(err)
		if !errors.Is(err, ErrTransport) && !errors.Is(err, ErrParse) {
			err = fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return nil, fmt.Errorf("%w: decode %s %s: %w", ErrParse, method, path, err)
	}
	return raw, nil
}

// do sends one request and returns the raw JSON body of a 2xx answer
func (c *Client) do(ctx context.Context, method, reqURL string, payload []byte) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %w", ErrTransport, err)
		}
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	lgr.Printf("[DEBUG] api request %s %s", method, reqURL)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, reqURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: %s %s: unexpected status %d", ErrTransport, method, reqURL, resp.StatusCode)
		if resp.StatusCode < 500 {
			return nil, &noRetryError{err: err}
		}
		return nil, err
	}

	if !json.Valid(data) {
		return nil, &noRetryError{err: fmt.Errorf("%w: %s %s: response is not valid JSON", ErrParse, method, reqURL)}
	}
	return data, nil
}

// noRetryError wraps an error to signal repeater to stop retrying
type noRetryError struct {
	err error
}

func (e *noRetryError) Error() string { return e.err.Error() }

// Unwrap returns both the wrapped error and the no-retry marker
func (e *noRetryError) Unwrap() []error { return []error{e.err, errNoRetry} }

// stripNoRetry removes the retry marker so callers see only the real failure
func stripNoRetry(err error) error {
	var nr *noRetryError
	if errors.As(err, &nr) {
		return nr.err
	}
	return err
}

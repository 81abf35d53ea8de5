package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/scatterplot/pkg/buildinfo"
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
	"github.com/matzehuels/scatterplot/pkg/observability"
)

// Defaults for [NewClient].
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	DefaultTimeout  = 30 * time.Second
	MaxBodySize     = 64 << 20
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client downloads URLs with retries. Bodies larger than MaxBody bytes are
// rejected rather than truncated; zero means [MaxBodySize].
type Client struct {
	HTTP     *http.Client
	Attempts int
	Delay    time.Duration
	MaxBody  int64
}

// NewClient returns a client with default timeout and retry policy.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
		MaxBody:  MaxBodySize,
	}
}

// Get downloads rawURL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.get(ctx, rawURL)
		return err
	})
	return body, err
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	host, path := splitURL(rawURL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "scatterplot/"+buildinfo.Version)

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, Retryable(serr)
		}
		return nil, serr
	}

	limit := c.MaxBody
	if limit <= 0 {
		limit = MaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, Retryable(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > limit {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "response body from %s exceeds %d bytes", host, limit)
	}
	return body, nil
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}

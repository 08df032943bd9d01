// Package api is the HTTP client for the review backend and the movie search
// providers. Every operation is one request/response round trip: no retries,
// no caching, no pagination.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colonyops/reel/internal/core/logging"
)

const maxErrorBody = 512

// Options configures a Client.
type Options struct {
	BaseURL     string
	ReviewsPath string
	SearchPath  string
	Timeout     time.Duration
	UserAgent   string

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the review backend.
type Client struct {
	http        *http.Client
	baseURL     string
	reviewsPath string
	searchPath  string
	userAgent   string
}

// New creates a client. BaseURL must be an absolute http(s) URL.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "reel"
	}

	return &Client{
		http:        hc,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		reviewsPath: "/" + strings.Trim(opts.ReviewsPath, "/"),
		searchPath:  "/" + strings.Trim(opts.SearchPath, "/"),
		userAgent:   ua,
	}, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		bits, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(bits)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// call builds, sends and decodes a single request.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return send(c.http, req, op, out)
}

// send executes req and decodes a JSON body into out (when non-nil). An
// empty body leaves out untouched.
func send(hc *http.Client, req *http.Request, op string, out any) error {
	logger := logging.Component("api")
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Debug().Err(err).Str("op", op).Msg("close response body")
		}
	}()

	logger.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

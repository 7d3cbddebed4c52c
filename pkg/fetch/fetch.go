// Package fetch retrieves destination documents over HTTP and parses them
// into page records. It applies the configured request headers, follows
// redirects, and reports the final resolved address so callers can re-key
// caches and history under the redirected URL.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/resolver"
)

// DefaultContainer is the content container assumed when none are
// configured.
const DefaultContainer = "#swoop"

// StatusError reports a non-success HTTP response. Navigation must not
// proceed into a broken state, so the controller surfaces it through the
// fetch error hook and keeps the previous page.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

// Client fetches pages. Safe for concurrent use.
type Client struct {
	http       *http.Client
	resolver   *resolver.Resolver
	header     http.Header
	containers []string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a request header sent with every fetch.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithContainers sets the content container selectors extracted from each
// fetched document.
func WithContainers(selectors ...string) Option {
	return func(c *Client) {
		if len(selectors) > 0 {
			c.containers = selectors
		}
	}
}

// WithTimeout caps the total time of one fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a fetch client. The resolver canonicalizes post-redirect
// addresses into page identities.
func New(res *resolver.Resolver, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		resolver:   res,
		header:     make(http.Header),
		containers: []string{DefaultContainer},
		logger:     logging.NewNop(),
	}
	// Identify the engine and ask for a full HTML document.
	c.header.Set("X-Requested-With", "swoop")
	c.header.Set("Accept", "text/html, application/xhtml+xml")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Header returns a copy of the headers sent with every request.
func (c *Client) Header() http.Header {
	return c.header.Clone()
}

// Fetch retrieves url and parses the response into a page record. The
// record's URL is the canonical identity of the requested address;
// ResponseURL is the canonical identity of the address the server answered
// from after any redirects. The two differ exactly when a redirect was
// followed, which is the caller's cue to re-key cache and history.
func (c *Client) Fetch(ctx context.Context, url string) (*domain.PageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, vals := range c.header {
		for _, v := range vals {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}

	requested, err := c.resolver.Resolve(url)
	if err != nil {
		return nil, fmt.Errorf("resolve request url: %w", err)
	}
	final, err := c.resolver.Resolve(resp.Request.URL.String())
	if err != nil {
		return nil, fmt.Errorf("resolve response url: %w", err)
	}
	if final != requested {
		c.logger.Debug("fetch was redirected", "from", requested, "to", final)
	}

	title, blocks, err := parseDocument(resp.Body, c.containers, c.logger)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	return &domain.PageRecord{
		URL:         requested,
		ResponseURL: final,
		Title:       title,
		Blocks:      blocks,
		Status:      resp.StatusCode,
		Header:      resp.Header.Clone(),
		FetchedAt:   time.Now(),
	}, nil
}

package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linkdump/internal/models"
	"github.com/amosWeiskopf/linkdump/pkg/extractor"
)

// ErrBadStatus is wrapped by FetchError when the server answers outside 2xx
var ErrBadStatus = errors.New("unexpected status code")

// FetchError describes a failed fetch of URL
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v: %d %s", e.URL, e.Err, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Crawler fetches one page per call and extracts its links. It performs a
// single GET with no retries.
type Crawler struct {
	client    *http.Client
	extractor *extractor.Extractor
	logger    zerolog.Logger
	userAgent string
	timeout   time.Duration
}

var _ Fetcher = (*Crawler)(nil)

// New creates a Crawler. Without options it behaves like Go's default
// client: no timeout, default headers, redirects followed.
func New(opts ...Option) *Crawler {
	c := &Crawler{
		client:    &http.Client{},
		extractor: extractor.New(),
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 && c.client.Timeout == 0 {
		client := *c.client
		client.Timeout = c.timeout
		c.client = &client
	}

	return c
}

// Response is a fetched page
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetch issues one GET for domain. Transport failures and non-2xx statuses
// are returned as *FetchError; the response is non-nil whenever the server
// answered, so callers can still read the status code.
func (c *Crawler) Fetch(ctx context.Context, domain string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, domain, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: domain, Err: err}
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: domain, Err: err}
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Str("domain", domain).Msg("error closing response body")
		}
	}()

	page := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return page, &FetchError{URL: domain, StatusCode: resp.StatusCode, Err: ErrBadStatus}
	}

	page.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return page, &FetchError{URL: domain, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	return page, nil
}

// Crawl fetches domain and extracts every link on the page. Failures are
// reported through the result's Err; the URL set is never nil.
func (c *Crawler) Crawl(ctx context.Context, domain string) models.FetchResult {
	c.logger.Info().Str("domain", domain).Msg("Fetching URLs")

	result := models.FetchResult{
		Domain:    domain,
		URLs:      models.NewLinkSet(),
		FetchedAt: time.Now(),
	}

	page, err := c.Fetch(ctx, domain)
	if page != nil {
		result.StatusCode = page.StatusCode
	}
	if err != nil {
		result.Err = err
		return result
	}

	links, err := c.extractor.ExtractLinks(page.Body, page.ContentType, domain)
	if err != nil {
		result.Err = fmt.Errorf("extract links from %s: %w", domain, err)
		return result
	}
	result.URLs = links

	c.logger.Info().
		Str("domain", domain).
		Int("count", links.Len()).
		Msgf("Found %d URLs on %s", links.Len(), domain)

	return result
}

// FetchURLs fetches domain and returns its links. Any failure is logged
// and yields an empty set; no error reaches the caller.
func (c *Crawler) FetchURLs(ctx context.Context, domain string) *models.LinkSet {
	result := c.Crawl(ctx, domain)
	if result.Failed() {
		c.logger.Error().Err(result.Err).Str("domain", domain).Msg("Failed to fetch URLs")
		return models.NewLinkSet()
	}
	return result.URLs
}

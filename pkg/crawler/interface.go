package crawler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linkdump/internal/models"
	"github.com/amosWeiskopf/linkdump/pkg/extractor"
)

// Fetcher defines the single-page link fetching operations
type Fetcher interface {
	// Crawl fetches domain once and reports links or the reason it failed
	Crawl(ctx context.Context, domain string) models.FetchResult

	// FetchURLs is Crawl that logs failures and returns an empty set instead
	FetchURLs(ctx context.Context, domain string) *models.LinkSet
}

// Option configures a Crawler
type Option func(c *Crawler)

// WithClient sets the http.Client used for the request
func WithClient(client *http.Client) Option {
	return func(c *Crawler) {
		c.client = client
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithUserAgent overrides the client's default User-Agent header.
// An empty string keeps the default.
func WithUserAgent(userAgent string) Option {
	return func(c *Crawler) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds the whole request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Crawler) {
		c.timeout = timeout
	}
}

// WithExtractor sets the link extractor
func WithExtractor(e *extractor.Extractor) Option {
	return func(c *Crawler) {
		c.extractor = e
	}
}

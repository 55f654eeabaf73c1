// Package fetch turns page URLs into parsed documents.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"motohub/internal/config"
	"motohub/internal/crawler"
	"motohub/internal/metrics"
)

// HTTPFetcher fetches server-rendered pages with a plain HTTP client.
type HTTPFetcher struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewHTTPFetcher(cfg config.FetchConfig, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		limiter:   NewLimiter(cfg),
		logger:    logger.With("fetcher", config.FetchModeHTTP),
	}
}

// NewLimiter returns the request rate limiter shared by all fetches of one
// fetcher. A non-positive rate disables limiting.
func NewLimiter(cfg config.FetchConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, crawler.Fatal(fmt.Errorf("parse url %q: %w", rawURL, err))
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, crawler.Fatal(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ja,en;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		metrics.Fetches.WithLabelValues(config.FetchModeHTTP, "error").Inc()
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	metrics.Fetches.WithLabelValues(config.FetchModeHTTP, strconv.Itoa(resp.StatusCode)).Inc()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Url = resp.Request.URL

	f.logger.Debug("page fetched", "url", rawURL, "status", resp.StatusCode)

	return doc, nil
}

// checkStatus maps a response status to an error. Only pages that are gone
// are fatal; 403 and 429 are how the sites throttle, so they are retried.
func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return crawler.Fatal(fmt.Errorf("unexpected status: %d", code))
	default:
		return fmt.Errorf("unexpected status: %d", code)
	}
}

package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"

	"motohub/internal/config"
	"motohub/internal/crawler"
	"motohub/internal/metrics"
)

var blockedResourceTypes = []string{"image", "media", "font", "stylesheet"}

// BrowserFetcher renders pages in headless Chromium. It is used for sites
// whose listing markup is assembled by scripts.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	cfg     config.FetchConfig
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewBrowserFetcher starts the playwright driver and a browser. Close must
// be called to stop both.
func NewBrowserFetcher(cfg config.FetchConfig, logger *slog.Logger) (*BrowserFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{}
	if cfg.UserAgent != "" {
		contextOptions.UserAgent = playwright.String(cfg.UserAgent)
	}
	browserContext, err := browser.NewContext(contextOptions)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	return &BrowserFetcher{
		pw:      pw,
		browser: browser,
		context: browserContext,
		cfg:     cfg,
		limiter: NewLimiter(cfg),
		logger:  logger.With("fetcher", config.FetchModeBrowser),
	}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, crawler.Fatal(fmt.Errorf("parse url %q: %w", rawURL, err))
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	page, err := f.newPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// playwright calls do not take a context; closing the page aborts a
	// navigation that is still running when ctx ends.
	stop := context.AfterFunc(ctx, func() { _ = page.Close() })
	defer stop()

	res, err := page.Goto(pageURL.String(), playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(f.cfg.Timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		metrics.Fetches.WithLabelValues(config.FetchModeBrowser, "error").Inc()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("navigate to %s: %w", rawURL, err)
	}
	if res == nil {
		metrics.Fetches.WithLabelValues(config.FetchModeBrowser, "error").Inc()
		return nil, fmt.Errorf("navigate to %s: no response", rawURL)
	}

	metrics.Fetches.WithLabelValues(config.FetchModeBrowser, strconv.Itoa(res.Status())).Inc()

	if err := checkStatus(res.Status()); err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Url = pageURL
	if final, err := url.Parse(page.URL()); err == nil && final.Host != "" {
		doc.Url = final
	}

	f.logger.Debug("page rendered", "url", rawURL, "status", res.Status())

	return doc, nil
}

func (f *BrowserFetcher) newPage() (playwright.Page, error) {
	page, err := f.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if f.cfg.BlockResources {
		err := page.Route("**/*", func(route playwright.Route) {
			if slices.Contains(blockedResourceTypes, route.Request().ResourceType()) {
				_ = route.Abort()
				return
			}
			_ = route.Continue()
		})
		if err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("set up request interception: %w", err)
		}
	}

	return page, nil
}

func (f *BrowserFetcher) Close() error {
	if err := f.context.Close(); err != nil {
		f.logger.Warn("failed to close browser context", "error", err)
	}
	if err := f.browser.Close(); err != nil {
		f.logger.Warn("failed to close browser", "error", err)
	}
	return f.pw.Stop()
}

// Package source defines what the pipeline needs from one marketplace site
// and the parsing helpers the site extractors share.
package source

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/domain"
)

// Fetcher returns the parsed document at url. Errors wrapped with
// crawler.Fatal are not retried.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Source extracts catalog data from one site's pages. Parse methods never
// fail: a field that cannot be found is left empty.
type Source interface {
	// Name is the site's name in the sites table.
	Name() string

	// Makers lists the manufacturer pages of the site.
	Makers(ctx context.Context, fetcher Fetcher) ([]domain.MakerTarget, error)
	// Models parses a manufacturer page.
	Models(doc *goquery.Document) []domain.ExtractedModel

	// Categories lists the pages that group models by category.
	Categories(ctx context.Context, fetcher Fetcher) ([]domain.CategoryTarget, error)
	// CategoryModels parses a category page into the category name shown on
	// it, or "" when the page has none, and the model names it lists.
	CategoryModels(doc *goquery.Document) (string, []string)

	// Regions lists the first page of every regional shop directory.
	Regions(ctx context.Context, fetcher Fetcher) ([]domain.RegionTarget, error)
	// Shops parses one shop directory page and returns the next page URL,
	// or "" on the last page.
	Shops(doc *goquery.Document) ([]domain.ExtractedShop, string)

	// Listings parses one listing page of a model and returns the next
	// page URL, or "" on the last page.
	Listings(doc *goquery.Document) ([]domain.ExtractedListing, string)
}

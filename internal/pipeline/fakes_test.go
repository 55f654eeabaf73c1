package pipeline

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/domain"
	"motohub/internal/source"
)

// fakeFetcher returns an empty document carrying the requested URL, so the
// fake sources can key their canned results by doc.Url.
type fakeFetcher struct {
	mu       sync.Mutex
	failures map[string]error
	fetched  map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		failures: make(map[string]error),
		fetched:  make(map[string]int),
	}
}

func (f *fakeFetcher) fail(rawURL string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[rawURL] = err
}

func (f *fakeFetcher) count(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetched[rawURL]
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	f.mu.Lock()
	f.fetched[rawURL]++
	err := f.failures[rawURL]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		return nil, err
	}
	doc.Url, err = url.Parse(rawURL)
	return doc, err
}

type page[T any] struct {
	items []T
	next  string
}

type categoryPage struct {
	category string
	names    []string
}

type fakeSource struct {
	name      string
	makers    []domain.MakerTarget
	makersErr error
	models    map[string][]domain.ExtractedModel
	regions   []domain.RegionTarget

	categories    []domain.CategoryTarget
	categoryPages map[string]categoryPage

	shops     map[string]page[domain.ExtractedShop]
	listings  map[string]page[domain.ExtractedListing]
}

// newFakeSource builds a site with one maker, one model, one region with a
// single shop page and a model listing split over two pages.
func newFakeSource(name, base string) *fakeSource {
	return &fakeSource{
		name: name,
		makers: []domain.MakerTarget{
			{Name: "ホンダ", URL: base + "/maker/honda"},
		},
		models: map[string][]domain.ExtractedModel{
			base + "/maker/honda": {
				{Identifier: "m1", RawName: "CB400SF", ListingURL: base + "/list/m1"},
			},
		},
		regions: []domain.RegionTarget{
			{Name: "東京都", URL: base + "/shops/tokyo"},
		},
		shops: map[string]page[domain.ExtractedShop]{
			base + "/shops/tokyo": {items: []domain.ExtractedShop{
				{Identifier: "s1", RawName: "モトショップ", RawAddress: "東京都渋谷区1-1-7"},
			}},
		},
		listings: map[string]page[domain.ExtractedListing]{
			base + "/list/m1": {
				items: []domain.ExtractedListing{
					{SourceURL: base + "/bike/1", Title: "CB400SF"},
					{SourceURL: base + "/bike/2", Title: "CB400SF Revo"},
				},
				next: base + "/list/m1?page=2",
			},
			base + "/list/m1?page=2": {
				items: []domain.ExtractedListing{
					{SourceURL: base + "/bike/3", Title: "CB400SB"},
				},
			},
		},
	}
}

var _ source.Source = (*fakeSource)(nil)

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Makers(ctx context.Context, fetcher source.Fetcher) ([]domain.MakerTarget, error) {
	return s.makers, s.makersErr
}

func (s *fakeSource) Models(doc *goquery.Document) []domain.ExtractedModel {
	return s.models[doc.Url.String()]
}

func (s *fakeSource) Categories(ctx context.Context, fetcher source.Fetcher) ([]domain.CategoryTarget, error) {
	return s.categories, nil
}

func (s *fakeSource) CategoryModels(doc *goquery.Document) (string, []string) {
	p := s.categoryPages[doc.Url.String()]
	return p.category, p.names
}

func (s *fakeSource) Regions(ctx context.Context, fetcher source.Fetcher) ([]domain.RegionTarget, error) {
	return s.regions, nil
}

func (s *fakeSource) Shops(doc *goquery.Document) ([]domain.ExtractedShop, string) {
	p := s.shops[doc.Url.String()]
	return p.items, p.next
}

func (s *fakeSource) Listings(doc *goquery.Document) ([]domain.ExtractedListing, string) {
	p := s.listings[doc.Url.String()]
	return p.items, p.next
}

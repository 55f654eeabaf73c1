// Package goobike reads the GooBike marketplace.
package goobike

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/domain"
	"motohub/internal/source"
)

const (
	SiteName = "GooBike"
	BaseURL  = "https://www.goobike.com"
)

var clientID = regexp.MustCompile(`client_(\d+)`)

type Source struct {
	baseURL string
}

var _ source.Source = (*Source)(nil)

func New() *Source {
	return &Source{baseURL: BaseURL}
}

func (s *Source) Name() string { return SiteName }

// Makers reads the maker index, where each country heading is followed by a
// table of maker links.
func (s *Source) Makers(ctx context.Context, fetcher source.Fetcher) ([]domain.MakerTarget, error) {
	doc, err := fetcher.Fetch(ctx, s.baseURL+"/maker-top/index.html")
	if err != nil {
		return nil, fmt.Errorf("fetch maker index: %w", err)
	}

	var makers []domain.MakerTarget
	doc.Find("p.title").Each(func(_ int, heading *goquery.Selection) {
		country := source.Text(heading)
		heading.NextAllFiltered("table").First().Find("span.mj a").Each(func(_ int, a *goquery.Selection) {
			name := source.CleanName(a.Text())
			href := source.Resolve(doc, s.baseURL, a.AttrOr("href", ""))
			if name == "" || href == "" {
				return
			}
			target := domain.MakerTarget{Name: name, URL: href}
			if country != "" {
				target.Country = &country
			}
			makers = append(makers, target)
		})
	})

	if len(makers) == 0 {
		return nil, errors.New("maker index: no makers found")
	}
	return makers, nil
}

func (s *Source) Models(doc *goquery.Document) []domain.ExtractedModel {
	var models []domain.ExtractedModel
	doc.Find("li.bike_list").Each(func(_ int, item *goquery.Selection) {
		name := source.CleanName(item.Find("em b").First().Text())
		if name == "" {
			return
		}
		models = append(models, domain.ExtractedModel{
			Identifier: strings.TrimSpace(item.Find("input[name='model']").AttrOr("value", "")),
			RawName:    name,
			ListingURL: source.Resolve(doc, s.baseURL, item.Find("a").First().AttrOr("href", "")),
		})
	})
	return models
}

// genres is the number of genre pages; they are numbered from 01.
const genres = 16

// Categories returns the genre pages. Each page names its own category.
func (s *Source) Categories(context.Context, source.Fetcher) ([]domain.CategoryTarget, error) {
	targets := make([]domain.CategoryTarget, 0, genres)
	for i := 1; i <= genres; i++ {
		targets = append(targets, domain.CategoryTarget{
			URL: fmt.Sprintf("%s/genre-%02d/index.html", s.baseURL, i),
		})
	}
	return targets, nil
}

func (s *Source) CategoryModels(doc *goquery.Document) (string, []string) {
	category := source.Text(doc.Find("li strong").First())

	var names []string
	doc.Find("li.bike_list em b").Each(func(_ int, b *goquery.Selection) {
		if name := source.CleanName(b.Text()); name != "" {
			names = append(names, name)
		}
	})
	return category, names
}

func (s *Source) Regions(ctx context.Context, fetcher source.Fetcher) ([]domain.RegionTarget, error) {
	doc, err := fetcher.Fetch(ctx, s.baseURL+"/shop/")
	if err != nil {
		return nil, fmt.Errorf("fetch shop index: %w", err)
	}

	var regions []domain.RegionTarget
	doc.Find(".mapBox li a").Each(func(_ int, a *goquery.Selection) {
		href := source.Resolve(doc, s.baseURL, a.AttrOr("href", ""))
		if href == "" {
			return
		}
		regions = append(regions, domain.RegionTarget{Name: source.CleanName(a.Text()), URL: href})
	})

	if len(regions) == 0 {
		return nil, errors.New("shop index: no regions found")
	}
	return regions, nil
}

func (s *Source) Shops(doc *goquery.Document) ([]domain.ExtractedShop, string) {
	var shops []domain.ExtractedShop
	doc.Find(".shop_header").Each(func(_ int, header *goquery.Selection) {
		link := header.Find(".shop_name a").First()
		name := source.Text(link)
		if name == "" {
			return
		}
		href := link.AttrOr("href", "")

		shop := domain.ExtractedShop{
			Identifier: source.Match(clientID, href),
			RawName:    name,
			RawAddress: source.Text(header.Parent().Find(".shop_address").First()),
		}
		if website := source.Resolve(doc, s.baseURL, href); website != "" {
			shop.WebsiteURL = &website
		}
		shops = append(shops, shop)
	})

	return shops, s.next(doc)
}

func (s *Source) Listings(doc *goquery.Document) ([]domain.ExtractedListing, string) {
	var listings []domain.ExtractedListing
	doc.Find(".bike_sec").Each(func(_ int, bike *goquery.Selection) {
		link := bike.Find("h4 span a").First()
		url := source.Resolve(doc, s.baseURL, link.AttrOr("href", ""))
		if url == "" {
			return
		}

		listing := domain.ExtractedListing{
			SourceURL:  url,
			Title:      source.Text(link),
			Price:      source.ManYen(source.Text(bike.Find("td.num_td"))),
			TotalPrice: source.ManYen(source.Text(bike.Find("span.total, .price_total"))),
		}

		bike.Find(".cont01 ul li").Each(func(_ int, li *goquery.Selection) {
			text := source.Text(li)
			switch {
			case strings.Contains(text, "年式"):
				listing.ModelYear = source.Year(text)
			case strings.Contains(text, "走行"):
				listing.Mileage = source.Int(text)
			}
		})

		img := bike.Find(".bike_img img").First()
		src := img.AttrOr("real-url", "")
		if src == "" {
			src = img.AttrOr("src", "")
		}
		if src = source.Resolve(doc, s.baseURL, src); src != "" {
			listing.ImageURLs = []string{src}
		}

		shop := bike.Find(".shop_name a").First()
		listing.ShopIdentifier = source.Match(clientID, shop.AttrOr("href", ""))
		listing.ShopName = source.Text(shop)

		listings = append(listings, listing)
	})

	return listings, s.next(doc)
}

func (s *Source) next(doc *goquery.Document) string {
	return source.Resolve(doc, s.baseURL, doc.Find(".pager_next a").First().AttrOr("href", ""))
}

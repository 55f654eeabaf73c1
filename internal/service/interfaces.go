package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"motohub/internal/domain"
)

type ListingStore interface {
	// ActiveURLs returns the source URLs of the site's listings that are not
	// sold out.
	ActiveURLs(ctx context.Context, siteID int64) ([]string, error)
	// Upsert inserts the listing or refreshes the stored one with the same
	// (site, source URL). It never changes the sold-out flag and reports
	// whether a row was inserted.
	Upsert(ctx context.Context, listing *domain.Listing) (bool, error)
	// MarkSoldOut returns the URLs that were still active and are now sold out.
	MarkSoldOut(ctx context.Context, siteID int64, urls []string) ([]string, error)
}

type ShopFinder interface {
	FindShop(ctx context.Context, siteID int64, identifier, rawName, rawAddress string) (int64, bool, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.ListingEvent) error
	Close() error
}

package pipeline

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"motohub/internal/domain"
	"motohub/internal/service"
)

type SiteStore interface {
	GetByName(ctx context.Context, name string) (*domain.Site, error)
}

type EnrichmentStore interface {
	ListMissingDisplacement(ctx context.Context) ([]domain.BikeModel, error)
	SetDisplacement(ctx context.Context, id int64, displacement int) (bool, error)
	SetCategory(ctx context.Context, nameKey, category string) (bool, error)
}

type Resolver interface {
	Warm(ctx context.Context, siteID int64) error
	ResolveManufacturer(ctx context.Context, name string, country *string) (int64, error)
	ResolveModel(ctx context.Context, siteID int64, identifier, rawName string, manufacturerID int64) (int64, error)
	LookupModel(ctx context.Context, siteID int64, identifier string) (int64, bool, error)
	ResolveShop(ctx context.Context, siteID int64, shop domain.ExtractedShop, region string) (int64, error)
}

type ListingSyncer interface {
	Begin(ctx context.Context, site domain.Site) (*service.ListingRun, error)
}

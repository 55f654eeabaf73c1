package resolver

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"motohub/internal/domain"
)

// Stores return domain.ErrNotFound on a miss and domain.ErrUniqueViolation
// when an insert collides with a unique key.

type ManufacturerStore interface {
	GetByNameKey(ctx context.Context, nameKey string) (*domain.Manufacturer, error)
	Insert(ctx context.Context, manufacturer *domain.Manufacturer) (int64, error)
}

type ModelStore interface {
	GetByNameKey(ctx context.Context, nameKey string) (*domain.BikeModel, error)
	Insert(ctx context.Context, model *domain.BikeModel) (int64, error)
}

type ShopStore interface {
	ListByNameKey(ctx context.Context, nameKey string) ([]domain.Shop, error)
	GetByAddressKey(ctx context.Context, addressKey string) (*domain.Shop, error)
	Insert(ctx context.Context, shop *domain.Shop) (int64, error)
}

// IdentifierStore is one (site, identifier) -> entity mapping table.
type IdentifierStore interface {
	Get(ctx context.Context, siteID int64, identifier string) (int64, error)
	// Attach maps the identifier to entityID unless it is already mapped and
	// returns the entity the identifier points to afterwards.
	Attach(ctx context.Context, siteID int64, identifier string, entityID int64) (int64, error)
	ListBySite(ctx context.Context, siteID int64) (map[string]int64, error)
}

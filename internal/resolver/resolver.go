// Package resolver maps site-local identifiers and raw names onto canonical
// manufacturer, model and shop rows.
//
// Storage is the only uniqueness authority. When an insert loses a race
// against a concurrent resolver the row written by the winner is read back
// and used instead, so callers never see a uniqueness violation.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"motohub/internal/domain"
	"motohub/internal/metrics"
	"motohub/internal/normalize"
)

// ErrEmptyName is returned when a raw name normalizes to nothing.
var ErrEmptyName = errors.New("empty name")

type Stores struct {
	Manufacturers    ManufacturerStore
	Models           ModelStore
	Shops            ShopStore
	ModelIdentifiers IdentifierStore
	ShopIdentifiers  IdentifierStore
}

type Resolver struct {
	stores    Stores
	models    *IdentifierCache
	shops     *IdentifierCache
	shopLocks keyLocks
	logger    *slog.Logger

	mu            sync.RWMutex
	manufacturers map[string]int64
}

// New returns a Resolver backed by stores. The caches live as long as the
// Resolver; callers create a new pair per pipeline run.
func New(stores Stores, models, shops *IdentifierCache, logger *slog.Logger) *Resolver {
	return &Resolver{
		stores:        stores,
		models:        models,
		shops:         shops,
		logger:        logger.With("component", "resolver"),
		manufacturers: make(map[string]int64),
	}
}

// Warm reloads the site's identifier mappings from storage.
func (r *Resolver) Warm(ctx context.Context, siteID int64) error {
	models, err := r.stores.ModelIdentifiers.ListBySite(ctx, siteID)
	if err != nil {
		return fmt.Errorf("list model identifiers: %w", err)
	}
	shops, err := r.stores.ShopIdentifiers.ListBySite(ctx, siteID)
	if err != nil {
		return fmt.Errorf("list shop identifiers: %w", err)
	}

	r.models.Replace(siteID, models)
	r.shops.Replace(siteID, shops)

	r.logger.Debug("identifier caches warmed",
		"site_id", siteID,
		"models", len(models),
		"shops", len(shops),
	)
	return nil
}

func (r *Resolver) ResolveManufacturer(ctx context.Context, name string, country *string) (int64, error) {
	key := normalize.Name(name)
	if key == "" {
		return 0, ErrEmptyName
	}

	r.mu.RLock()
	id, ok := r.manufacturers[key]
	r.mu.RUnlock()
	if ok {
		metrics.Resolutions.WithLabelValues("manufacturer", "cache").Inc()
		return id, nil
	}

	path := "name"
	existing, err := r.stores.Manufacturers.GetByNameKey(ctx, key)
	switch {
	case err == nil:
		id = existing.ID
	case errors.Is(err, domain.ErrNotFound):
		manufacturer := &domain.Manufacturer{Name: displayName(name), NameKey: key, Country: country}
		var raced bool
		id, raced, err = createOrGet(
			func() (int64, error) { return r.stores.Manufacturers.Insert(ctx, manufacturer) },
			func() (int64, error) {
				m, err := r.stores.Manufacturers.GetByNameKey(ctx, key)
				if err != nil {
					return 0, err
				}
				return m.ID, nil
			},
		)
		if err != nil {
			return 0, fmt.Errorf("create manufacturer %q: %w", name, err)
		}
		path = resolutionPath(raced)
	default:
		return 0, fmt.Errorf("get manufacturer %q: %w", name, err)
	}

	r.mu.Lock()
	r.manufacturers[key] = id
	r.mu.Unlock()

	metrics.Resolutions.WithLabelValues("manufacturer", path).Inc()
	return id, nil
}

// ResolveModel returns the canonical model for a site identifier, creating
// the model and the mapping when they do not exist yet. Models are matched
// across sites by normalized name; the first writer of a name owns the row.
func (r *Resolver) ResolveModel(ctx context.Context, siteID int64, identifier, rawName string, manufacturerID int64) (int64, error) {
	if identifier != "" {
		id, path, ok, err := lookup(ctx, r.models, r.stores.ModelIdentifiers, siteID, identifier)
		if err != nil {
			return 0, fmt.Errorf("get model identifier %q: %w", identifier, err)
		}
		if ok {
			metrics.Resolutions.WithLabelValues("model", path).Inc()
			return id, nil
		}
	}

	key := normalize.Name(rawName)
	if key == "" {
		return 0, ErrEmptyName
	}

	path := "name"
	id, err := func() (int64, error) {
		existing, err := r.stores.Models.GetByNameKey(ctx, key)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("get model %q: %w", rawName, err)
		}

		category := domain.UnknownCategory
		model := &domain.BikeModel{
			ManufacturerID: manufacturerID,
			Name:           displayName(rawName),
			NameKey:        key,
			Category:       &category,
		}
		id, raced, err := createOrGet(
			func() (int64, error) { return r.stores.Models.Insert(ctx, model) },
			func() (int64, error) {
				m, err := r.stores.Models.GetByNameKey(ctx, key)
				if err != nil {
					return 0, err
				}
				return m.ID, nil
			},
		)
		if err != nil {
			return 0, fmt.Errorf("create model %q: %w", rawName, err)
		}
		path = resolutionPath(raced)
		if raced {
			r.logger.Debug("model created concurrently", "name", model.Name, "model_id", id)
		}
		return id, nil
	}()
	if err != nil {
		return 0, err
	}

	if identifier != "" {
		if id, err = attach(ctx, r.models, r.stores.ModelIdentifiers, siteID, identifier, id); err != nil {
			return 0, err
		}
	}

	metrics.Resolutions.WithLabelValues("model", path).Inc()
	return id, nil
}

// LookupModel resolves a site identifier without creating anything.
func (r *Resolver) LookupModel(ctx context.Context, siteID int64, identifier string) (int64, bool, error) {
	if identifier == "" {
		return 0, false, nil
	}
	id, _, ok, err := lookup(ctx, r.models, r.stores.ModelIdentifiers, siteID, identifier)
	if err != nil {
		return 0, false, fmt.Errorf("get model identifier %q: %w", identifier, err)
	}
	return id, ok, nil
}

// ResolveShop returns the canonical shop for a scraped shop record.
//
// Shops are matched by identifier first, then against shops with the same
// normalized name whose normalized addresses contain one another. A shop
// without an address matches any same-name candidate. Matching and
// creation for one name are serialized within the process; across
// processes the unique address key settles the race.
func (r *Resolver) ResolveShop(ctx context.Context, siteID int64, shop domain.ExtractedShop, region string) (int64, error) {
	if shop.Identifier != "" {
		id, path, ok, err := lookup(ctx, r.shops, r.stores.ShopIdentifiers, siteID, shop.Identifier)
		if err != nil {
			return 0, fmt.Errorf("get shop identifier %q: %w", shop.Identifier, err)
		}
		if ok {
			metrics.Resolutions.WithLabelValues("shop", path).Inc()
			return id, nil
		}
	}

	nameKey := normalize.Name(shop.RawName)
	if nameKey == "" {
		return 0, ErrEmptyName
	}
	addressKey := normalize.Address(shop.RawAddress)

	id, path, err := func() (int64, string, error) {
		unlock := r.shopLocks.lock(nameKey)
		defer unlock()

		id, ok, err := r.matchShop(ctx, nameKey, addressKey)
		if err != nil {
			return 0, "", err
		}
		if ok {
			return id, "fuzzy", nil
		}

		created := &domain.Shop{
			Name:       displayName(shop.RawName),
			NameKey:    nameKey,
			Prefecture: optional(region),
			Address:    optional(strings.TrimSpace(shop.RawAddress)),
			AddressKey: optional(addressKey),
			Phone:      shop.Phone,
			WebsiteURL: shop.WebsiteURL,
		}
		id, raced, err := createOrGet(
			func() (int64, error) { return r.stores.Shops.Insert(ctx, created) },
			func() (int64, error) {
				s, err := r.stores.Shops.GetByAddressKey(ctx, addressKey)
				if err != nil {
					return 0, err
				}
				return s.ID, nil
			},
		)
		if err != nil {
			return 0, "", fmt.Errorf("create shop %q: %w", shop.RawName, err)
		}
		if !raced {
			r.logger.Debug("shop created", "name", created.Name, "shop_id", id)
		}
		return id, resolutionPath(raced), nil
	}()
	if err != nil {
		return 0, err
	}

	if shop.Identifier != "" {
		if id, err = attach(ctx, r.shops, r.stores.ShopIdentifiers, siteID, shop.Identifier, id); err != nil {
			return 0, err
		}
	}

	metrics.Resolutions.WithLabelValues("shop", path).Inc()
	return id, nil
}

// FindShop resolves a shop the way ResolveShop does but never creates one.
func (r *Resolver) FindShop(ctx context.Context, siteID int64, identifier, rawName, rawAddress string) (int64, bool, error) {
	if identifier != "" {
		id, _, ok, err := lookup(ctx, r.shops, r.stores.ShopIdentifiers, siteID, identifier)
		if err != nil {
			return 0, false, fmt.Errorf("get shop identifier %q: %w", identifier, err)
		}
		if ok {
			return id, true, nil
		}
	}

	nameKey := normalize.Name(rawName)
	if nameKey == "" {
		return 0, false, nil
	}
	return r.matchShop(ctx, nameKey, normalize.Address(rawAddress))
}

func (r *Resolver) matchShop(ctx context.Context, nameKey, addressKey string) (int64, bool, error) {
	candidates, err := r.stores.Shops.ListByNameKey(ctx, nameKey)
	if err != nil {
		return 0, false, fmt.Errorf("list shops by name: %w", err)
	}
	for _, c := range candidates {
		var candidateKey string
		if c.AddressKey != nil {
			candidateKey = *c.AddressKey
		}
		if addressesMatch(addressKey, candidateKey) {
			return c.ID, true, nil
		}
	}
	return 0, false, nil
}

// addressesMatch treats two address keys as the same place when one contains
// the other. Sites differ in whether they include building and floor.
func addressesMatch(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func lookup(ctx context.Context, cache *IdentifierCache, store IdentifierStore, siteID int64, identifier string) (int64, string, bool, error) {
	if id, ok := cache.Get(siteID, identifier); ok {
		return id, "cache", true, nil
	}

	id, err := store.Get(ctx, siteID, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}

	cache.Put(siteID, identifier, id)
	return id, "identifier", true, nil
}

func attach(ctx context.Context, cache *IdentifierCache, store IdentifierStore, siteID int64, identifier string, entityID int64) (int64, error) {
	mapped, err := store.Attach(ctx, siteID, identifier, entityID)
	if err != nil {
		return 0, fmt.Errorf("attach identifier %q: %w", identifier, err)
	}
	cache.Put(siteID, identifier, mapped)
	return mapped, nil
}

// createOrGet inserts a row and, if the insert loses a uniqueness race,
// returns the id of the row that won.
func createOrGet(insert, get func() (int64, error)) (int64, bool, error) {
	id, err := insert()
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, domain.ErrUniqueViolation) {
		return 0, false, err
	}

	id, err = get()
	if err != nil {
		return 0, true, fmt.Errorf("re-read after unique violation: %w", err)
	}
	return id, true, nil
}

func resolutionPath(raced bool) string {
	if raced {
		return "race"
	}
	return "insert"
}

// displayName is the stored form of a name: annotations removed, original
// width and case kept.
func displayName(raw string) string {
	if name := normalize.StripAnnotation(raw); name != "" {
		return name
	}
	return strings.TrimSpace(raw)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

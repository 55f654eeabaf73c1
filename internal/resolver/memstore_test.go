package resolver

import (
	"context"
	"sync"

	"motohub/internal/domain"
)

// memCatalog is an in-memory catalog that enforces the same unique keys as
// the database schema.
type memCatalog struct {
	mu     sync.Mutex
	nextID int64

	manufacturers map[string]domain.Manufacturer
	models        map[string]domain.BikeModel
	shops         []domain.Shop

	modelInserts int
	shopInserts  int

	// modelLookup, when set, runs before every model name lookup.
	modelLookup func()
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		manufacturers: make(map[string]domain.Manufacturer),
		models:        make(map[string]domain.BikeModel),
	}
}

func (c *memCatalog) id() int64 {
	c.nextID++
	return c.nextID
}

func (c *memCatalog) stores() Stores {
	return Stores{
		Manufacturers:    memManufacturers{c},
		Models:           memModels{c},
		Shops:            memShops{c},
		ModelIdentifiers: newMemIdentifiers(),
		ShopIdentifiers:  newMemIdentifiers(),
	}
}

func (c *memCatalog) modelCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.models)
}

func (c *memCatalog) shopCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shops)
}

type memManufacturers struct{ c *memCatalog }

func (s memManufacturers) GetByNameKey(_ context.Context, nameKey string) (*domain.Manufacturer, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	m, ok := s.c.manufacturers[nameKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (s memManufacturers) Insert(_ context.Context, m *domain.Manufacturer) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if _, ok := s.c.manufacturers[m.NameKey]; ok {
		return 0, domain.ErrUniqueViolation
	}
	row := *m
	row.ID = s.c.id()
	s.c.manufacturers[m.NameKey] = row
	return row.ID, nil
}

type memModels struct{ c *memCatalog }

func (s memModels) GetByNameKey(_ context.Context, nameKey string) (*domain.BikeModel, error) {
	if s.c.modelLookup != nil {
		s.c.modelLookup()
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	m, ok := s.c.models[nameKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (s memModels) Insert(_ context.Context, m *domain.BikeModel) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	s.c.modelInserts++
	if _, ok := s.c.models[m.NameKey]; ok {
		return 0, domain.ErrUniqueViolation
	}
	row := *m
	row.ID = s.c.id()
	s.c.models[m.NameKey] = row
	return row.ID, nil
}

type memShops struct{ c *memCatalog }

func (s memShops) ListByNameKey(_ context.Context, nameKey string) ([]domain.Shop, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	var out []domain.Shop
	for _, shop := range s.c.shops {
		if shop.NameKey == nameKey {
			out = append(out, shop)
		}
	}
	return out, nil
}

func (s memShops) GetByAddressKey(_ context.Context, addressKey string) (*domain.Shop, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	for _, shop := range s.c.shops {
		if shop.AddressKey != nil && *shop.AddressKey == addressKey {
			return &shop, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s memShops) Insert(_ context.Context, shop *domain.Shop) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	s.c.shopInserts++
	if shop.AddressKey != nil {
		for _, existing := range s.c.shops {
			if existing.AddressKey != nil && *existing.AddressKey == *shop.AddressKey {
				return 0, domain.ErrUniqueViolation
			}
		}
	}
	row := *shop
	row.ID = s.c.id()
	s.c.shops = append(s.c.shops, row)
	return row.ID, nil
}

type memIdentifiers struct {
	mu      sync.Mutex
	entries map[cacheKey]int64
	gets    int
}

func newMemIdentifiers() *memIdentifiers {
	return &memIdentifiers{entries: make(map[cacheKey]int64)}
}

func (s *memIdentifiers) Get(_ context.Context, siteID int64, identifier string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets++
	id, ok := s.entries[cacheKey{siteID, identifier}]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (s *memIdentifiers) Attach(_ context.Context, siteID int64, identifier string, entityID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cacheKey{siteID, identifier}
	if id, ok := s.entries[key]; ok {
		return id, nil
	}
	s.entries[key] = entityID
	return entityID, nil
}

func (s *memIdentifiers) ListBySite(_ context.Context, siteID int64) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64)
	for k, id := range s.entries {
		if k.siteID == siteID {
			out[k.identifier] = id
		}
	}
	return out, nil
}

// barrier holds the first n callers of wait until all n have arrived.
// Later callers pass straight through.
type barrier struct {
	mu      sync.Mutex
	n       int
	release chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, release: make(chan struct{})}
}

func (b *barrier) wait() {
	b.mu.Lock()
	if b.n == 0 {
		b.mu.Unlock()
		return
	}
	b.n--
	if b.n == 0 {
		close(b.release)
	}
	b.mu.Unlock()
	<-b.release
}

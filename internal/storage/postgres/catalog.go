package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"motohub/internal/domain"
)

type SiteStore struct {
	db *sqlx.DB
}

func NewSiteStore(db *sqlx.DB) *SiteStore {
	return &SiteStore{db: db}
}

// GetByName returns domain.ErrSiteNotFound for a site missing from the
// seeded sites table.
func (s *SiteStore) GetByName(ctx context.Context, name string) (*domain.Site, error) {
	var site domain.Site
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &site,
		"SELECT id, name, base_url FROM sites WHERE name = $1", name)
	if err != nil {
		if err = translate(err); errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, err
	}
	return &site, nil
}

type ManufacturerStore struct {
	db *sqlx.DB
}

func NewManufacturerStore(db *sqlx.DB) *ManufacturerStore {
	return &ManufacturerStore{db: db}
}

func (s *ManufacturerStore) GetByNameKey(ctx context.Context, nameKey string) (*domain.Manufacturer, error) {
	var manufacturer domain.Manufacturer
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &manufacturer,
		"SELECT id, name, name_key, country FROM manufacturers WHERE name_key = $1", nameKey)
	if err != nil {
		return nil, translate(err)
	}
	return &manufacturer, nil
}

func (s *ManufacturerStore) Insert(ctx context.Context, manufacturer *domain.Manufacturer) (int64, error) {
	query := `
		INSERT INTO manufacturers (name, name_key, country)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		manufacturer.Name,
		manufacturer.NameKey,
		manufacturer.Country,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	manufacturer.ID = id
	return id, nil
}

type ModelStore struct {
	db *sqlx.DB
}

func NewModelStore(db *sqlx.DB) *ModelStore {
	return &ModelStore{db: db}
}

const modelColumns = "id, manufacturer_id, name, name_key, category, displacement"

func (s *ModelStore) GetByNameKey(ctx context.Context, nameKey string) (*domain.BikeModel, error) {
	var model domain.BikeModel
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &model,
		"SELECT "+modelColumns+" FROM bike_models WHERE name_key = $1", nameKey)
	if err != nil {
		return nil, translate(err)
	}
	return &model, nil
}

func (s *ModelStore) Insert(ctx context.Context, model *domain.BikeModel) (int64, error) {
	query := `
		INSERT INTO bike_models (manufacturer_id, name, name_key, category, displacement)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		model.ManufacturerID,
		model.Name,
		model.NameKey,
		model.Category,
		model.Displacement,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	model.ID = id
	return id, nil
}

// ListMissingDisplacement returns models whose displacement has not been
// filled yet, in id order.
func (s *ModelStore) ListMissingDisplacement(ctx context.Context) ([]domain.BikeModel, error) {
	var models []domain.BikeModel
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &models,
		"SELECT "+modelColumns+" FROM bike_models WHERE displacement IS NULL ORDER BY id")
	return models, err
}

// SetDisplacement fills the displacement of a model that has none. A value
// that is already set is left alone and false is returned.
func (s *ModelStore) SetDisplacement(ctx context.Context, id int64, displacement int) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE bike_models SET displacement = $2 WHERE id = $1 AND displacement IS NULL",
		id, displacement,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetCategory fills the category of the model with the given name key when
// it is still empty or unknown. It returns whether a row changed.
func (s *ModelStore) SetCategory(ctx context.Context, nameKey, category string) (bool, error) {
	if !domain.KnownCategory(category) {
		return false, nil
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE bike_models SET category = $2
		WHERE name_key = $1 AND (category IS NULL OR category = $3)`,
		nameKey, category, domain.UnknownCategory,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type ShopStore struct {
	db *sqlx.DB
}

func NewShopStore(db *sqlx.DB) *ShopStore {
	return &ShopStore{db: db}
}

const shopColumns = `id, name, name_key, prefecture, address, address_key, phone, website_url,
	created_at, updated_at`

func (s *ShopStore) ListByNameKey(ctx context.Context, nameKey string) ([]domain.Shop, error) {
	var shops []domain.Shop
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &shops,
		"SELECT "+shopColumns+" FROM shops WHERE name_key = $1 ORDER BY id", nameKey)
	return shops, err
}

func (s *ShopStore) GetByAddressKey(ctx context.Context, addressKey string) (*domain.Shop, error) {
	var shop domain.Shop
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &shop,
		"SELECT "+shopColumns+" FROM shops WHERE address_key = $1", addressKey)
	if err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}

func (s *ShopStore) Insert(ctx context.Context, shop *domain.Shop) (int64, error) {
	query := `
		INSERT INTO shops (name, name_key, prefecture, address, address_key, phone, website_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		shop.Name,
		shop.NameKey,
		shop.Prefecture,
		shop.Address,
		shop.AddressKey,
		shop.Phone,
		shop.WebsiteURL,
	).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return 0, translate(err)
	}
	return shop.ID, nil
}

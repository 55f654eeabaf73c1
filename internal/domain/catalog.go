package domain

import "time"

// UnknownCategory is the placeholder the source sites use for a model whose
// category has not been determined yet.
const UnknownCategory = "不明"

type Site struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	BaseURL string `db:"base_url"`
}

type Manufacturer struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	NameKey string  `db:"name_key"`
	Country *string `db:"country"`
}

type BikeModel struct {
	ID             int64   `db:"id"`
	ManufacturerID int64   `db:"manufacturer_id"`
	Name           string  `db:"name"`
	NameKey        string  `db:"name_key"`
	Category       *string `db:"category"`
	Displacement   *int    `db:"displacement"`
}

// HasKnownCategory reports whether the category was filled by an enrichment pass.
func (m BikeModel) HasKnownCategory() bool {
	return m.Category != nil && KnownCategory(*m.Category)
}

// KnownCategory reports whether category is a real value and not the
// placeholder.
func KnownCategory(category string) bool {
	return category != "" && category != UnknownCategory
}

// Shop has no natural key across sites. NameKey buckets fuzzy-match
// candidates; AddressKey is unique when present.
type Shop struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	NameKey    string    `db:"name_key"`
	Prefecture *string   `db:"prefecture"`
	Address    *string   `db:"address"`
	AddressKey *string   `db:"address_key"`
	Phone      *string   `db:"phone"`
	WebsiteURL *string   `db:"website_url"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Listing struct {
	ID          int64
	BikeModelID *int64
	ShopID      *int64
	SiteID      int64
	Title       string
	SourceURL   string
	Price       *int64
	TotalPrice  *int64
	ModelYear   *int
	Mileage     *int
	ImageURLs   []string
	IsSoldOut   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package domain

// The Extracted* records are what a site extractor could read off one page.
// Any field may be missing; a missing field is nil or empty, never an error.

// MakerTarget is a manufacturer page listing that maker's models on one site.
type MakerTarget struct {
	Name    string
	Country *string
	URL     string
}

// CategoryTarget is a page listing the models of one category. Name may be
// empty when the page itself carries the category name.
type CategoryTarget struct {
	Name string
	URL  string
}

// RegionTarget is the first page of a region's shop directory.
type RegionTarget struct {
	Name string
	URL  string
}

type ExtractedModel struct {
	Identifier string
	RawName    string
	ListingURL string
}

type ExtractedShop struct {
	Identifier string
	RawName    string
	RawAddress string
	Phone      *string
	WebsiteURL *string
}

type ExtractedListing struct {
	SourceURL      string
	Title          string
	Price          *int64
	TotalPrice     *int64
	ModelYear      *int
	Mileage        *int
	ImageURLs      []string
	ShopIdentifier string
	ShopName       string
	ShopAddress    string
}

// ListingTarget is the first listing page of one model on one site.
type ListingTarget struct {
	Identifier  string
	ModelName   string
	BikeModelID *int64
	URL         string
}

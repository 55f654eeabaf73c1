package domain

import "time"

// SyncStats holds statistics about one listing synchronization run for a site.
type SyncStats struct {
	SiteID     int64
	Site       string
	Observed   int
	New        int
	Refreshed  int
	Skipped    int
	Errors     int
	SoldOut    int
	Published  int
	Reconciled bool
	Duration   time.Duration
}

type ListingEventType string

const (
	ListingCreated ListingEventType = "created"
	ListingUpdated ListingEventType = "updated"
	ListingSoldOut ListingEventType = "sold_out"
)

// ListingEvent is published for every listing the sync inserts, refreshes
// or marks sold out.
type ListingEvent struct {
	Type        ListingEventType `json:"type"`
	SiteID      int64            `json:"site_id"`
	Site        string           `json:"site"`
	SourceURL   string           `json:"source_url"`
	Title       string           `json:"title,omitempty"`
	BikeModelID *int64           `json:"bike_model_id,omitempty"`
	ShopID      *int64           `json:"shop_id,omitempty"`
	Price       *int64           `json:"price,omitempty"`
	TotalPrice  *int64           `json:"total_price,omitempty"`
	ModelYear   *int             `json:"model_year,omitempty"`
	Mileage     *int             `json:"mileage,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

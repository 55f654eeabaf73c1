package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"motohub/internal/domain"
)

type ListingStore struct {
	db *sqlx.DB
}

func NewListingStore(db *sqlx.DB) *ListingStore {
	return &ListingStore{db: db}
}

func (s *ListingStore) ActiveURLs(ctx context.Context, siteID int64) ([]string, error) {
	var urls []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &urls,
		"SELECT source_url FROM listings WHERE site_id = $1 AND NOT is_sold_out",
		siteID,
	)
	return urls, err
}

// Upsert writes the listing keyed by (site, source URL). Fields missing
// from the new observation keep their stored value and is_sold_out is
// never touched.
// It reports whether the row was inserted.
func (s *ListingStore) Upsert(ctx context.Context, listing *domain.Listing) (bool, error) {
	images := listing.ImageURLs
	if images == nil {
		images = []string{}
	}
	imageJSON, err := json.Marshal(images)
	if err != nil {
		return false, fmt.Errorf("marshal image urls: %w", err)
	}

	query := `
		INSERT INTO listings (
			bike_model_id, shop_id, site_id, title, source_url,
			price, total_price, model_year, mileage, image_urls
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (site_id, source_url) DO UPDATE SET
			bike_model_id = COALESCE(EXCLUDED.bike_model_id, listings.bike_model_id),
			shop_id = COALESCE(EXCLUDED.shop_id, listings.shop_id),
			title = EXCLUDED.title,
			price = COALESCE(EXCLUDED.price, listings.price),
			total_price = COALESCE(EXCLUDED.total_price, listings.total_price),
			model_year = COALESCE(EXCLUDED.model_year, listings.model_year),
			mileage = COALESCE(EXCLUDED.mileage, listings.mileage),
			image_urls = CASE WHEN EXCLUDED.image_urls = '[]'::jsonb
				THEN listings.image_urls ELSE EXCLUDED.image_urls END,
			updated_at = NOW()
		RETURNING id, is_sold_out, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err = GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		listing.BikeModelID,
		listing.ShopID,
		listing.SiteID,
		listing.Title,
		listing.SourceURL,
		listing.Price,
		listing.TotalPrice,
		listing.ModelYear,
		listing.Mileage,
		string(imageJSON),
	).Scan(&listing.ID, &listing.IsSoldOut, &listing.CreatedAt, &listing.UpdatedAt, &inserted)
	if err != nil {
		return false, translate(err)
	}

	return inserted, nil
}

// MarkSoldOut flags the given URLs of one site as sold out and returns the
// URLs it changed. URLs of other sites and listings that were already sold
// out are left alone.
func (s *ListingStore) MarkSoldOut(ctx context.Context, siteID int64, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	var marked []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &marked, `
		UPDATE listings
		SET is_sold_out = TRUE, updated_at = NOW()
		WHERE site_id = $1 AND source_url = ANY($2) AND NOT is_sold_out
		RETURNING source_url`,
		siteID, pq.Array(urls),
	)
	if err != nil {
		return nil, err
	}
	return marked, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// IdentifierStore maps site-local codes to canonical rows. The model and
// shop mapping tables share a layout and differ only in the entity column.
type IdentifierStore struct {
	db     *sqlx.DB
	table  string
	column string
}

func NewModelIdentifierStore(db *sqlx.DB) *IdentifierStore {
	return &IdentifierStore{db: db, table: "bike_model_identifiers", column: "bike_model_id"}
}

func NewShopIdentifierStore(db *sqlx.DB) *IdentifierStore {
	return &IdentifierStore{db: db, table: "shop_identifiers", column: "shop_id"}
}

func (s *IdentifierStore) Get(ctx context.Context, siteID int64, identifier string) (int64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE site_id = $1 AND identifier = $2", s.column, s.table)

	var id int64
	if err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, siteID, identifier).Scan(&id); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// Attach keeps the first mapping of an identifier. The returned id is the
// entity the identifier points to after the call, which differs from
// entityID when another writer mapped it first.
func (s *IdentifierStore) Attach(ctx context.Context, siteID int64, identifier string, entityID int64) (int64, error) {
	exec := GetExecutor(ctx, s.db)

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, site_id, identifier)
		VALUES ($1, $2, $3)
		ON CONFLICT (site_id, identifier) DO NOTHING`, s.table, s.column)

	res, err := exec.ExecContext(ctx, insert, entityID, siteID, identifier)
	if err != nil {
		return 0, translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return entityID, nil
	}

	// The conflicting row was committed before our insert finished, so a
	// fresh statement sees it.
	return s.Get(ctx, siteID, identifier)
}

func (s *IdentifierStore) ListBySite(ctx context.Context, siteID int64) (map[string]int64, error) {
	query := fmt.Sprintf("SELECT identifier, %s FROM %s WHERE site_id = $1", s.column, s.table)

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var identifier string
		var id int64
		if err := rows.Scan(&identifier, &id); err != nil {
			return nil, err
		}
		result[identifier] = id
	}

	return result, rows.Err()
}

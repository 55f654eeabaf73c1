package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"motohub/internal/domain"
)

const uniqueViolation pq.ErrorCode = "23505"

// translate maps driver errors onto the domain sentinels the resolver and
// sync service branch on.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrUniqueViolation, pqErr.Constraint)
	}
	return err
}

package domain

import "errors"

var (
	// ErrUniqueViolation is returned by storage when an insert collides with a
	// unique constraint. Resolvers treat it as "resolved concurrently".
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrNotFound        = errors.New("not found")
	ErrSiteNotFound    = errors.New("site not registered")
)

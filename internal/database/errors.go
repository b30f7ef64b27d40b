package database

import "errors"

var (
	// ErrCatalogUnavailable means the catalog could not be opened or migrated.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrTitleNotFound      = errors.New("title not found")
	ErrChapterNotFound    = errors.New("chapter not found")
)

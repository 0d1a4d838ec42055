package imports

import (
	"catalog/domain"
	"context"
)

// Store is the persistence surface the import pipelines need. The
// postgres repository implements it alongside the app repository.
type Store interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// ResolveCategory returns the category with the given slug,
	// creating it atomically when absent. The bool reports whether a
	// new row was created. Concurrent runs resolving the same slug
	// must converge on one row.
	ResolveCategory(ctx context.Context, rec *CategoryRecord) (domain.Category, bool, error)
	InsertProduct(ctx context.Context, rec *ProductRecord) (domain.Product, error)
}

// Blob is the storage surface for image payloads.
type Blob interface {
	Upload(key string, data []byte) error
	PublicURL(key string) string
}

type CategoryRecord struct {
	Name      string  `db:"name"`
	Slug      string  `db:"slug"`
	ParentID  *string `db:"parent_id"`
	SortOrder int     `db:"sort_order"`
}

type ProductRecord struct {
	Name           string  `db:"name"`
	Slug           string  `db:"slug"`
	Description    *string `db:"description"`
	Specifications *string `db:"specifications"`
	ImageURL       *string `db:"image_url"`
	CategoryID     *string `db:"category_id"`
	IsFeatured     bool    `db:"is_featured"`
	SortOrder      int     `db:"sort_order"`
}

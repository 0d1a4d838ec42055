package events

import "time"

// Domain constants
const (
	CatalogDomain   = "catalog"
	CatalogExchange = "catalog.product"
)

// Event names
const (
	ProductCreatedEvent       = "product.created"
	ProductUpdatedEvent       = "product.updated"
	ProductDeletedEvent       = "product.deleted"
	ProductImageUploadedEvent = "product.image.uploaded"
	CategoryCreatedEvent      = "category.created"
	CategoryDeletedEvent      = "category.deleted"
	ImportCompletedEvent      = "catalog.import.completed"
	ContactMessageEvent       = "contact.message.created"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

type ProductCreatedPayload struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CategoryID *string   `json:"categoryId"`
	ImageURL   *string   `json:"imageUrl"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ProductUpdatedPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductDeletedPayload carries the image URL so the media cleanup
// worker can remove the blob after the row is gone.
type ProductDeletedPayload struct {
	ID        string    `json:"id"`
	ImageURL  *string   `json:"imageUrl"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ProductImageUploadedPayload struct {
	ProductID   string    `json:"productId"`
	ImageURL    string    `json:"imageUrl"`
	OldImageURL *string   `json:"oldImageUrl"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type CategoryCreatedPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryDeletedPayload struct {
	ID        string    `json:"id"`
	ImageURL  *string   `json:"imageUrl"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ImportCompletedPayload struct {
	Source            string    `json:"source"` // "csv" or "zip"
	CategoriesCreated int       `json:"categoriesCreated"`
	ProductsCreated   int       `json:"productsCreated"`
	ImagesUploaded    int       `json:"imagesUploaded"`
	Failed            int       `json:"failed"`
	CompletedAt       time.Time `json:"completedAt"`
}

type ContactMessagePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

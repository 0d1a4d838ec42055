package domain

import "time"

type Product struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	Description    *string   `json:"description" db:"description"`
	Specifications *string   `json:"specifications" db:"specifications"`
	ImageURL       *string   `json:"image_url" db:"image_url"`
	CategoryID     *string   `json:"category_id" db:"category_id"`
	IsFeatured     bool      `json:"is_featured" db:"is_featured"`
	SortOrder      int       `json:"sort_order" db:"sort_order"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

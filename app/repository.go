package app

import (
	"catalog/domain"
	"context"
)

type Repository interface {
	Close() error

	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	GetProducts(ctx context.Context, categoryID *string, limit, offset int) ([]domain.Product, error)
	CountProducts(ctx context.Context, categoryID *string) (int, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	DeleteProducts(ctx context.Context, ids []string) ([]domain.Product, error)

	GetSettings(ctx context.Context) ([]domain.SiteSetting, error)
	UpdateSetting(ctx context.Context, key, value string) error

	CreateContactMessage(ctx context.Context, req *CreateContactMessageRequest) (domain.ContactMessage, error)
	GetContactMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error)
	CountContactMessages(ctx context.Context) (int, error)
}

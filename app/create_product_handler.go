package app

import (
	"catalog/app/imports"
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CreateProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required" db:"name"`
	Slug           string  `json:"slug" db:"slug"`
	Description    *string `json:"description" db:"description"`
	Specifications *string `json:"specifications" db:"specifications"`
	ImageURL       *string `json:"image_url" db:"image_url"`
	CategoryID     *string `json:"category_id" validate:"omitempty,uuid" db:"category_id"`
	IsFeatured     bool    `json:"is_featured" db:"is_featured"`
	SortOrder      int     `json:"sort_order" db:"sort_order"`
}

type CreateProductResponse struct {
	Product domain.Product `json:"product"`
}

func NewCreateProductHandler(repository Repository, eventPublisher events.Publisher) *CreateProductHandler {
	return &CreateProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateProductHandler) Handle(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"product.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"product.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if req.Slug == "" {
		req.Slug = imports.ProductSlug(req.Name)
	}

	if req.CategoryID != nil {
		if _, err := h.repository.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, httperror.BadRequest(
					"product.create.unknown_category",
					"The referenced category does not exist",
					nil,
				)
			}
			return nil, httperror.InternalServerError(
				"product.create.create_failed",
				"Failed to verify category",
				nil,
			)
		}
	}

	product, err := h.repository.CreateProduct(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.create.create_failed",
			"An error occurred while creating the product",
			nil,
		)
	}

	h.publishEvent(ctx, product)

	return &CreateProductResponse{
		Product: product,
	}, nil
}

func (h CreateProductHandler) publishEvent(ctx context.Context, product domain.Product) {
	if h.eventPublisher != nil {
		eventPayload := events.ProductCreatedPayload{
			ID:         product.ID,
			Name:       product.Name,
			Slug:       product.Slug,
			CategoryID: product.CategoryID,
			ImageURL:   product.ImageURL,
			IsFeatured: product.IsFeatured,
			CreatedAt:  product.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ProductCreatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish product.created event",
				zap.String("productId", product.ID),
				zap.Error(err),
			)
		}
	}
}

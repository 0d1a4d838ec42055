package app

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type UpdateProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewUpdateProductHandler(repository Repository, eventPublisher events.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type UpdateProductRequest struct {
	ProductID      string  `params:"id" validate:"required,uuid"`
	Name           string  `json:"name" validate:"required"`
	Slug           string  `json:"slug" validate:"required"`
	Description    *string `json:"description"`
	Specifications *string `json:"specifications"`
	ImageURL       *string `json:"image_url"`
	CategoryID     *string `json:"category_id" validate:"omitempty,uuid"`
	IsFeatured     bool    `json:"is_featured"`
	SortOrder      int     `json:"sort_order"`
}

type UpdateProductResponse struct {
	Product domain.Product `json:"product"`
}

func (h UpdateProductHandler) Handle(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"product.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"product.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"product.update.notfound",
				"Product not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.update.failed",
			"Failed to retrieve product",
			nil,
		)
	}

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Specifications = req.Specifications
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	product.IsFeatured = req.IsFeatured
	product.SortOrder = req.SortOrder

	if err := h.repository.UpdateProduct(ctx, product); err != nil {
		return nil, httperror.InternalServerError(
			"product.update.failed",
			"An error occurred while updating the product",
			nil,
		)
	}

	h.publishEvent(ctx, product)

	return &UpdateProductResponse{
		Product: product,
	}, nil
}

func (h UpdateProductHandler) publishEvent(ctx context.Context, product domain.Product) {
	if h.eventPublisher != nil {
		eventPayload := events.ProductUpdatedPayload{
			ID:        product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			UpdatedAt: time.Now().UTC(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ProductUpdatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish product.updated event",
				zap.String("productId", product.ID),
				zap.Error(err),
			)
		}
	}
}

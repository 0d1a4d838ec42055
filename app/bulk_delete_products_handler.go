package app

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type BulkDeleteProductsHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewBulkDeleteProductsHandler(repository Repository, eventPublisher events.Publisher) *BulkDeleteProductsHandler {
	return &BulkDeleteProductsHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type BulkDeleteProductsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,dive,uuid"`
}

type BulkDeleteProductsResponse struct {
	Deleted int `json:"deleted"`
}

// Handle removes a set of products by id. IDs that match nothing are
// silently ignored; a deletion event is published per removed row so
// the media worker can clean up blobs.
func (h BulkDeleteProductsHandler) Handle(ctx context.Context, req *BulkDeleteProductsRequest) (*BulkDeleteProductsResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"product.bulk_destroy.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"product.bulk_destroy.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	deleted, err := h.repository.DeleteProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.bulk_destroy.failed",
			"An error occurred while deleting products",
			nil,
		)
	}

	for _, product := range deleted {
		h.publishEvent(ctx, product)
	}

	return &BulkDeleteProductsResponse{
		Deleted: len(deleted),
	}, nil
}

func (h BulkDeleteProductsHandler) publishEvent(ctx context.Context, product domain.Product) {
	if h.eventPublisher != nil {
		eventPayload := events.ProductDeletedPayload{
			ID:        product.ID,
			ImageURL:  product.ImageURL,
			DeletedAt: time.Now().UTC(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ProductDeletedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish product.deleted event",
				zap.String("productId", product.ID),
				zap.Error(err),
			)
		}
	}
}

package app

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

type DeleteProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteProductHandler(repository Repository, eventPublisher events.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteProductRequest struct {
	ProductID string `params:"id" validate:"required,uuid"`
}

type DeleteProductResponse struct {
}

func (h DeleteProductHandler) Handle(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"product.destroy.notfound",
				"Product not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.destroy.failed",
			"Failed to retrieve product",
			nil,
		)
	}

	if err := h.repository.DeleteProduct(ctx, req.ProductID); err != nil {
		return nil, httperror.InternalServerError(
			"product.destroy.failed",
			"An error occurred while deleting the product",
			nil,
		)
	}

	h.publishEvent(ctx, product)

	return nil, httperror.NoContent(
		"product.destroy.success",
		"Product deleted successfully",
		nil,
	)
}

func (h DeleteProductHandler) publishEvent(ctx context.Context, product domain.Product) {
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

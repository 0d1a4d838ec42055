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

type DeleteCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteCategoryHandler(repository Repository, eventPublisher events.Publisher) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteCategoryRequest struct {
	CategoryID string `params:"id" validate:"required,uuid"`
}

type DeleteCategoryResponse struct {
}

// Handle deletes a category. Its products and child categories are
// detached (category_id / parent_id set to NULL) in the same
// transaction, so no dangling references survive.
func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	category, err := h.repository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.destroy.notfound",
				"Category not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"category.destroy.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	if err := h.repository.DeleteCategory(ctx, req.CategoryID); err != nil {
		return nil, httperror.InternalServerError(
			"category.destroy.failed",
			"An error occurred while deleting the category",
			nil,
		)
	}

	h.publishEvent(ctx, category)

	return nil, httperror.NoContent(
		"category.destroy.success",
		"Category deleted successfully",
		nil,
	)
}

func (h DeleteCategoryHandler) publishEvent(ctx context.Context, category domain.Category) {
	if h.eventPublisher != nil {
		eventPayload := events.CategoryDeletedPayload{
			ID:        category.ID,
			ImageURL:  category.ImageURL,
			DeletedAt: time.Now().UTC(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.CategoryDeletedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish category.deleted event",
				zap.String("categoryId", category.ID),
				zap.Error(err),
			)
		}
	}
}

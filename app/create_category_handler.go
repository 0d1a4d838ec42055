package app

import (
	"catalog/app/imports"
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CreateCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required" db:"name"`
	Slug        string  `json:"slug" db:"slug"`
	Description *string `json:"description" db:"description"`
	ImageURL    *string `json:"image_url" db:"image_url"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid" db:"parent_id"`
	SortOrder   int     `json:"sort_order" db:"sort_order"`
}

type CreateCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func NewCreateCategoryHandler(repository Repository, eventPublisher events.Publisher) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"category.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"category.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if req.Slug == "" {
		req.Slug = imports.Slugify(req.Name)
	}

	if _, err := h.repository.GetCategoryBySlug(ctx, req.Slug); err == nil {
		return nil, httperror.Conflict(
			"category.create.slug_taken",
			"A category with this slug already exists",
			nil,
		)
	}

	category, err := h.repository.CreateCategory(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.create.create_failed",
			"An error occurred while creating the category",
			nil,
		)
	}

	h.publishEvent(ctx, category)

	return &CreateCategoryResponse{
		Category: category,
	}, nil
}

func (h CreateCategoryHandler) publishEvent(ctx context.Context, category domain.Category) {
	if h.eventPublisher != nil {
		eventPayload := events.CategoryCreatedPayload{
			ID:        category.ID,
			Name:      category.Name,
			Slug:      category.Slug,
			ParentID:  category.ParentID,
			CreatedAt: category.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.CategoryCreatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish category.created event",
				zap.String("categoryId", category.ID),
				zap.Error(err),
			)
		}
	}
}

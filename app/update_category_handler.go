package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
)

type UpdateCategoryHandler struct {
	repository Repository
}

func NewUpdateCategoryHandler(repository Repository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{
		repository: repository,
	}
}

type UpdateCategoryRequest struct {
	CategoryID  string  `params:"id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func (h UpdateCategoryHandler) Handle(ctx context.Context, req *UpdateCategoryRequest) (*UpdateCategoryResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"category.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"category.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	// A category cannot become its own parent.
	if req.ParentID != nil && *req.ParentID == req.CategoryID {
		return nil, httperror.BadRequest(
			"category.update.self_parent",
			"A category cannot be nested under itself",
			nil,
		)
	}

	category, err := h.repository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.update.notfound",
				"Category not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"category.update.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	category.ImageURL = req.ImageURL
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder

	if err := h.repository.UpdateCategory(ctx, category); err != nil {
		return nil, httperror.InternalServerError(
			"category.update.failed",
			"An error occurred while updating the category",
			nil,
		)
	}

	return &UpdateCategoryResponse{
		Category: category,
	}, nil
}

package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type GetCategoryHandler struct {
	repository Repository
}

func NewGetCategoryHandler(repository Repository) *GetCategoryHandler {
	return &GetCategoryHandler{
		repository: repository,
	}
}

type GetCategoryRequest struct {
	Slug string `params:"slug"`
}

type GetCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func (h GetCategoryHandler) Handle(ctx context.Context, req *GetCategoryRequest) (*GetCategoryResponse, error) {
	category, err := h.repository.GetCategoryBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.show.notfound",
				"Category not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"category.show.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	return &GetCategoryResponse{
		Category: category,
	}, nil
}

package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type GetProductHandler struct {
	repository Repository
}

func NewGetProductHandler(repository Repository) *GetProductHandler {
	return &GetProductHandler{
		repository: repository,
	}
}

type GetProductRequest struct {
	Slug string `params:"slug"`
}

type GetProductResponse struct {
	Product domain.Product `json:"product"`
}

func (h GetProductHandler) Handle(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	product, err := h.repository.GetProductBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"product.show.notfound",
				"Product not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.show.failed",
			"Failed to retrieve product",
			nil,
		)
	}

	return &GetProductResponse{
		Product: product,
	}, nil
}

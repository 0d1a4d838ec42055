package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetFeaturedProductsHandler struct {
	repository Repository
}

func NewGetFeaturedProductsHandler(repository Repository) *GetFeaturedProductsHandler {
	return &GetFeaturedProductsHandler{
		repository: repository,
	}
}

type GetFeaturedProductsRequest struct {
	Limit int `query:"limit"`
}

type GetFeaturedProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h GetFeaturedProductsHandler) Handle(ctx context.Context, req *GetFeaturedProductsRequest) (*GetFeaturedProductsResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 24 {
		limit = 6
	}

	products, err := h.repository.GetFeaturedProducts(ctx, limit)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.featured.failed",
			"Failed to retrieve featured products",
			nil,
		)
	}

	return &GetFeaturedProductsResponse{
		Products: products,
	}, nil
}

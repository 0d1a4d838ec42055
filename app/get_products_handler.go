package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type GetProductsHandler struct {
	repository Repository
}

func NewGetProductsHandler(repository Repository) *GetProductsHandler {
	return &GetProductsHandler{
		repository: repository,
	}
}

type GetProductsRequest struct {
	CategoryID   string `query:"categoryId"`
	CategorySlug string `query:"categorySlug"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
}

type GetProductsResponse struct {
	Products   []domain.Product `json:"products"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

func (h GetProductsHandler) Handle(ctx context.Context, req *GetProductsRequest) (*GetProductsResponse, error) {
	page := max(req.Page, 1)

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize

	var categoryID *string
	if req.CategoryID != "" {
		categoryID = &req.CategoryID
	} else if req.CategorySlug != "" {
		category, err := h.repository.GetCategoryBySlug(ctx, req.CategorySlug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Unknown category yields an empty listing, not an error.
				return &GetProductsResponse{
					Products: []domain.Product{},
					Page:     page,
					PageSize: pageSize,
				}, nil
			}
			return nil, httperror.InternalServerError(
				"product.index.failed",
				"Failed to resolve category",
				nil,
			)
		}
		categoryID = &category.ID
	}

	products, err := h.repository.GetProducts(ctx, categoryID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.failed",
			"Failed to retrieve products",
			nil,
		)
	}

	totalItems, err := h.repository.CountProducts(ctx, categoryID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.count_products.failed",
			"Failed to count products",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetProductsResponse{
		Products:   products,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetCategoriesHandler struct {
	repository Repository
}

func NewGetCategoriesHandler(repository Repository) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		repository: repository,
	}
}

type GetCategoriesRequest struct {
	Flat bool `query:"flat"`
}

type GetCategoriesResponse struct {
	Categories []domain.CategoryNode `json:"categories,omitempty"`
	Flat       []domain.Category     `json:"flat,omitempty"`
}

// Handle returns the category tree (parents with one level of
// subcategories resolved), or the flat sorted list when flat=true is
// requested by the admin UI.
func (h GetCategoriesHandler) Handle(ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, error) {
	categories, err := h.repository.GetCategories(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.index.failed",
			"Failed to retrieve categories",
			nil,
		)
	}

	if req.Flat {
		return &GetCategoriesResponse{Flat: categories}, nil
	}

	return &GetCategoriesResponse{Categories: buildCategoryTree(categories)}, nil
}

func buildCategoryTree(categories []domain.Category) []domain.CategoryNode {
	nodes := make([]domain.CategoryNode, 0)
	for _, c := range categories {
		if c.ParentID != nil {
			continue
		}

		node := domain.CategoryNode{Category: c, Subcategories: []domain.Category{}}
		for _, sub := range categories {
			if sub.ParentID != nil && *sub.ParentID == c.ID {
				node.Subcategories = append(node.Subcategories, sub)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

package app

import (
	"testing"

	"catalog/domain"
)

func TestBuildCategoryTree(t *testing.T) {
	pipes := "pipes"
	fittings := "fittings"

	categories := []domain.Category{
		{ID: pipes, Name: "Pipes", Slug: "pipes"},
		{ID: "k7", Name: "K7 Pipes", Slug: "k7-pipes", ParentID: &pipes},
		{ID: "k9", Name: "K9 Pipes", Slug: "k9-pipes", ParentID: &pipes},
		{ID: fittings, Name: "Fittings", Slug: "fittings"},
		{ID: "orphan", Name: "Orphan", Slug: "orphan", ParentID: strPtr("gone")},
	}

	tree := buildCategoryTree(categories)

	if len(tree) != 2 {
		t.Fatalf("got %d root nodes, want 2", len(tree))
	}

	if tree[0].ID != pipes {
		t.Errorf("first root = %s, want %s", tree[0].ID, pipes)
	}
	if len(tree[0].Subcategories) != 2 {
		t.Errorf("pipes has %d subcategories, want 2", len(tree[0].Subcategories))
	}
	if tree[0].Subcategories[0].ID != "k7" {
		t.Errorf("first subcategory = %s, want k7", tree[0].Subcategories[0].ID)
	}

	if len(tree[1].Subcategories) != 0 {
		t.Errorf("fittings has %d subcategories, want 0", len(tree[1].Subcategories))
	}
}

func TestBuildCategoryTreeEmpty(t *testing.T) {
	tree := buildCategoryTree(nil)
	if tree == nil || len(tree) != 0 {
		t.Errorf("got %v, want an empty non-nil slice", tree)
	}
}

func strPtr(s string) *string { return &s }

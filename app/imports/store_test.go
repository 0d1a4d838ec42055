package imports

import (
	"catalog/domain"
	"context"
	"fmt"
	"strings"
)

// fakeStore is an in-memory Store for pipeline tests.
type fakeStore struct {
	categories   []domain.Category
	created      []domain.Product
	resolveCalls map[string]int
	insertErr    func(rec *ProductRecord) error
	nextID       int
}

func newFakeStore(categories ...domain.Category) *fakeStore {
	return &fakeStore{
		categories:   categories,
		resolveCalls: make(map[string]int),
	}
}

func (s *fakeStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *fakeStore) ResolveCategory(ctx context.Context, rec *CategoryRecord) (domain.Category, bool, error) {
	s.resolveCalls[rec.Slug]++

	for _, c := range s.categories {
		if c.Slug == rec.Slug {
			return c, false, nil
		}
	}

	s.nextID++
	category := domain.Category{
		ID:       fmt.Sprintf("cat-%d", s.nextID),
		Name:     rec.Name,
		Slug:     rec.Slug,
		ParentID: rec.ParentID,
	}
	s.categories = append(s.categories, category)
	return category, true, nil
}

func (s *fakeStore) InsertProduct(ctx context.Context, rec *ProductRecord) (domain.Product, error) {
	if s.insertErr != nil {
		if err := s.insertErr(rec); err != nil {
			return domain.Product{}, err
		}
	}

	s.nextID++
	product := domain.Product{
		ID:             fmt.Sprintf("prod-%d", s.nextID),
		Name:           rec.Name,
		Slug:           rec.Slug,
		Description:    rec.Description,
		Specifications: rec.Specifications,
		ImageURL:       rec.ImageURL,
		CategoryID:     rec.CategoryID,
		IsFeatured:     rec.IsFeatured,
		SortOrder:      rec.SortOrder,
	}
	s.created = append(s.created, product)
	return product, nil
}

func (s *fakeStore) productByName(name string) (domain.Product, bool) {
	for _, p := range s.created {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Product{}, false
}

// fakeBlob records uploads; keys matching failSubstring fail.
type fakeBlob struct {
	uploads       map[string][]byte
	failSubstring string
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{uploads: make(map[string][]byte)}
}

func (b *fakeBlob) Upload(key string, data []byte) error {
	if b.failSubstring != "" && strings.Contains(key, b.failSubstring) {
		return fmt.Errorf("storage rejected %s", key)
	}
	b.uploads[key] = data
	return nil
}

func (b *fakeBlob) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

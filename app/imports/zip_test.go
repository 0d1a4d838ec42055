package imports

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

type zipEntry struct {
	name string
	data string
}

func buildZip(t *testing.T, entries []zipEntry) *zip.Reader {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.data)); err != nil {
			t.Fatalf("writing zip entry %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading zip back: %v", err)
	}
	return r
}

func TestZIPImportFoldersBecomeCategories(t *testing.T) {
	store := newFakeStore()
	blob := newFakeBlob()
	importer := NewZIPImporter(store, blob)

	archive := buildZip(t, []zipEntry{
		{"A/img1.jpg", "one"},
		{"A/img2.png", "two"},
		{"B/img3.jpg", "three"},
	})

	result, err := importer.Run(context.Background(), archive, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.CategoriesCreated != 2 {
		t.Errorf("CategoriesCreated = %d, want 2", result.CategoriesCreated)
	}
	if result.ProductsCreated != 3 {
		t.Errorf("ProductsCreated = %d, want 3", result.ProductsCreated)
	}
	if result.ImagesUploaded != 3 {
		t.Errorf("ImagesUploaded = %d, want 3", result.ImagesUploaded)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}

	var aID, bID string
	for _, c := range store.categories {
		switch c.Slug {
		case "a":
			aID = c.ID
		case "b":
			bID = c.ID
		}
	}
	if aID == "" || bID == "" {
		t.Fatalf("categories a and b were not created: %+v", store.categories)
	}

	for _, p := range store.created {
		wantID := aID
		if p.Name == "img3" {
			wantID = bID
		}
		if p.CategoryID == nil || *p.CategoryID != wantID {
			t.Errorf("product %s category = %v, want %s", p.Name, p.CategoryID, wantID)
		}
	}

	// Category lookup is memoized per distinct folder per run.
	if store.resolveCalls["a"] != 1 {
		t.Errorf("resolve calls for folder A = %d, want 1", store.resolveCalls["a"])
	}
}

func TestZIPImportSortOrderFollowsFolderOrder(t *testing.T) {
	store := newFakeStore()
	importer := NewZIPImporter(store, newFakeBlob())

	archive := buildZip(t, []zipEntry{
		{"A/first.jpg", "1"},
		{"B/other.jpg", "2"},
		{"A/second.jpg", "3"},
	})

	if _, err := importer.Run(context.Background(), archive, nil, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOrder := map[string]int{"first": 0, "second": 1, "other": 0}
	for name, want := range wantOrder {
		p, ok := store.productByName(name)
		if !ok {
			t.Fatalf("product %s was not created", name)
		}
		if p.SortOrder != want {
			t.Errorf("product %s sort_order = %d, want %d", name, p.SortOrder, want)
		}
	}
}

func TestZIPImportIgnoresNonImages(t *testing.T) {
	store := newFakeStore()
	blob := newFakeBlob()
	importer := NewZIPImporter(store, blob)

	archive := buildZip(t, []zipEntry{
		{"A/readme.txt", "not an image"},
		{"A/photo.webp", "image"},
		{"A/nested/", ""},
	})

	result, err := importer.Run(context.Background(), archive, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.ProductsCreated != 1 {
		t.Errorf("ProductsCreated = %d, want 1", result.ProductsCreated)
	}
	if len(blob.uploads) != 1 {
		t.Errorf("uploads = %d, want 1", len(blob.uploads))
	}
}

func TestZIPImportRootFilesAreUncategorized(t *testing.T) {
	store := newFakeStore()
	blob := newFakeBlob()
	importer := NewZIPImporter(store, blob)

	archive := buildZip(t, []zipEntry{
		{"loose-photo.jpg", "img"},
	})

	result, err := importer.Run(context.Background(), archive, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.CategoriesCreated != 0 {
		t.Errorf("CategoriesCreated = %d, want 0 for root-level files", result.CategoriesCreated)
	}

	p, ok := store.productByName("loose photo")
	if !ok {
		t.Fatalf("root-level product was not created: %+v", store.created)
	}
	if p.CategoryID != nil {
		t.Errorf("root-level product category = %v, want nil", *p.CategoryID)
	}

	for key := range blob.uploads {
		if !strings.HasPrefix(key, "products/uncategorized/") {
			t.Errorf("upload key %q should use the uncategorized namespace", key)
		}
	}
}

func TestZIPImportRootFilesUseDefaultParent(t *testing.T) {
	store := newFakeStore()
	importer := NewZIPImporter(store, newFakeBlob())

	archive := buildZip(t, []zipEntry{
		{"loose.jpg", "img"},
	})

	parent := "parent-cat-id"
	if _, err := importer.Run(context.Background(), archive, &parent, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	p := store.created[0]
	if p.CategoryID == nil || *p.CategoryID != parent {
		t.Errorf("category = %v, want default parent %s", p.CategoryID, parent)
	}
}

func TestZIPImportUploadFailureDoesNotStopRun(t *testing.T) {
	store := newFakeStore()
	blob := newFakeBlob()
	blob.failSubstring = "products/bad/"
	importer := NewZIPImporter(store, blob)

	archive := buildZip(t, []zipEntry{
		{"Bad/broken.jpg", "x"},
		{"Good/one.jpg", "y"},
		{"Good/two.jpg", "z"},
	})

	result, err := importer.Run(context.Background(), archive, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Bad/broken.jpg") {
		t.Errorf("error %q should name the failed file", result.Errors[0])
	}
	if result.ProductsCreated != 2 {
		t.Errorf("ProductsCreated = %d, want 2", result.ProductsCreated)
	}
	if result.ImagesUploaded != 2 {
		t.Errorf("ImagesUploaded = %d, want 2", result.ImagesUploaded)
	}

	// No product is created with a broken image reference.
	if _, ok := store.productByName("broken"); ok {
		t.Error("product should not exist for a failed upload")
	}
}

func TestZIPImportReRunReusesCategories(t *testing.T) {
	store := newFakeStore()
	importer := NewZIPImporter(store, newFakeBlob())

	first, err := importer.Run(context.Background(), buildZip(t, []zipEntry{
		{"A/one.jpg", "1"},
	}), nil, nil)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.CategoriesCreated != 1 {
		t.Fatalf("first run CategoriesCreated = %d, want 1", first.CategoriesCreated)
	}

	second, err := importer.Run(context.Background(), buildZip(t, []zipEntry{
		{"A/two.jpg", "2"},
	}), nil, nil)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if second.CategoriesCreated != 0 {
		t.Errorf("second run CategoriesCreated = %d, want 0 (existing category reused)", second.CategoriesCreated)
	}

	one, _ := store.productByName("one")
	two, _ := store.productByName("two")
	if one.CategoryID == nil || two.CategoryID == nil || *one.CategoryID != *two.CategoryID {
		t.Errorf("both runs should resolve to the same category: %v vs %v", one.CategoryID, two.CategoryID)
	}
}

func TestZIPImportProgressReporting(t *testing.T) {
	store := newFakeStore()
	importer := NewZIPImporter(store, newFakeBlob())

	archive := buildZip(t, []zipEntry{
		{"A/one.jpg", "1"},
		{"A/two.jpg", "2"},
	})

	var updates []Progress
	_, err := importer.Run(context.Background(), archive, nil, func(p Progress) {
		updates = append(updates, p)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("progress updates = %d, want 2", len(updates))
	}
	if updates[0].Processed != 1 || updates[0].Total != 2 || updates[0].CurrentFile != "A/one.jpg" {
		t.Errorf("first update = %+v", updates[0])
	}
	if updates[1].Processed != 2 || updates[1].Total != 2 {
		t.Errorf("last update = %+v", updates[1])
	}
}

func TestProductNameFromFile(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A/ductile_iron-pipe.jpg", "ductile iron pipe"},
		{"manhole  cover.png", "manhole cover"},
		{"B/K7.Class.150mm.webp", "K7 Class 150mm"},
	}

	for _, tt := range tests {
		if got := productNameFromFile(tt.input); got != tt.want {
			t.Errorf("productNameFromFile(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

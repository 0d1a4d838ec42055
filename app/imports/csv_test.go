package imports

import (
	"catalog/domain"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCSVImportMissingNameColumn(t *testing.T) {
	store := newFakeStore()
	importer := NewCSVImporter(store)

	_, err := importer.Run(context.Background(), strings.NewReader("category_slug,description\ncat-x,hello\n"))
	if err == nil {
		t.Fatal("expected a structural error for a csv without a name column")
	}

	if len(store.created) != 0 {
		t.Errorf("no rows should be processed on structural error, got %d", len(store.created))
	}
}

func TestCSVImportEmptyFile(t *testing.T) {
	importer := NewCSVImporter(newFakeStore())

	if _, err := importer.Run(context.Background(), strings.NewReader("")); err == nil {
		t.Fatal("expected an error for an empty csv")
	}
}

func TestCSVImportScenario(t *testing.T) {
	catX := domain.Category{ID: "cat-x-id", Name: "Cat X", Slug: "cat-x"}
	store := newFakeStore(catX)
	importer := NewCSVImporter(store)

	csv := strings.Join([]string{
		"name,category_slug,is_featured,sort_order",
		`"Pipe A",cat-x,true,1`,
		`"",cat-x,false,2`,
		`"Pipe B",missing-cat,false,3`,
	}, "\n")

	result, err := importer.Run(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Failed != 0 {
		t.Errorf("Failed = %d, want 0", result.Failed)
	}

	pipeA, ok := store.productByName("Pipe A")
	if !ok {
		t.Fatal("Pipe A was not created")
	}
	if pipeA.CategoryID == nil || *pipeA.CategoryID != "cat-x-id" {
		t.Errorf("Pipe A category = %v, want cat-x-id", pipeA.CategoryID)
	}
	if !pipeA.IsFeatured {
		t.Error("Pipe A should be featured")
	}
	if pipeA.SortOrder != 1 {
		t.Errorf("Pipe A sort_order = %d, want 1", pipeA.SortOrder)
	}

	pipeB, ok := store.productByName("Pipe B")
	if !ok {
		t.Fatal("Pipe B was not created")
	}
	if pipeB.CategoryID != nil {
		t.Errorf("unknown category_slug should leave category nil, got %v", *pipeB.CategoryID)
	}
}

func TestCSVImportQuotedCommas(t *testing.T) {
	store := newFakeStore()
	importer := NewCSVImporter(store)

	csv := "name,description\n\"Valve, gate type\",\"Cast iron, 100mm\"\n"

	result, err := importer.Run(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Created != 1 {
		t.Fatalf("Created = %d, want 1", result.Created)
	}

	product := store.created[0]
	if product.Name != "Valve, gate type" {
		t.Errorf("Name = %q, quoted comma should not split the field", product.Name)
	}
	if product.Description == nil || *product.Description != "Cast iron, 100mm" {
		t.Errorf("Description = %v, want %q", product.Description, "Cast iron, 100mm")
	}
}

func TestCSVImportRowCount(t *testing.T) {
	store := newFakeStore()
	importer := NewCSVImporter(store)

	csv := "name\nA\nB\n\nC\n"

	result, err := importer.Run(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Created != 3 {
		t.Errorf("Created = %d, want 3 (blank rows skipped silently)", result.Created)
	}
	if result.Failed != 0 {
		t.Errorf("Failed = %d, want 0", result.Failed)
	}
}

func TestCSVImportBadSortOrderDefaultsToZero(t *testing.T) {
	store := newFakeStore()
	importer := NewCSVImporter(store)

	csv := "name,sort_order\nPipe,notanumber\n"

	if _, err := importer.Run(context.Background(), strings.NewReader(csv)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if store.created[0].SortOrder != 0 {
		t.Errorf("sort_order = %d, want 0 on parse failure", store.created[0].SortOrder)
	}
}

func TestCSVImportMalformedRowFailsAlone(t *testing.T) {
	store := newFakeStore()
	importer := NewCSVImporter(store)

	// The bare quote in an unquoted field makes the middle row
	// unparseable; the rows around it still import.
	csv := "name,description\n" +
		"Manhole Cover,standard\n" +
		`6" Ductile Pipe,inch marks` + "\n" +
		"Flange Adapter,ok\n"

	result, err := importer.Run(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry", result.Errors)
	}

	if _, ok := store.productByName("Manhole Cover"); !ok {
		t.Error("row before the malformed one was not created")
	}
	if _, ok := store.productByName("Flange Adapter"); !ok {
		t.Error("row after the malformed one was not created")
	}
}

func TestCSVImportRowFailureContinues(t *testing.T) {
	store := newFakeStore()
	store.insertErr = func(rec *ProductRecord) error {
		if rec.Name == "Bad" {
			return errors.New("insert rejected")
		}
		return nil
	}
	importer := NewCSVImporter(store)

	csv := "name\nGood\nBad\nAlso Good\n"

	result, err := importer.Run(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Bad") {
		t.Errorf("error message %q should name the failed row", result.Errors[0])
	}
}

func TestTemplateHeader(t *testing.T) {
	template := string(Template())

	want := "name,category_slug,description,specifications,image_url,is_featured,sort_order\n"
	if template != want {
		t.Errorf("Template() = %q, want %q", template, want)
	}
}

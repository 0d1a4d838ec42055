package imports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// TemplateColumns is the recognized column set, in template order.
// Only "name" is mandatory.
var TemplateColumns = []string{
	"name",
	"category_slug",
	"description",
	"specifications",
	"image_url",
	"is_featured",
	"sort_order",
}

// Template returns the downloadable CSV template (header row only).
func Template() []byte {
	return []byte(strings.Join(TemplateColumns, ",") + "\n")
}

type CSVResult struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// CSVImporter turns CSV rows into product rows, one create call per
// row. Categories are matched against the existing set by slug and
// never created from CSV.
type CSVImporter struct {
	store Store
}

func NewCSVImporter(store Store) *CSVImporter {
	return &CSVImporter{
		store: store,
	}
}

// Run parses the CSV and inserts one product per data row. A missing
// name column aborts before any row is processed; per-row failures,
// malformed rows included, are tallied and the run continues. Rows
// with an empty name are skipped without counting as errors.
func (i *CSVImporter) Run(ctx context.Context, r io.Reader) (*CSVResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("malformed csv header: %w", err)
	}

	columns := headerIndex(header)
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("csv is missing the required %q column", "name")
	}

	categories, err := i.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	categoryBySlug := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryBySlug[c.Slug] = c.ID
	}

	result := &CSVResult{Errors: []string{}}

	for n := 2; ; n++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row fails alone; the reader resumes at the
			// next record.
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", n, err))
			zap.L().Warn("CSV import row malformed",
				zap.Int("row", n),
				zap.Error(err),
			)
			continue
		}

		name := cell(row, columns, "name")
		if name == "" {
			continue
		}

		rec := &ProductRecord{
			Name:       name,
			Slug:       ProductSlug(name),
			IsFeatured: strings.EqualFold(cell(row, columns, "is_featured"), "true"),
		}

		if v := cell(row, columns, "description"); v != "" {
			rec.Description = &v
		}
		if v := cell(row, columns, "specifications"); v != "" {
			rec.Specifications = &v
		}
		if v := cell(row, columns, "image_url"); v != "" {
			rec.ImageURL = &v
		}
		if v := cell(row, columns, "sort_order"); v != "" {
			if order, err := strconv.Atoi(v); err == nil {
				rec.SortOrder = order
			}
		}
		if slug := cell(row, columns, "category_slug"); slug != "" {
			if id, ok := categoryBySlug[slug]; ok {
				rec.CategoryID = &id
			}
		}

		if _, err := i.store.InsertProduct(ctx, rec); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", n, name, err))
			zap.L().Warn("CSV import row failed",
				zap.Int("row", n),
				zap.String("name", name),
				zap.Error(err),
			)
			continue
		}

		result.Created++
	}

	return result, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return columns
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

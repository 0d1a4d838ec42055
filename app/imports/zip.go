package imports

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uncategorizedNamespace is the storage namespace for root-level
// images that belong to no folder.
const uncategorizedNamespace = "uncategorized"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

type ZIPResult struct {
	CategoriesCreated int      `json:"categoriesCreated"`
	ProductsCreated   int      `json:"productsCreated"`
	ImagesUploaded    int      `json:"imagesUploaded"`
	Errors            []string `json:"errors"`
}

// Progress is emitted after each file completes, success or failure.
type Progress struct {
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	CurrentFile string `json:"currentFile"`
}

type ProgressFunc func(Progress)

// ZIPImporter ingests an archive where each top-level folder is a
// category and each image file inside it is one product. The run is
// not transactional: per-file failures are recorded and the rest of
// the archive is still processed.
type ZIPImporter struct {
	store Store
	blob  Blob
}

func NewZIPImporter(store Store, blob Blob) *ZIPImporter {
	return &ZIPImporter{
		store: store,
		blob:  blob,
	}
}

// resolved memoizes one category lookup per distinct folder per run.
type resolved struct {
	id *string
}

func (i *ZIPImporter) Run(ctx context.Context, archive *zip.Reader, defaultParentID *string, onProgress ProgressFunc) (*ZIPResult, error) {
	files := make([]*zip.File, 0, len(archive.File))
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(path.Ext(f.Name))] {
			continue
		}
		files = append(files, f)
	}

	result := &ZIPResult{Errors: []string{}}

	categories := make(map[string]resolved)
	folderIndex := make(map[string]int)

	for n, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		folder := topLevelFolder(f.Name)
		index := folderIndex[folder]
		folderIndex[folder] = index + 1

		i.processFile(ctx, f, folder, index, defaultParentID, categories, result)

		if onProgress != nil {
			onProgress(Progress{
				Processed:   n + 1,
				Total:       len(files),
				CurrentFile: f.Name,
			})
		}
	}

	return result, nil
}

func (i *ZIPImporter) processFile(
	ctx context.Context,
	f *zip.File,
	folder string,
	index int,
	defaultParentID *string,
	categories map[string]resolved,
	result *ZIPResult,
) {
	categoryID := i.resolveFolder(ctx, folder, defaultParentID, categories, result)

	data, err := readEntry(f)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: read failed: %v", f.Name, err))
		return
	}

	ext := strings.ToLower(path.Ext(f.Name))
	namespace := uncategorizedNamespace
	if folder != "" {
		namespace = Slugify(folder)
	}
	key := fmt.Sprintf("products/%s/%d-%s%s", namespace, time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	if err := i.blob.Upload(key, data); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: upload failed: %v", f.Name, err))
		zap.L().Warn("ZIP import upload failed",
			zap.String("file", f.Name),
			zap.Error(err),
		)
		return
	}
	result.ImagesUploaded++

	name := productNameFromFile(f.Name)
	imageURL := i.blob.PublicURL(key)

	rec := &ProductRecord{
		Name:       name,
		Slug:       ProductSlug(name),
		ImageURL:   &imageURL,
		CategoryID: categoryID,
		SortOrder:  index,
	}

	if _, err := i.store.InsertProduct(ctx, rec); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: product creation failed: %v", f.Name, err))
		zap.L().Warn("ZIP import insert failed",
			zap.String("file", f.Name),
			zap.Error(err),
		)
		return
	}
	result.ProductsCreated++
}

// resolveFolder returns the category id for a folder, consulting the
// store at most once per distinct folder name per run. Root-level
// files fall back to the caller-supplied default parent.
func (i *ZIPImporter) resolveFolder(
	ctx context.Context,
	folder string,
	defaultParentID *string,
	categories map[string]resolved,
	result *ZIPResult,
) *string {
	if folder == "" {
		return defaultParentID
	}

	slug := Slugify(folder)
	if r, ok := categories[slug]; ok {
		return r.id
	}

	category, created, err := i.store.ResolveCategory(ctx, &CategoryRecord{
		Name:     folder,
		Slug:     slug,
		ParentID: defaultParentID,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("folder %s: category resolution failed: %v", folder, err))
		categories[slug] = resolved{}
		return nil
	}

	if created {
		result.CategoriesCreated++
	}

	categories[slug] = resolved{id: &category.ID}
	return &category.ID
}

func topLevelFolder(name string) string {
	clean := strings.Trim(path.Clean(name), "/")
	if i := strings.IndexByte(clean, '/'); i > 0 {
		return clean[:i]
	}
	return ""
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// productNameFromFile derives a display name from a file name: the
// extension is stripped and separator runs become single spaces.
func productNameFromFile(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}

package app

import (
	"archive/zip"
	"bytes"
	"catalog/app/imports"
	"catalog/pkg/aws"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportZIPHandler struct {
	store          imports.Store
	eventPublisher events.Publisher
}

func NewImportZIPHandler(store imports.Store, eventPublisher events.Publisher) *ImportZIPHandler {
	return &ImportZIPHandler{
		store:          store,
		eventPublisher: eventPublisher,
	}
}

type ImportZIPRequest struct {
}

type ImportZIPResponse struct {
	CategoriesCreated int      `json:"categoriesCreated"`
	ProductsCreated   int      `json:"productsCreated"`
	ImagesUploaded    int      `json:"imagesUploaded"`
	Errors            []string `json:"errors"`
}

func (h *ImportZIPHandler) Handle(ctx context.Context, req *ImportZIPRequest) (*ImportZIPResponse, error) {
	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, httperror.InternalServerError("import.zip.no_context", "Fiber context not found", nil)
	}

	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, httperror.InternalServerError("import.zip.invalid_context", "Invalid Fiber context", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, httperror.BadRequest("import.zip.missing_file", "ZIP file is required (use 'file' field)", fiber.Map{"error": err.Error()})
	}

	// Validate archive size (max 100MB)
	const maxFileSize = 100 * 1024 * 1024
	if file.Size > maxFileSize {
		return nil, httperror.BadRequest("import.zip.file_too_large", "Archive must not exceed 100MB",
			fiber.Map{
				"size_mb": float64(file.Size) / 1024 / 1024,
				"max_mb":  100,
			})
	}

	var defaultParentID *string
	if v := c.FormValue("parentCategoryId"); v != "" {
		defaultParentID = &v
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError("import.zip.file_open_error", "Failed to open uploaded file", err.Error())
	}
	defer fileReader.Close()

	fileBytes, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, httperror.InternalServerError("import.zip.file_read_error", "Failed to read archive content", err.Error())
	}

	archive, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, httperror.BadRequest("import.zip.invalid_archive", "File is not a valid ZIP archive", err.Error())
	}

	importer := imports.NewZIPImporter(h.store, aws.NewS3Bucket())

	result, err := importer.Run(ctx, archive, defaultParentID, func(p imports.Progress) {
		zap.L().Info("ZIP import progress",
			zap.Int("processed", p.Processed),
			zap.Int("total", p.Total),
			zap.String("file", p.CurrentFile),
		)
	})
	if err != nil {
		return nil, httperror.InternalServerError("import.zip.failed", "ZIP import was interrupted", err.Error())
	}

	zap.L().Info("ZIP import completed",
		zap.String("file", file.Filename),
		zap.Int("categoriesCreated", result.CategoriesCreated),
		zap.Int("productsCreated", result.ProductsCreated),
		zap.Int("imagesUploaded", result.ImagesUploaded),
		zap.Int("errors", len(result.Errors)),
	)

	h.publishEvent(ctx, result)

	return &ImportZIPResponse{
		CategoriesCreated: result.CategoriesCreated,
		ProductsCreated:   result.ProductsCreated,
		ImagesUploaded:    result.ImagesUploaded,
		Errors:            result.Errors,
	}, nil
}

func (h *ImportZIPHandler) publishEvent(ctx context.Context, result *imports.ZIPResult) {
	if h.eventPublisher != nil {
		eventPayload := events.ImportCompletedPayload{
			Source:            "zip",
			CategoriesCreated: result.CategoriesCreated,
			ProductsCreated:   result.ProductsCreated,
			ImagesUploaded:    result.ImagesUploaded,
			Failed:            len(result.Errors),
			CompletedAt:       time.Now().UTC(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ImportCompletedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish catalog.import.completed event",
				zap.Error(err),
			)
		}
	}
}

package app

import (
	"catalog/app/imports"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportCSVHandler struct {
	store          imports.Store
	eventPublisher events.Publisher
}

func NewImportCSVHandler(store imports.Store, eventPublisher events.Publisher) *ImportCSVHandler {
	return &ImportCSVHandler{
		store:          store,
		eventPublisher: eventPublisher,
	}
}

type ImportCSVRequest struct {
}

type ImportCSVResponse struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

func (h *ImportCSVHandler) Handle(ctx context.Context, req *ImportCSVRequest) (*ImportCSVResponse, error) {
	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, httperror.InternalServerError("import.csv.no_context", "Fiber context not found", nil)
	}

	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, httperror.InternalServerError("import.csv.invalid_context", "Invalid Fiber context", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, httperror.BadRequest("import.csv.missing_file", "CSV file is required (use 'file' field)", fiber.Map{"error": err.Error()})
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError("import.csv.file_open_error", "Failed to open uploaded file", err.Error())
	}
	defer fileReader.Close()

	importer := imports.NewCSVImporter(h.store)

	result, err := importer.Run(ctx, fileReader)
	if err != nil {
		return nil, httperror.BadRequest("import.csv.failed", "CSV import could not run", err.Error())
	}

	zap.L().Info("CSV import completed",
		zap.String("file", file.Filename),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
	)

	h.publishEvent(ctx, result)

	return &ImportCSVResponse{
		Created: result.Created,
		Failed:  result.Failed,
		Errors:  result.Errors,
	}, nil
}

func (h *ImportCSVHandler) publishEvent(ctx context.Context, result *imports.CSVResult) {
	if h.eventPublisher != nil {
		eventPayload := events.ImportCompletedPayload{
			Source:          "csv",
			ProductsCreated: result.Created,
			Failed:          result.Failed,
			CompletedAt:     time.Now().UTC(),
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

package app

import (
	"catalog/pkg/aws"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadProductImageHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewUploadProductImageHandler(repository Repository, eventPublisher events.Publisher) *UploadProductImageHandler {
	return &UploadProductImageHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type UploadProductImageRequest struct {
	ProductID string `params:"id"`
}

type UploadProductImageResponse struct {
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

func (h *UploadProductImageHandler) Handle(ctx context.Context, req *UploadProductImageRequest) (*UploadProductImageResponse, error) {
	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, httperror.InternalServerError("upload.no_context", "Fiber context not found", nil)
	}

	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, httperror.InternalServerError("upload.invalid_context", "Invalid Fiber context", nil)
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("product.upload_image.not_found", "Product not found.", nil)
		}
		return nil, httperror.InternalServerError("product.upload_image.failed", "Failed to retrieve product", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, httperror.BadRequest("upload.missing_file", "Image file is required (use 'image' field)", fiber.Map{"error": err.Error()})
	}

	// Validate file size (max 5MB)
	const maxFileSize = 5 * 1024 * 1024
	if file.Size > maxFileSize {
		return nil, httperror.BadRequest("upload.file_too_large", "File size must not exceed 5MB",
			fiber.Map{
				"size_mb": float64(file.Size) / 1024 / 1024,
				"max_mb":  5,
			})
	}

	contentType := file.Header.Get("Content-Type")

	allowedTypes := map[string]bool{
		"image/png":     true,
		"image/jpeg":    true,
		"image/jpg":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
	}
	if !allowedTypes[contentType] {
		return nil, httperror.BadRequest("upload.invalid_content_type", "Only PNG, JPEG, GIF, WEBP and SVG images are allowed",
			fiber.Map{
				"received": contentType,
			})
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError("upload.file_open_error", "Failed to open uploaded file", err.Error())
	}
	defer fileReader.Close()

	fileBytes, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, httperror.InternalServerError("upload.file_read_error", "Failed to read file content", err.Error())
	}

	return h.processUpload(ctx, product.ID, product.ImageURL, fileBytes, contentType)
}

func (h *UploadProductImageHandler) processUpload(ctx context.Context, productID string, oldImageURL *string, imageData []byte, contentType string) (*UploadProductImageResponse, error) {
	extension := getExtensionFromContentType(contentType)

	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), extension)

	bucket := aws.NewS3Bucket()

	if err := bucket.Upload(key, imageData); err != nil {
		return nil, httperror.InternalServerError("product.upload_image.upload_failed", "Failed to upload image to storage", err.Error())
	}

	imageURL := bucket.PublicURL(key)

	product, err := h.repository.GetProduct(ctx, productID)
	if err != nil {
		_ = bucket.Delete(key)
		return nil, httperror.InternalServerError("product.upload_image.store_failed", "Failed to load product for update", err.Error())
	}

	product.ImageURL = &imageURL
	if err := h.repository.UpdateProduct(ctx, product); err != nil {
		_ = bucket.Delete(key)
		return nil, httperror.InternalServerError("product.upload_image.store_failed", "Failed to save image reference", err.Error())
	}

	h.publishEvent(ctx, productID, imageURL, oldImageURL)

	return &UploadProductImageResponse{
		ProductID: productID,
		ImageURL:  imageURL,
	}, nil
}

func (h *UploadProductImageHandler) publishEvent(ctx context.Context, productID, imageURL string, oldImageURL *string) {
	if h.eventPublisher != nil {
		eventPayload := events.ProductImageUploadedPayload{
			ProductID:   productID,
			ImageURL:    imageURL,
			OldImageURL: oldImageURL,
			UploadedAt:  time.Now().UTC(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ProductImageUploadedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish product.image.uploaded event",
				zap.String("productId", productID),
				zap.Error(err),
			)
		}
	}
}

func getExtensionFromContentType(contentType string) string {
	switch contentType {
	case "image/svg+xml":
		return ".svg"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

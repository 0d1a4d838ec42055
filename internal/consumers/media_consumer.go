package consumers

import (
	"catalog/pkg/aws"
	"catalog/pkg/events"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Blob is the storage surface the cleanup handler needs.
type Blob interface {
	Delete(key string) error
}

// MediaCleanupHandler removes orphaned blobs after catalog rows go
// away: deleted products and categories, and images superseded by a
// re-upload. Rows are deleted first and blobs cleaned up async, so a
// failed cleanup leaves a stray file, never a broken reference.
type MediaCleanupHandler struct {
	blob   Blob
	logger *zap.Logger
}

func NewMediaCleanupHandler(blob Blob, logger *zap.Logger) *MediaCleanupHandler {
	return &MediaCleanupHandler{
		blob:   blob,
		logger: logger,
	}
}

func (h *MediaCleanupHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	h.logger.Info("Catalog event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.ProductDeletedEvent:
		return h.handleProductDeleted(event)
	case events.CategoryDeletedEvent:
		return h.handleCategoryDeleted(event)
	case events.ProductImageUploadedEvent:
		return h.handleImageSuperseded(event)
	default:
		// Other catalog events need no media work.
		return nil
	}
}

func (h *MediaCleanupHandler) handleProductDeleted(event *events.Event) error {
	var payload events.ProductDeletedPayload
	if err := decodePayload(event, &payload); err != nil {
		return err
	}

	return h.deleteImage(payload.ImageURL, "productId", payload.ID)
}

func (h *MediaCleanupHandler) handleCategoryDeleted(event *events.Event) error {
	var payload events.CategoryDeletedPayload
	if err := decodePayload(event, &payload); err != nil {
		return err
	}

	return h.deleteImage(payload.ImageURL, "categoryId", payload.ID)
}

// handleImageSuperseded deletes the previous image after a product
// got a new one.
func (h *MediaCleanupHandler) handleImageSuperseded(event *events.Event) error {
	var payload events.ProductImageUploadedPayload
	if err := decodePayload(event, &payload); err != nil {
		return err
	}

	return h.deleteImage(payload.OldImageURL, "productId", payload.ProductID)
}

func (h *MediaCleanupHandler) deleteImage(imageURL *string, idField, id string) error {
	if imageURL == nil || *imageURL == "" {
		return nil
	}

	key := aws.KeyFromURL(*imageURL)
	if key == "" {
		// Externally hosted image; nothing to clean up.
		h.logger.Debug("Skipping cleanup of external image",
			zap.String(idField, id),
			zap.String("imageUrl", *imageURL),
		)
		return nil
	}

	if err := h.blob.Delete(key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}

	h.logger.Info("Deleted orphaned image",
		zap.String(idField, id),
		zap.String("key", key),
	)

	return nil
}

func decodePayload(event *events.Event, out any) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	if err := json.Unmarshal(payloadBytes, out); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}

	return nil
}

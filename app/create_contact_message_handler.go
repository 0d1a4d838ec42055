package app

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CreateContactMessageHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required" db:"name"`
	Email   string `json:"email" validate:"required,email" db:"email"`
	Phone   string `json:"phone" validate:"required" db:"phone"`
	Message string `json:"message" validate:"required" db:"message"`
}

type CreateContactMessageResponse struct {
	ContactMessage domain.ContactMessage `json:"contact_message"`
}

func NewCreateContactMessageHandler(repository Repository, eventPublisher events.Publisher) *CreateContactMessageHandler {
	return &CreateContactMessageHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

func (h CreateContactMessageHandler) Handle(ctx context.Context, req *CreateContactMessageRequest) (*CreateContactMessageResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"contact.create.validation_failed",
				"Please fill in all fields with a valid email address",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"contact.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	message, err := h.repository.CreateContactMessage(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"contact.create.create_failed",
			"An error occurred while sending your message",
			nil,
		)
	}

	h.publishEvent(ctx, message)

	return &CreateContactMessageResponse{
		ContactMessage: message,
	}, nil
}

func (h CreateContactMessageHandler) publishEvent(ctx context.Context, message domain.ContactMessage) {
	if h.eventPublisher != nil {
		eventPayload := events.ContactMessagePayload{
			ID:        message.ID,
			Name:      message.Name,
			Email:     message.Email,
			CreatedAt: message.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.ContactMessageEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish contact.message.created event",
				zap.String("messageId", message.ID),
				zap.Error(err),
			)
		}
	}
}

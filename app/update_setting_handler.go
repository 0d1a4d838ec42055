package app

import (
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
)

// SettingKeys is the closed set of keys the site renders. Unknown
// keys are rejected rather than silently inserted.
var SettingKeys = map[string]bool{
	"company_name": true,
	"tagline":      true,
	"phone":        true,
	"email":        true,
	"whatsapp":     true,
	"address":      true,
	"logo_url":     true,
}

type UpdateSettingHandler struct {
	repository Repository
}

func NewUpdateSettingHandler(repository Repository) *UpdateSettingHandler {
	return &UpdateSettingHandler{
		repository: repository,
	}
}

type UpdateSettingRequest struct {
	Key   string `params:"key" validate:"required"`
	Value string `json:"value"`
}

type UpdateSettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h UpdateSettingHandler) Handle(ctx context.Context, req *UpdateSettingRequest) (*UpdateSettingResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"settings.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"settings.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if !SettingKeys[req.Key] {
		return nil, httperror.BadRequest(
			"settings.update.unknown_key",
			"Unknown setting key",
			nil,
		)
	}

	if err := h.repository.UpdateSetting(ctx, req.Key, req.Value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"settings.update.notfound",
				"Setting not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"settings.update.failed",
			"An error occurred while updating the setting",
			nil,
		)
	}

	return &UpdateSettingResponse{
		Key:   req.Key,
		Value: req.Value,
	}, nil
}

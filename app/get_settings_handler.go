package app

import (
	"catalog/pkg/httperror"
	"context"
)

type GetSettingsHandler struct {
	repository Repository
}

func NewGetSettingsHandler(repository Repository) *GetSettingsHandler {
	return &GetSettingsHandler{
		repository: repository,
	}
}

type GetSettingsRequest struct {
}

type GetSettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// Handle returns site settings as a key/value map, the shape the
// public site consumes them in.
func (h GetSettingsHandler) Handle(ctx context.Context, req *GetSettingsRequest) (*GetSettingsResponse, error) {
	settings, err := h.repository.GetSettings(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"settings.index.failed",
			"Failed to retrieve settings",
			nil,
		)
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		if s.Value != nil {
			values[s.Key] = *s.Value
		} else {
			values[s.Key] = ""
		}
	}

	return &GetSettingsResponse{
		Settings: values,
	}, nil
}

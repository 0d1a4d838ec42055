package app

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetContactMessagesHandler struct {
	repository Repository
}

func NewGetContactMessagesHandler(repository Repository) *GetContactMessagesHandler {
	return &GetContactMessagesHandler{
		repository: repository,
	}
}

type GetContactMessagesRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type GetContactMessagesResponse struct {
	Messages   []domain.ContactMessage `json:"messages"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalItems int                     `json:"totalItems"`
	TotalPages int                     `json:"totalPages"`
}

func (h GetContactMessagesHandler) Handle(ctx context.Context, req *GetContactMessagesRequest) (*GetContactMessagesResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 10)

	offset := (page - 1) * pageSize

	messages, err := h.repository.GetContactMessages(ctx, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"contact.index.failed",
			"Failed to retrieve contact messages",
			nil,
		)
	}

	totalItems, err := h.repository.CountContactMessages(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"contact.count_messages.failed",
			"Failed to count contact messages",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetContactMessagesResponse{
		Messages:   messages,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

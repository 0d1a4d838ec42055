package app

import (
	"catalog/pkg/auth"
	"catalog/pkg/httperror"
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type LoginHandler struct {
	passwordHash string
	tokenIssuer  *auth.TokenIssuer
}

func NewLoginHandler(passwordHash string, tokenIssuer *auth.TokenIssuer) *LoginHandler {
	return &LoginHandler{
		passwordHash: passwordHash,
		tokenIssuer:  tokenIssuer,
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h LoginHandler) Handle(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"auth.login.validation_failed",
				"Password is required",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"auth.login.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if h.passwordHash == "" {
		zap.L().Error("Admin login attempted without ADMIN_PASSWORD_HASH configured")
		return nil, httperror.InternalServerError(
			"auth.login.not_configured",
			"Admin access is not configured",
			nil,
		)
	}

	if !auth.CheckPassword(h.passwordHash, req.Password) {
		return nil, httperror.Unauthorized(
			"auth.login.invalid_password",
			"Invalid password",
			nil,
		)
	}

	return &LoginResponse{
		Token: h.tokenIssuer.Issue(),
	}, nil
}

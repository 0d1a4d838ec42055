package middleware

import (
	"catalog/pkg/auth"
	"catalog/pkg/httperror"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAdminAuthMiddleware gates admin routes on a signed bearer token.
// Any auth failure aborts before handler work starts.
func NewAdminAuthMiddleware(issuer *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Get("Authorization"))
		token = strings.TrimPrefix(token, "Bearer ")

		if token == "" {
			return unauthorized(c, "catalog.admin_auth.missing_token", "Admin token is required")
		}

		if err := issuer.Validate(token); err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return unauthorized(c, "catalog.admin_auth.expired_token", "Admin token has expired")
			}
			return unauthorized(c, "catalog.admin_auth.invalid_token", "Admin token is invalid")
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	err := httperror.Unauthorized(code, message, nil)

	return c.Status(err.Status).JSON(fiber.Map{
		"code":    err.Code,
		"message": err.Message,
	})
}

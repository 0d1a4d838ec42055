package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"catalog/pkg/auth"
)

func TestAdminAuthMiddleware(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	expired := auth.NewTokenIssuer("test-secret", -time.Minute)
	otherSecret := auth.NewTokenIssuer("another-secret", time.Hour)

	app := fiber.New()
	app.Use(NewAdminAuthMiddleware(issuer))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + issuer.Issue(), fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"expired token", "Bearer " + expired.Issue(), fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherSecret.Issue(), fiber.StatusUnauthorized},
		{"garbage token", "Bearer nonsense", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"fin-assistant/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(m *auth.JWTManager) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(m, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string) + "|" + c.Locals(LocalEmail).(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	m := auth.NewJWTManager("secret", time.Hour, time.Hour)
	token, err := m.GenerateToken("42", "an", "an@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", fiber.StatusUnauthorized, ""},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized, ""},
		{"bearer token", "Bearer " + token, fiber.StatusOK, "42|an@example.com"},
		{"raw token", token, fiber.StatusOK, "42|an@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(m)
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			if tc.body != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				require.Equal(t, tc.body, string(body))
			}
		})
	}
}

package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(tokens *jwtPkg.TokenManager) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(tokens))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"email":   c.Locals("userEmail"),
		})
	})
	return app
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := jwtPkg.NewTokenManager("test-secret", "quantumcloud")
	app := newProtectedApp(tokens)

	token, err := tokens.GenerateToken("ada@example.com", 7)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := newProtectedApp(jwtPkg.NewTokenManager("test-secret", "quantumcloud"))

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareBadScheme(t *testing.T) {
	app := newProtectedApp(jwtPkg.NewTokenManager("test-secret", "quantumcloud"))

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := newProtectedApp(jwtPkg.NewTokenManager("test-secret", "quantumcloud"))

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareTokenFromOtherSecret(t *testing.T) {
	otherTokens := jwtPkg.NewTokenManager("other-secret", "quantumcloud")
	app := newProtectedApp(jwtPkg.NewTokenManager("test-secret", "quantumcloud"))

	token, err := otherTokens.GenerateToken("ada@example.com", 7)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

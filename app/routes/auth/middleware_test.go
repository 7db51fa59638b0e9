package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

func newProtectedApp(allowed ...models.UserRole) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware, RoleMiddleware(allowed...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func authedRequest(t *testing.T, user *models.User) *http.Request {
	t.Helper()
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	app := newProtectedApp(models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	app := newProtectedApp(models.RoleAdmin)

	token, err := GenerateJWT(&models.User{ID: "u1", Email: "a@kkamhs.edu", Role: models.RoleAdmin})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleMiddlewareAllowsMatchingRole(t *testing.T) {
	app := newProtectedApp(models.RoleAdmin, models.RoleTeacher)

	resp, err := app.Test(authedRequest(t, &models.User{ID: "u2", Email: "t@kkamhs.edu", Role: models.RoleTeacher}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleMiddlewareForbidsOtherRoles(t *testing.T) {
	app := newProtectedApp(models.RoleAdmin)

	resp, err := app.Test(authedRequest(t, &models.User{ID: "u3", Email: "t@kkamhs.edu", Role: models.RoleTeacher}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

const testSecret = "secreto-de-test"

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c),
			"role":    GetRole(c),
		})
	})
	app.Get("/protegido", chain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(AuthMiddleware(testSecret))

	t.Run("token válido pasa y expone user_id y role", func(t *testing.T) {
		token, err := jwt.Generate(testSecret, "u1", entity.RoleAdmin, "test", 5)
		require.NoError(t, err)

		resp := doRequest(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("sin header es 401", func(t *testing.T) {
		resp := doRequest(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("formato incorrecto es 401", func(t *testing.T) {
		resp := doRequest(t, app, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token firmado con otro secret es 401", func(t *testing.T) {
		token, err := jwt.Generate("otro-secret", "u1", entity.RoleAdmin, "test", 5)
		require.NoError(t, err)

		resp := doRequest(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token expirado es 401", func(t *testing.T) {
		token, err := jwt.Generate(testSecret, "u1", entity.RoleAdmin, "test", -1)
		require.NoError(t, err)

		resp := doRequest(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token basura es 401", func(t *testing.T) {
		resp := doRequest(t, app, "Bearer no-es-un-jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	tokenFor := func(t *testing.T, role string) string {
		t.Helper()
		token, err := jwt.Generate(testSecret, "u1", role, "test", 5)
		require.NoError(t, err)
		return "Bearer " + token
	}

	t.Run("rol permitido pasa", func(t *testing.T) {
		app := newTestApp(AuthMiddleware(testSecret), RequireRole(entity.RoleAdmin, entity.RoleBodeguero))

		resp := doRequest(t, app, tokenFor(t, entity.RoleBodeguero))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rol no permitido es 403", func(t *testing.T) {
		app := newTestApp(AuthMiddleware(testSecret), RequireRole(entity.RoleAdmin))

		resp := doRequest(t, app, tokenFor(t, entity.RoleVendedor))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("token sin rol es 401", func(t *testing.T) {
		app := newTestApp(AuthMiddleware(testSecret), RequireRole(entity.RoleAdmin))

		resp := doRequest(t, app, tokenFor(t, ""))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u42", entity.RoleVendedor, "almacen-api", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u42", userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

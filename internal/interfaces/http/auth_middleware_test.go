package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/xurp-ia/xurp-api/internal/interfaces/http"
	pkgjwt "github.com/xurp-ia/xurp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@xurp.io"
	testIssuer    = "xurp-ia-test"
	testExpMin    = 60
)

// buildTestApp app mínima: AuthMiddleware + handler que devuelve la identidad cargada.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"email":      apphttp.GetEmail(c),
			"membership": apphttp.GetMembership(c),
		})
	})
	return app
}

func tokenFor(t *testing.T, membership string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Email: testEmail, Membership: membership}, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerExtraeIdentidad(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "PRO", testExpMin))

	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, testUserID, got["user_id"])
	assert.Equal(t, testEmail, got["email"])
	assert.Equal(t, "PRO", got["membership"])
}

func TestAuthMiddleware_CookieComoRespaldo(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: tokenFor(t, "FREE", testExpMin)})

	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, testUserID)
}

func TestAuthMiddleware_HeaderTienePrioridadSobreCookie(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token.invalido.aqui")
	req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: tokenFor(t, "FREE", testExpMin)})

	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	resp, body := doRequest(t, buildTestApp(), httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, body := doRequest(t, buildTestApp(), req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "FREE", -1))
	resp, _ := doRequest(t, buildTestApp(), req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", pkgjwt.Identity{UserID: testUserID}, testIssuer, testExpMin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ := doRequest(t, buildTestApp(), req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

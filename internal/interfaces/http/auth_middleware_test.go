package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/empresas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/empresas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "empresas-api-test"
	testExpMin    = 60
	testCompanyID = int64(37)
)

func int64Ptr(v int64) *int64 { return &v }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el JWT y cargar la identidad
//   - RequireCompany y RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...int64) *fiber.App {
	app := apphttp.NewApp("test", zerolog.Nop())
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCompany(),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{"ok": true, "role": *id.RoleID})
		},
	)
	return app
}

// tokenFor genera un JWT con la membresía indicada.
func tokenFor(t *testing.T, companyID, roleID *int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Payload{
		UserID: 1, Username: "alice", CompanyID: companyID, RoleID: roleID,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func tokenForRole(t *testing.T, role int64) string {
	return tokenFor(t, int64Ptr(testCompanyID), int64Ptr(role))
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	code, _ := body["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_CEOAccedeRutaCEO(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleCEO))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(entity.RoleCEO), body["role"])
}

func TestRequireRole_AdminAccedeRutaAdminOCEO(t *testing.T) {
	app := buildTestApp(entity.RoleCEO, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmpleadoBloqueadoEnRutaCEO(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "rol insuficiente responde 401")
	assert.Equal(t, "INSUFFICIENT_PERMISSION", bodyCode(t, resp))
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, tokenFor(t, int64Ptr(testCompanyID), nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", bodyCode(t, resp))
}

func TestRequireCompany_SinEmpresa_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, tokenFor(t, nil, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_COMPANY", bodyCode(t, resp))
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", bodyCode(t, resp))
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", bodyCode(t, resp))
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	app := buildTestApp(entity.RoleCEO)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", bodyCode(t, resp))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, -1, pkgjwt.Payload{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(entity.RoleCEO), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "expired", "el mensaje es el del verificador")
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testIssuer, testExpMin, pkgjwt.Payload{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(entity.RoleCEO), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", bodyCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		id := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id":    id.UserID,
			"username":   id.Username,
			"company_id": id.Company(),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["user_id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, float64(testCompanyID), body["company_id"])
}

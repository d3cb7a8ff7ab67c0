package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empresas-api/internal/application/auth"
	"github.com/jhoicas/empresas-api/internal/application/cache"
	"github.com/jhoicas/empresas-api/internal/application/company"
	"github.com/jhoicas/empresas-api/internal/application/usecase"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
	"github.com/jhoicas/empresas-api/internal/domain/repository/mocks"
	"github.com/jhoicas/empresas-api/internal/infrastructure/monitoring"
	apphttp "github.com/jhoicas/empresas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/empresas-api/pkg/jwt"
)

type server struct {
	app       *fiber.App
	companies *mocks.CompanyRepository
	users     *mocks.UserRepository
	products  *mocks.ProductRepository
	suppliers *mocks.SupplierRepository
	countries *mocks.CountryRepository
	monitor   *monitoring.Monitor
}

type serverOption func(*apphttp.RouterDeps)

func newServer(t *testing.T, opts ...serverOption) *server {
	t.Helper()
	s := &server{
		companies: new(mocks.CompanyRepository),
		users:     new(mocks.UserRepository),
		products:  new(mocks.ProductRepository),
		suppliers: new(mocks.SupplierRepository),
		countries: new(mocks.CountryRepository),
		monitor:   monitoring.NewMonitor("test"),
	}
	log := zerolog.Nop()
	tokens := auth.NewTokenIssuer(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	policy := cache.NewPolicy(nil, 0, log).WithObserver(s.monitor)
	tx := &mocks.TxRunner{Repos: repository.Repositories{
		Companies: s.companies, Users: s.users, Products: s.products, Suppliers: s.suppliers,
	}}

	deps := apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(s.users, tokens, log),
		CompanyUC:       company.NewUseCase(s.companies, tx, tokens, policy, log),
		ProductUC:       usecase.NewProductUseCase(s.products, s.suppliers, policy, log),
		SupplierUC:      usecase.NewSupplierUseCase(s.suppliers, policy, log),
		UserUC:          usecase.NewUserUseCase(s.users, policy, log),
		CountryUC:       usecase.NewCountryUseCase(s.countries),
		JWTSecret:       testJWTSecret,
		Log:             log,
		Monitor:         s.monitor,
		Metrics:         s.monitor.Handler(),
		Service:         "empresas-api",
		LoginRateLimit:  100,
		LoginRateWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	s.app = apphttp.NewApp("test", log)
	apphttp.Router(s.app, deps)
	return s
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func TestEscenario_RegistroLoginEmpresaDuplicada(t *testing.T) {
	s := newServer(t)

	// 1. registro
	s.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice" && u.CompanyID == nil && u.RoleID == nil
	})).Return(int64(18), nil).Once()

	resp, body := s.do(t, http.MethodPost, "/api/register", "", map[string]interface{}{
		"nombre_usuario": "alice",
		"nombre":         "Alice",
		"apellidos":      "Doe",
		"contraseña":     "Secret!23",
		"email":          "alice@mail.com",
		"telefono":       3001234567,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, float64(18), body["usuario_id"])

	// 2. login: token sin empresa ni rol
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret!23"), bcrypt.MinCost)
	require.NoError(t, err)
	s.users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{
		ID: 18, Username: "alice", FirstName: "Alice", PasswordHash: string(hash), Active: true,
	}, nil)

	resp, body = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "Secret!23"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	aliceToken, _ := body["token"].(string)
	claims, err := pkgjwt.Parse(testJWTSecret, aliceToken)
	require.NoError(t, err)
	assert.Nil(t, claims.CompanyID)
	assert.Nil(t, claims.RoleID)

	// 3. crear empresa: token nuevo como CEO
	s.companies.On("FindConflicting", mock.Anything, "Acme Works", "a@acme.com", int64(123456789)).Return(nil, nil).Once()
	s.companies.On("Create", mock.Anything, mock.Anything).Return(int64(37), nil).Once()
	s.users.On("AssignMembership", mock.Anything, int64(18), int64(37), entity.RoleCEO).Return(int64(1), nil).Once()

	resp, body = s.do(t, http.MethodPost, "/api/companies/create", aliceToken, map[string]interface{}{
		"nombre": "Acme Works", "email": "a@acme.com", "telefono": 123456789,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, float64(37), body["empresa_id"])
	ceoToken, _ := body["token"].(string)
	claims, err = pkgjwt.Parse(testJWTSecret, ceoToken)
	require.NoError(t, err)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, int64(37), *claims.CompanyID)
	assert.Equal(t, entity.RoleCEO, *claims.RoleID)

	// 4. otro usuario con el mismo email de empresa
	bobToken, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Payload{UserID: 19, Username: "bob"})
	require.NoError(t, err)
	s.companies.On("FindConflicting", mock.Anything, "Bob Works", "a@acme.com", int64(987654321)).
		Return(&entity.Company{ID: 37, Name: "Acme Works", Email: "a@acme.com"}, nil).Once()

	resp, body = s.do(t, http.MethodPost, "/api/companies/create", bobToken, map[string]interface{}{
		"nombre": "Bob Works", "email": "a@acme.com", "telefono": 987654321,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_EXISTS", body["code"])

	s.companies.AssertNumberOfCalls(t, "Create", 1)
	s.users.AssertExpectations(t)
}

func TestLogin_CredencialesInvalidas401(t *testing.T) {
	s := newServer(t)
	s.users.On("GetByUsername", mock.Anything, "nadie").Return(nil, nil)

	resp, body := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "nadie", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_ERROR", body["code"])
}

func TestRegister_ValidacionDevuelveCampos(t *testing.T) {
	s := newServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/register", "", map[string]interface{}{
		"nombre_usuario": "con espacio", "nombre": "A", "apellidos": "B",
		"contraseña": "sinespecial", "email": "Alice@Mail.com", "telefono": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	fields, _ := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "nombre_usuario")
	assert.Contains(t, fields, "contraseña")
	assert.Contains(t, fields, "email")
	s.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCuerpoInvalido400(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRateLimiter_429TrasLimite(t *testing.T) {
	s := newServer(t, func(d *apphttp.RouterDeps) { d.LoginRateLimit = 2 })
	s.users.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)

	for i := 0; i < 2; i++ {
		resp, _ := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "x"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "TOO_MANY_REQUESTS", body["code"])
}

func TestRutaDesconocida404(t *testing.T) {
	s := newServer(t)
	resp, body := s.do(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "endpoint no encontrado", body["message"])
}

func TestProductos_ErrorDePersistenciaNoExponeDetalle(t *testing.T) {
	s := newServer(t)
	s.products.On("ListByCompany", mock.Anything, testCompanyID).Return(nil, errors.New("conn reset by peer"))

	tok := strings.TrimPrefix(tokenForRole(t, entity.RoleEmployee), "Bearer ")
	resp, body := s.do(t, http.MethodGet, "/api/products", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "PERSISTENCE", body["code"])
	assert.NotContains(t, body["message"], "conn reset")
}

func TestProveedores_EmpleadoNoPuedeCrear(t *testing.T) {
	s := newServer(t)
	tok := strings.TrimPrefix(tokenForRole(t, entity.RoleEmployee), "Bearer ")

	resp, body := s.do(t, http.MethodPost, "/api/suppliers/add", tok, map[string]interface{}{
		"pais_id": 1, "nombre": "Proveedor Uno", "email": "p@uno.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_PERMISSION", body["code"])
	s.suppliers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIDInvalidoEnRuta400(t *testing.T) {
	s := newServer(t)
	tok := strings.TrimPrefix(tokenForRole(t, entity.RoleCEO), "Bearer ")

	resp, body := s.do(t, http.MethodDelete, "/api/products/delete/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestPaises_Publico(t *testing.T) {
	s := newServer(t)
	s.countries.On("GetByID", mock.Anything, int64(999)).Return(nil, nil)

	resp, body := s.do(t, http.MethodGet, "/api/countries/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestHealth_DegradadoSiFallaDependencia(t *testing.T) {
	s := newServer(t, func(d *apphttp.RouterDeps) {
		d.HealthChecks = map[string]apphttp.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("down") },
		}
	})

	resp, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]interface{}{"postgres": "up", "redis": "down"}, body["dependencies"])
}

func TestMetrics_ExponeLatencia(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodGet, "/health", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_request_duration_seconds")
	assert.Contains(t, string(raw), `route="/health"`)
}

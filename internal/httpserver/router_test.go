package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	authmw "github.com/lvieira/catalogo-api/internal/middleware/auth"
	"github.com/lvieira/catalogo-api/internal/models"
)

func newTestApp(t *testing.T) (*echo.Echo, *testEnv) {
	env := newTestEnv(t)
	Register(env.E, &Deps{
		AuthHandler:     env.Auth,
		ProductHandler:  env.Products,
		CategoryHandler: env.Categories,
		AuthMW:          authmw.New(env.JWTSecret),
	})
	return env.E, env
}

func serve(t *testing.T, e *echo.Echo, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPrivateRoutesRejectMissingToken(t *testing.T) {
	e, env := newTestApp(t)

	payload := map[string]any{
		"name":        "tv",
		"description": "55 inch",
		"amount":      1,
		"price":       2999.0,
		"categories":  []uint{},
	}
	rec := serve(t, e, http.MethodPost, "/private/criar-produto", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// short-circuited before any store mutation
	var total int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&total).Error)
	require.Equal(t, int64(0), total)
}

func TestPublicRoutesSkipAuthGate(t *testing.T) {
	e, _ := newTestApp(t)

	payload := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	rec := serve(t, e, http.MethodPost, "/public/cadastro", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestEndToEndRegisterLoginAndCatalog(t *testing.T) {
	e, _ := newTestApp(t)

	register := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	rec := serve(t, e, http.MethodPost, "/public/cadastro", "", register)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := map[string]string{"username": "test_user", "password": "password"}
	rec = serve(t, e, http.MethodPost, "/public/login", "", login)
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token)

	category := map[string]string{"name": "electronics", "description": "gadgets"}
	rec = serve(t, e, http.MethodPost, "/private/criar-categoria", token, category)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cat models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))

	product := map[string]any{
		"name":        "tablet",
		"description": "10 inch",
		"amount":      8,
		"price":       1599.0,
		"categories":  []uint{cat.ID},
	}
	rec = serve(t, e, http.MethodPost, "/private/criar-produto", token, product)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(t, e, http.MethodGet, "/private/listar-produtos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "tablet", items[0].Name)
	require.Len(t, items[0].Categories, 1)
}

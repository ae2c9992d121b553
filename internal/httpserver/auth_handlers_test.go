package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lvieira/catalogo-api/internal/models"
	"github.com/lvieira/catalogo-api/internal/tokens"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/public/cadastro", payload)

	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Test User", created.Name)
	require.Equal(t, "test_user", created.Username)
	require.NotContains(t, rec.Body.String(), "password")

	var stored models.User
	require.NoError(t, env.DB.Where("username = ?", "test_user").First(&stored).Error)
	require.NotEqual(t, "password", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/public/cadastro", payload)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, cDup := env.doJSONRequest(http.MethodPost, "/public/cadastro", payload)
	err := env.Auth.Register(cDup)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"username": "nobody", "password": "password"}
	_, c := env.doJSONRequest(http.MethodPost, "/public/login", payload)

	err := env.Auth.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
	require.Equal(t, "user not found", he.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	regPayload := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	_, cReg := env.doJSONRequest(http.MethodPost, "/public/cadastro", regPayload)
	require.NoError(t, env.Auth.Register(cReg))

	payload := map[string]string{"username": "test_user", "password": "wrong"}
	_, c := env.doJSONRequest(http.MethodPost, "/public/login", payload)

	err := env.Auth.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "invalid password", he.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	env := newTestEnv(t)

	regPayload := map[string]string{
		"name":     "Test User",
		"username": "test_user",
		"password": "password",
	}
	recReg, cReg := env.doJSONRequest(http.MethodPost, "/public/cadastro", regPayload)
	require.NoError(t, env.Auth.Register(cReg))
	var user models.User
	require.NoError(t, json.Unmarshal(recReg.Body.Bytes(), &user))

	payload := map[string]string{"username": "test_user", "password": "password"}
	rec, c := env.doJSONRequest(http.MethodPost, "/public/login", payload)
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := tokens.AccessClaimsFromToken(token, env.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprint(user.ID), claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	ttl := time.Until(claims.ExpiresAt.Time)
	require.Greater(t, ttl, 55*time.Minute)
	require.LessOrEqual(t, ttl, time.Hour)
}

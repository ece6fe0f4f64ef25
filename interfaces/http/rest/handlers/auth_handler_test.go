package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"novamarket/infrastructure/config"
	"novamarket/pkg/common"
)

func postLogin(t *testing.T, cfg *config.Config, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewAuthHandler(cfg, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func authTestConfig() *config.Config {
	return &config.Config{
		Environment:   "development",
		JWTSecret:     "test-secret",
		JWTIssuer:     "nova-marketplace",
		AdminEmail:    "admin@novamarket.com",
		AdminPassword: "admin123",
	}
}

func TestLogin_UnavailableWithoutJWTSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWTSecret = ""

	rec := postLogin(t, cfg, `{"email":"admin@novamarket.com","password":"admin123"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "Authentication unavailable", errBody.Error)
}

func TestLogin_MalformedBody(t *testing.T) {
	rec := postLogin(t, authTestConfig(), `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidEmailFormat(t *testing.T) {
	rec := postLogin(t, authTestConfig(), `{"email":"not-an-email","password":"admin123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, common.LabelValidationError, errBody.Error)
}

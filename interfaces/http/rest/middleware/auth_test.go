package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "nova-marketplace"
)

func signToken(t *testing.T, secret, issuer string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "1",
		"email": "admin@novamarket.com",
		"name":  "Admin User",
		"iss":   issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuth(t *testing.T, prepare func(*http.Request)) (*UserContext, bool) {
	t.Helper()

	var user *UserContext
	var ok bool
	handler := Authenticate(testSecret, testIssuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok = UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	prepare(req)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return user, ok
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	token := signToken(t, testSecret, testIssuer, time.Hour)

	user, ok := runAuth(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "admin@novamarket.com", user.Email)
	assert.Equal(t, "Admin User", user.Name)
}

func TestAuthenticate_ValidCookie(t *testing.T) {
	token := signToken(t, testSecret, testIssuer, time.Hour)

	user, ok := runAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	})

	require.True(t, ok)
	assert.Equal(t, "admin@novamarket.com", user.Email)
}

func TestAuthenticate_PassesThroughUnauthenticated(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{"no token", func(r *http.Request) {}},
		{"wrong secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", testIssuer, time.Hour))
		}},
		{"wrong issuer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "someone-else", time.Hour))
		}},
		{"expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, testIssuer, -time.Hour))
		}},
		{"garbage token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.jwt")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok := runAuth(t, tt.prepare)
			assert.False(t, ok)
			assert.Nil(t, user)
		})
	}
}

func TestAuthenticate_RejectsTokenWithoutExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"iss": testIssuer,
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	user, ok := runAuth(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+signed)
	})

	assert.False(t, ok)
	assert.Nil(t, user)
}

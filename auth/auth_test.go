package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestNewMiddlewareRejectsEmptySecret(t *testing.T) {
	_, err := NewMiddleware("")
	assert.Error(t, err)
}

func TestParseToken(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	raw := signToken(t, testSecret, jwt.MapClaims{
		"id":      42,
		"name":    "Asha",
		"email":   "asha@campus.edu",
		"picture": "https://example.com/asha.png",
		"role":    models.RoleSenior,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	user, err := m.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@campus.edu", user.Email)
	assert.Equal(t, models.RoleSenior, user.Role)
}

func TestParseTokenDefaultsRole(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	raw := signToken(t, testSecret, jwt.MapClaims{"id": 7})
	user, err := m.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUnassigned, user.Role)
}

func TestParseTokenRejections(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{"id": 1})},
		{"expired", signToken(t, testSecret, jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Hour).Unix()})},
		{"no user id", signToken(t, testSecret, jwt.MapClaims{"name": "ghost"})},
		{"garbage", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseToken(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestHandlerInjectsUser(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	var got *User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = MustGetUser(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"id": 9, "role": models.RoleJunior}))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, uint(9), got.ID)
}

func TestHandlerRejectsAnonymous(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNonBlockingHandlerPassesAnonymous(t *testing.T) {
	m, err := NewMiddleware(testSecret)
	require.NoError(t, err)

	var userErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, userErr = GetUser(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.NonBlockingHandler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Error(t, userErr, "no user in context for anonymous requests")
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/mpalmerin/storefront-backend/pkg/auth"
	"github.com/mpalmerin/storefront-backend/pkg/config"
	"github.com/mpalmerin/storefront-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "middleware-test-secret", Issuer: "storefront"}
}

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func protectedHandler(t *testing.T, gotUserID *int64, gotUserName *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = UserIDFromContext(r.Context())
		*gotUserName = UserNameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	cfg := testAuthConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: 42, UserName: "ada"})
	require.NoError(t, err)

	var userID int64
	var userName string
	handler := Auth(cfg, discardLogger())(protectedHandler(t, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "ada", userName)
}

func TestAuthAcceptsRawToken(t *testing.T) {
	cfg := testAuthConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: 7, UserName: "grace"})
	require.NoError(t, err)

	var userID int64
	var userName string
	handler := Auth(cfg, discardLogger())(protectedHandler(t, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), userID)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	var userID int64
	var userName string
	handler := Auth(testAuthConfig(), discardLogger())(protectedHandler(t, &userID, &userName))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, userID)
}

func TestAuthRejectsEmptyBearer(t *testing.T) {
	var userID int64
	var userName string
	handler := Auth(testAuthConfig(), discardLogger())(protectedHandler(t, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer   ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsForgedToken(t *testing.T) {
	other := testAuthConfig()
	other.Secret = "attacker-secret"
	token, err := pkgAuth.MintAccessToken(other, time.Now(), pkgAuth.AccessTokenPayload{UserID: 1, UserName: "mallory"})
	require.NoError(t, err)

	var userID int64
	var userName string
	handler := Auth(testAuthConfig(), discardLogger())(protectedHandler(t, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, userID)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.ExpirationMinutes = 1
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{UserID: 1, UserName: "ada"})
	require.NoError(t, err)

	var userID int64
	var userName string
	handler := Auth(cfg, discardLogger())(protectedHandler(t, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserContextHelpersEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Zero(t, UserIDFromContext(req.Context()))
	assert.Empty(t, UserNameFromContext(req.Context()))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"storefront-service/pkg/config"
	"storefront-service/pkg/jwtutil"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	jwtutil.Initialize(&cfg.JWT)
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return c, rec
}

func TestAuthMiddleware(t *testing.T) {
	token, err := jwtutil.GenerateToken("staff@example.com", 7, true)
	require.NoError(t, err)

	t.Run("valid token populates the identity", func(t *testing.T) {
		c, rec := runAuth(t, AuthMiddleware, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)

		userID, ok := UserIDFromContext(c)
		require.True(t, ok)
		assert.EqualValues(t, 7, userID)
		assert.True(t, IsStaff(c))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		_, rec := runAuth(t, AuthMiddleware, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		_, rec := runAuth(t, AuthMiddleware, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, rec := runAuth(t, AuthMiddleware, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	token, err := jwtutil.GenerateToken("shopper@example.com", 8, false)
	require.NoError(t, err)

	t.Run("anonymous requests pass through without identity", func(t *testing.T) {
		c, rec := runAuth(t, OptionalAuthMiddleware, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		_, ok := UserIDFromContext(c)
		assert.False(t, ok)
		assert.False(t, IsStaff(c))
	})

	t.Run("valid token still populates the identity", func(t *testing.T) {
		c, rec := runAuth(t, OptionalAuthMiddleware, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)

		userID, ok := UserIDFromContext(c)
		require.True(t, ok)
		assert.EqualValues(t, 8, userID)
	})

	t.Run("invalid token is treated as anonymous", func(t *testing.T) {
		c, rec := runAuth(t, OptionalAuthMiddleware, "Bearer expired.or.garbage")
		assert.Equal(t, http.StatusOK, rec.Code)

		_, ok := UserIDFromContext(c)
		assert.False(t, ok)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPolicy(t *testing.T, policy echo.MiddlewareFunc, method string, identity func(echo.Context)) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		identity(c)
	}

	handler := policy(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func asCustomer(c echo.Context) {
	c.Set("user_id", uint(1))
	c.Set("is_staff", false)
}

func asStaff(c echo.Context) {
	c.Set("user_id", uint(2))
	c.Set("is_staff", true)
}

func TestStaffOrReadOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, runPolicy(t, StaffOrReadOnly, http.MethodGet, nil))
	assert.Equal(t, http.StatusOK, runPolicy(t, StaffOrReadOnly, http.MethodGet, asCustomer))
	assert.Equal(t, http.StatusOK, runPolicy(t, StaffOrReadOnly, http.MethodPost, asStaff))

	// anonymous writes get 401, authenticated non-staff writes get 403
	assert.Equal(t, http.StatusUnauthorized, runPolicy(t, StaffOrReadOnly, http.MethodPost, nil))
	assert.Equal(t, http.StatusForbidden, runPolicy(t, StaffOrReadOnly, http.MethodDelete, asCustomer))
}

func TestStaffOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, runPolicy(t, StaffOnly, http.MethodGet, asStaff))
	assert.Equal(t, http.StatusForbidden, runPolicy(t, StaffOnly, http.MethodGet, asCustomer))
	assert.Equal(t, http.StatusUnauthorized, runPolicy(t, StaffOnly, http.MethodGet, nil))
}

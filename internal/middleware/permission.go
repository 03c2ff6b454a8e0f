package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Route-level role policies. Each wraps OptionalAuthMiddleware-populated
// context: anonymous callers simply have no identity set.

var readMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// StaffOrReadOnly lets anyone read but restricts every write to staff
func StaffOrReadOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if readMethods[c.Request().Method] || IsStaff(c) {
			return next(c)
		}
		return forbidden(c)
	}
}

// StaffOnly restricts the route to staff identities
func StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IsStaff(c) {
			return next(c)
		}
		return forbidden(c)
	}
}

func forbidden(c echo.Context) error {
	if _, ok := UserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return c.JSON(http.StatusForbidden, echo.Map{"error": "staff role required"})
}

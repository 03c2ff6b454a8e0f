package middleware

import (
	"net/http"
	"strings"

	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the bearer JWT and stores the caller's
// identity in the request context. Requests without a valid token are
// rejected.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		claims, err := claimsFromRequest(c)
		if err != nil {
			log.Warn("Request not authenticated", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}

		setIdentity(c, claims)
		return next(c)
	}
}

// OptionalAuthMiddleware extracts the caller's identity when a valid
// bearer token is present but lets anonymous requests through. Used on
// routes whose read side is public while writes are role-checked later.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, err := claimsFromRequest(c); err == nil {
			setIdentity(c, claims)
		}
		return next(c)
	}
}

func claimsFromRequest(c echo.Context) (*jwtutil.UserClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format, expected Bearer token")
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func setIdentity(c echo.Context, claims *jwtutil.UserClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("is_staff", claims.IsStaff)
}

// UserIDFromContext retrieves the authenticated user id.
// Returns 0, false for anonymous requests.
func UserIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

// IsStaff reports whether the authenticated caller has the staff role
func IsStaff(c echo.Context) bool {
	isStaff, ok := c.Get("is_staff").(bool)
	return ok && isStaff
}

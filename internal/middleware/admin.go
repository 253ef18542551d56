package middleware

import (
	"net/http"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireAdmin rejects requests whose JWT claims do not carry the admin role.
// Must run after JWTAuthMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
			}
			return next(c)
		}
	}
}

package handlers

import (
	"strconv"

	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getClaimsFromContext returns the JWT claims set by the auth middleware,
// or nil for unauthenticated requests.
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request carries no valid claims.
func getUserIDFromContext(c echo.Context) uint {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

// isAdmin reports whether the authenticated caller has the admin role
func isAdmin(c echo.Context) bool {
	claims := getClaimsFromContext(c)
	return claims != nil && claims.Role == models.RoleAdmin
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parsePagination reads page/limit query params with the given default limit.
// Page floors at 1; limit is capped at 100.
func parsePagination(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

package middleware

import (
	"net/http"

	"usherhub/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireRole assumes RequireAuth already ran and populated the context.
func RequireRole(role entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := AuthUserFromContext(c)
			if !ok {
				return unauthorized(c, "authentication required")
			}
			if user.Role != role {
				return c.JSON(http.StatusForbidden, map[string]any{
					"success": false,
					"message": string(role) + " access required",
				})
			}
			return next(c)
		}
	}
}

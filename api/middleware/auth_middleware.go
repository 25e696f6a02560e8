package middleware

import (
	"net/http"
	"strings"

	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the authenticated gate. Tokens are stateless, so the
// subject is re-fetched on every request: a deactivated account is rejected
// here even while its token is still cryptographically valid.
type AuthMiddleware struct {
	JWT   *utils.JWTManager
	Users repository.UserRepository
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil || m.Users == nil {
			return unauthorized(c, "unauthorized")
		}
		token := extractToken(c)
		if token == "" {
			return unauthorized(c, "access denied: no token provided")
		}
		claims, err := m.JWT.ParseToken(token)
		if err != nil {
			return unauthorized(c, "token is not valid")
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return unauthorized(c, "token is not valid")
		}

		user, err := m.Users.FindActiveByID(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		if user == nil {
			return unauthorized(c, "token is not valid or user is deactivated")
		}

		SetAuthUser(c, user)
		return next(c)
	}
}

// extractToken reads the bearer header first and falls back to the token
// cookie set by browser clients.
func extractToken(c echo.Context) string {
	authorization := c.Request().Header.Get("Authorization")
	if authorization != "" {
		parts := strings.SplitN(authorization, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie.Value
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": message,
	})
}

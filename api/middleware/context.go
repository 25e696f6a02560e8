package middleware

import (
	"usherhub/internal/entity"

	"github.com/labstack/echo/v4"
)

const contextUserKey = "auth_user"

func SetAuthUser(c echo.Context, user *entity.User) {
	c.Set(contextUserKey, user)
}

func AuthUserFromContext(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextUserKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後ろに置く
func RequireRole(want model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(CtxUserRoleKey).(string)
			switch {
			case got == "":
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED", "unauthorized"))
			case model.Role(got) != want:
				return c.JSON(http.StatusForbidden, errorJSON("FORBIDDEN", strings.ToLower(string(want))+" only"))
			}
			return next(c)
		}
	}
}

// チケット管理と監査ログ用
func AdminRoleGuard() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin)
}

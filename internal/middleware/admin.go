package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// RequireAdmin aborts with 403 unless the token resolved to an effective
// admin.  Effective admin is the same three-way OR the client uses: explicit
// admin role, staff flag, or superuser flag.  It assumes JWTAuth ran first.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			staff, _ := c.Get(CtxIsStaff).(bool)
			super, _ := c.Get(CtxIsSuperuser).(bool)
			id := model.Identity{Role: role, IsStaff: staff, IsSuperuser: super}
			if UserID(c) == "" || !id.IsEffectiveAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

package middleware // reusable HTTP middleware for the demo backend

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID      = "user_id"
	CtxRole        = "role"
	CtxIsStaff     = "is_staff"
	CtxIsSuperuser = "is_superuser"
)

// JWTAuth validates a Bearer access token and stores the subject, role and
// staff flags in the request context.  The secret must match the one used
// when issuing tokens.  optional=true lets unauthenticated requests through
// with no identity set, which the public endpoints (team members, site
// content reads) rely on.
func JWTAuth(secret string, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				if optional {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			if sub, ok := claims["sub"].(string); ok {
				c.Set(CtxUserID, sub)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(CtxRole, role)
			}
			if staff, ok := claims["is_staff"].(bool); ok {
				c.Set(CtxIsStaff, staff)
			}
			if super, ok := claims["is_superuser"].(bool); ok {
				c.Set(CtxIsSuperuser, super)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id from the context, empty when the
// request carried no valid token.
func UserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(string); ok {
		return v
	}
	return ""
}

// Package handler implements the demo backend's HTTP endpoints.  Handlers
// bundle their repository dependencies and translate repository sentinel
// errors into HTTP statuses; response bodies match what the portal client
// parses.
package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// viewerIsAdmin resolves the effective admin bit from the token claims the
// auth middleware stored on the context.
func viewerIsAdmin(c echo.Context) bool {
	role, _ := c.Get(middleware.CtxRole).(string)
	staff, _ := c.Get(middleware.CtxIsStaff).(bool)
	super, _ := c.Get(middleware.CtxIsSuperuser).(bool)
	id := model.Identity{Role: role, IsStaff: staff, IsSuperuser: super}
	return id.IsEffectiveAdmin()
}

// splitName derives first/last name parts from a display name for the
// team-members serializer.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

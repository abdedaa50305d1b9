// Package router wires the demo backend's HTTP routes to their handlers.
// The paths replicate the backend contract the portal client is written
// against, trailing slashes included.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/handler"
	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
)

// RegisterRoutes registers the unauthenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Handlers bundles every endpoint group the API mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Projects     *handler.ProjectHandler
	Publications *handler.PublicationHandler
	Files        *handler.FileHandler
	Content      *handler.ContentHandler
}

// RegisterAPI mounts the portal contract under /api.  Three tiers: public
// routes take an optional token, member routes require one, and admin
// routes additionally pass RequireAdmin (which honours the role string and
// the staff/superuser flags alike).
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string) {
	// Public: login plus the reads the site renders before sign-in.  The
	// optional token lets signed-in viewers get their capability flags.
	e.POST("/api/token/email/", h.Auth.TokenEmail)

	public := e.Group("/api", middleware.JWTAuth(jwtSecret, true))
	public.GET("/team-members/", h.Users.TeamMembers)
	public.GET("/site-content/", h.Content.Get)
	public.GET("/projects", h.Projects.List)
	public.GET("/publications", h.Publications.List)

	// Member: everything else the portal does while signed in.
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret, false))
	auth.GET("/user/", h.Auth.Me)
	auth.GET("/user/profile/", h.Auth.GetProfile)
	auth.PUT("/user/profile/", h.Auth.PutProfile)

	auth.POST("/projects", h.Projects.Create)
	auth.PUT("/projects/:id", h.Projects.Update)
	auth.DELETE("/projects/:id", h.Projects.Delete)
	auth.POST("/projects/:id/request_deletion", h.Projects.RequestDeletion)

	auth.POST("/publications", h.Publications.Create)
	auth.PUT("/publications/:id", h.Publications.Update)
	auth.DELETE("/publications/:id", h.Publications.Delete)

	auth.GET("/files", h.Files.List)
	auth.POST("/files", h.Files.Upload)
	auth.DELETE("/files/:id", h.Files.Delete)

	// Admin: user management, project validation, deletion review and
	// site-content edits.
	admin := e.Group("/api", middleware.JWTAuth(jwtSecret, false), middleware.RequireAdmin())
	admin.POST("/admin/update-user-role/:id/", h.Users.UpdateRole)
	admin.POST("/admin/update-user-status/:id/", h.Users.UpdateStatus)
	admin.DELETE("/admin/users/:id/", h.Users.DeleteUser)

	admin.POST("/projects/:id/validate", h.Projects.Validate)
	admin.GET("/project-deletion-requests", h.Projects.DeletionRequests)
	admin.POST("/project-deletion-requests/:id/approve", h.Projects.ApproveDeletion)
	admin.POST("/project-deletion-requests/:id/reject", h.Projects.RejectDeletion)

	admin.PUT("/site-content/", h.Content.Put)
}

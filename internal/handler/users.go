package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/queue"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
)

// UserHandler serves the roster and the admin user-management endpoints.
type UserHandler struct {
	Identities repository.IdentityRepo
	Profiles   *repository.ProfileRepo
	Events     *queue.Publisher
}

func NewUserHandler(ids repository.IdentityRepo, profiles *repository.ProfileRepo, events *queue.Publisher) *UserHandler {
	return &UserHandler{Identities: ids, Profiles: profiles, Events: events}
}

type teamMemberResp struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	FullName    string         `json:"full_name"`
	Role        string         `json:"role"`
	IsStaff     bool           `json:"is_staff"`
	IsSuperuser bool           `json:"is_superuser"`
	DateJoined  string         `json:"date_joined"`
	Profile     *model.Profile `json:"profile,omitempty"`
}

// TeamMembers lists all active accounts.  The route is public; banned
// accounts are filtered by the repository.
func (h *UserHandler) TeamMembers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accounts, err := h.Identities.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]teamMemberResp, 0, len(accounts))
	for _, a := range accounts {
		first, last := splitName(a.Name)
		m := teamMemberResp{
			ID:          a.ID,
			Username:    strings.SplitN(a.Email, "@", 2)[0],
			Email:       a.Email,
			FirstName:   first,
			LastName:    last,
			FullName:    a.Name,
			Role:        a.Role,
			IsStaff:     a.IsStaff,
			IsSuperuser: a.IsSuperuser,
			DateJoined:  a.DateJoined.UTC().Format(time.RFC3339),
		}
		if p, err := h.Profiles.Get(ctx, a.ID); err == nil && p != (model.Profile{}) {
			profile := p
			m.Profile = &profile
		}
		out = append(out, m)
	}
	return c.JSON(http.StatusOK, out)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateRole changes another user's role.  Mounted behind RequireAdmin.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id := c.Param("id")
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Identities.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Identities.UpdateRole(ctx, id, req.Role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	_ = h.Events.Publish(ctx, queue.PortalEvent{
		Kind:      queue.EventRoleUpdated,
		ActorID:   middleware.UserID(c),
		SubjectID: id,
		Detail:    req.Role,
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "role updated"})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus bans or reactivates a user.  Mounted behind RequireAdmin.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case model.StatusActive, model.StatusBanned, model.StatusPending:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Identities.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Identities.UpdateStatus(ctx, id, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	_ = h.Events.Publish(ctx, queue.PortalEvent{
		Kind:      queue.EventStatusUpdated,
		ActorID:   middleware.UserID(c),
		SubjectID: id,
		Detail:    req.Status,
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "status updated"})
}

// DeleteUser removes an account permanently.  Mounted behind RequireAdmin.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Identities.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

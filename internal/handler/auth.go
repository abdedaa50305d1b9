package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/config"
	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
	"github.com/rami151/laboissimlocal-sub000/internal/utils"
)

// AuthHandler bundles dependencies for the token and profile endpoints.
type AuthHandler struct {
	Cfg        config.Server
	Identities repository.IdentityRepo
	Profiles   *repository.ProfileRepo
}

func NewAuthHandler(cfg config.Server, ids repository.IdentityRepo, profiles *repository.ProfileRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Identities: ids, Profiles: profiles}
}

type tokenEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenEmailResp struct {
	Access string `json:"access"`
}

// TokenEmail verifies email+password and returns an access token.  Banned
// and unknown accounts get the same 401; the client keys its fail-closed
// behaviour on that status.
func (h *AuthHandler) TokenEmail(c echo.Context) error {
	var req tokenEmailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Role, a.IsStaff, a.IsSuperuser, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	if err := h.Identities.TouchLogin(ctx, a.ID); err != nil {
		// login timestamp is best effort
		c.Logger().Warnf("touch login failed for %s: %v", a.ID, err)
	}

	return c.JSON(http.StatusOK, tokenEmailResp{Access: access.Token})
}

type mePayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Verified    bool   `json:"verified"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	DateJoined  string `json:"date_joined"`
}

// Me resolves the bearer token to its account.  A valid token whose account
// has since been deleted or banned yields 401, not 404: the client treats
// any failure here as a dead session.
func (h *AuthHandler) Me(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account gone"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if a.Status == model.StatusBanned {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account banned"})
	}

	return c.JSON(http.StatusOK, mePayload{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        a.Role,
		Status:      a.Status,
		Verified:    a.Verified,
		IsStaff:     a.IsStaff,
		IsSuperuser: a.IsSuperuser,
		DateJoined:  a.DateJoined.UTC().Format(time.RFC3339),
	})
}

// GetProfile returns the caller's profile, creating an empty one on first
// access.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.Get(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// PutProfile replaces the caller's profile.
func (h *AuthHandler) PutProfile(c echo.Context) error {
	var p model.Profile
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Profiles.Put(ctx, middleware.UserID(c), p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, saved)
}

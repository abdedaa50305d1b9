package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
)

// PublicationHandler serves the publications CRUD.  Deleting or editing a
// publication is restricted to its original poster.
type PublicationHandler struct {
	Identities   repository.IdentityRepo
	Publications *repository.PublicationRepo
}

func NewPublicationHandler(ids repository.IdentityRepo, pubs *repository.PublicationRepo) *PublicationHandler {
	return &PublicationHandler{Identities: ids, Publications: pubs}
}

func (h *PublicationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pubs, err := h.Publications.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, pubs)
}

type publicationReq struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

func (h *PublicationHandler) Create(c echo.Context) error {
	var req publicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account gone"})
	}

	pub, err := h.Publications.Create(ctx, req.Title, req.Abstract, model.ProjectRef{ID: a.ID, Name: a.Name})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, pub)
}

func (h *PublicationHandler) Update(c echo.Context) error {
	var req publicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pub, err := h.Publications.Update(ctx, c.Param("id"), middleware.UserID(c), req.Title, req.Abstract)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "publication not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your publication"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, pub)
}

func (h *PublicationHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Publications.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "publication not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your publication"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

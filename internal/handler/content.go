package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
)

// ContentHandler serves the singleton site-content record.  Reads are
// public; writes are admin only.
type ContentHandler struct {
	Content *repository.ContentRepo
}

func NewContentHandler(content *repository.ContentRepo) *ContentHandler {
	return &ContentHandler{Content: content}
}

func (h *ContentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sc, err := h.Content.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sc)
}

// Put merges the submitted fields onto the stored record; empty fields keep
// their current values, so section editors can send only their section.
func (h *ContentHandler) Put(c echo.Context) error {
	var partial model.SiteContent
	if err := c.Bind(&partial); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sc, err := h.Content.Put(ctx, partial)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, sc)
}

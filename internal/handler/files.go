package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
)

// FileHandler serves the shared document space: multipart uploads, listing
// and owner-only deletion.
type FileHandler struct {
	Identities repository.IdentityRepo
	Files      *repository.FileRepo
}

func NewFileHandler(ids repository.IdentityRepo, files *repository.FileRepo) *FileHandler {
	return &FileHandler{Identities: ids, Files: files}
}

func (h *FileHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	files, err := h.Files.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, files)
}

// Upload accepts one multipart file under the "file" field.  The declared
// name may be overridden with a "name" form value.
func (h *FileHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}

	name := c.FormValue("name")
	if name == "" {
		name = fh.Filename
	}
	fileType := strings.TrimPrefix(filepath.Ext(name), ".")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account gone"})
	}

	f, err := h.Files.Create(ctx, name, fileType, data, model.ProjectRef{ID: a.ID, Name: a.Name})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FileHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Files.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your file"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

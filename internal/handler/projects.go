package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/middleware"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/queue"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
)

// ProjectHandler serves the projects CRUD plus the validation and
// deletion-request workflow.
type ProjectHandler struct {
	Identities repository.IdentityRepo
	Projects   *repository.ProjectRepo
	Events     *queue.Publisher
}

func NewProjectHandler(ids repository.IdentityRepo, projects *repository.ProjectRepo, events *queue.Publisher) *ProjectHandler {
	return &ProjectHandler{Identities: ids, Projects: projects, Events: events}
}

// List returns every project with per-viewer capability flags baked in.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	projects, err := h.Projects.List(ctx, middleware.UserID(c), viewerIsAdmin(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, projects)
}

// formProject reads the multipart/form fields shared by Create and Update.
// Attached files are kept by name only; the demo backend does not persist
// binary project assets.
func formProject(c echo.Context) (model.Project, error) {
	p := model.Project{
		Title:          c.FormValue("title"),
		Description:    c.FormValue("description"),
		Objectives:     c.FormValue("objectives"),
		Methodology:    c.FormValue("methodology"),
		Results:        c.FormValue("results"),
		StartDate:      c.FormValue("start_date"),
		EndDate:        c.FormValue("end_date"),
		Team:           c.FormValue("team"),
		Funding:        c.FormValue("funding"),
		FundingCompany: c.FormValue("funding_company"),
		FundingAmount:  c.FormValue("funding_amount"),
	}
	if p.Title == "" || p.Description == "" {
		return p, errors.New("title and description required")
	}
	if f, err := c.FormFile("image"); err == nil {
		p.Image = "/media/project_images/" + f.Filename
	}
	if form, err := c.MultipartForm(); err == nil {
		for _, f := range form.File["documents"] {
			p.Documents = append(p.Documents, "/media/project_documents/"+f.Filename)
		}
	}
	return p, nil
}

// Create adds a new, unvalidated project owned by the caller.
func (h *ProjectHandler) Create(c echo.Context) error {
	p, err := formProject(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account gone"})
	}
	p.CreatedBy = model.ProjectRef{ID: a.ID, Name: a.Name}

	created, err := h.Projects.Create(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update edits a project.  Owners and admins only; the repository enforces
// the rule and reports ErrForbidden otherwise.
func (h *ProjectHandler) Update(c echo.Context) error {
	p, err := formProject(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Projects.Update(ctx, c.Param("id"), middleware.UserID(c), viewerIsAdmin(c), p)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your project"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a project outright.  Admins may always delete; owners only
// while the project is still unvalidated (validated projects go through the
// deletion-request workflow instead).
func (h *ProjectHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !viewerIsAdmin(c) {
		if p.CreatedBy.ID != middleware.UserID(c) || p.IsValidated {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "deletion not allowed"})
		}
	}
	if err := h.Projects.Delete(ctx, p.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate marks a project as approved.  Mounted behind RequireAdmin.
func (h *ProjectHandler) Validate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Projects.Validate(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validate failed"})
	}

	_ = h.Events.Publish(ctx, queue.PortalEvent{
		Kind:      queue.EventProjectValidated,
		ActorID:   middleware.UserID(c),
		SubjectID: c.Param("id"),
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "validated"})
}

type requestDeletionReq struct {
	Reason string `json:"reason"`
}

// RequestDeletion files a deletion request for a validated project the
// caller owns.
func (h *ProjectHandler) RequestDeletion(c echo.Context) error {
	var req requestDeletionReq
	if err := c.Bind(&req); err != nil && err != io.EOF {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Identities.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account gone"})
	}

	dr, err := h.Projects.RequestDeletion(ctx, c.Param("id"), a.ID, a.Name, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your project or not validated"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "deletion already requested"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "request failed"})
	}
	return c.JSON(http.StatusCreated, dr)
}

// DeletionRequests lists all requests, pending first.  Mounted behind
// RequireAdmin.
func (h *ProjectHandler) DeletionRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reqs, err := h.Projects.DeletionRequests(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reqs)
}

type reviewDeletionReq struct {
	AdminNotes string `json:"admin_notes"`
}

// ApproveDeletion approves a pending request and deletes the project.
func (h *ProjectHandler) ApproveDeletion(c echo.Context) error {
	return h.review(c, true)
}

// RejectDeletion rejects a pending request; the project stays.
func (h *ProjectHandler) RejectDeletion(c echo.Context) error {
	return h.review(c, false)
}

func (h *ProjectHandler) review(c echo.Context, approve bool) error {
	var req reviewDeletionReq
	if err := c.Bind(&req); err != nil && err != io.EOF {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dr, err := h.Projects.Review(ctx, c.Param("id"), middleware.UserID(c), req.AdminNotes, approve)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "request already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "review failed"})
	}

	detail := "rejected"
	if approve {
		detail = "approved"
	}
	_ = h.Events.Publish(ctx, queue.PortalEvent{
		Kind:      queue.EventDeletionReviewed,
		ActorID:   middleware.UserID(c),
		SubjectID: dr.ProjectID,
		Detail:    detail,
	})
	return c.JSON(http.StatusOK, dr)
}

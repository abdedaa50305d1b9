package api

import (
	"context"
	"net/http"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// ProjectForm carries the editable project fields.  Values are sent as
// multipart form fields because an image and documents may ride along.
type ProjectForm struct {
	Title          string
	Description    string
	Objectives     string
	Methodology    string
	Results        string
	StartDate      string
	EndDate        string
	Team           string
	Funding        string
	FundingCompany string
	FundingAmount  string
	Image          *FilePart
	Documents      []FilePart
}

func (f ProjectForm) fields() map[string]string {
	return map[string]string{
		"title":           f.Title,
		"description":     f.Description,
		"objectives":      f.Objectives,
		"methodology":     f.Methodology,
		"results":         f.Results,
		"start_date":      f.StartDate,
		"end_date":        f.EndDate,
		"team":            f.Team,
		"funding":         f.Funding,
		"funding_company": f.FundingCompany,
		"funding_amount":  f.FundingAmount,
	}
}

func (f ProjectForm) files() []FilePart {
	var files []FilePart
	if f.Image != nil {
		img := *f.Image
		img.Field = "image"
		files = append(files, img)
	}
	for _, d := range f.Documents {
		d.Field = "documents"
		files = append(files, d)
	}
	return files
}

// Projects lists all projects visible to the caller.
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject submits a new project as multipart form data.
func (c *Client) CreateProject(ctx context.Context, form ProjectForm) (model.Project, error) {
	var out model.Project
	if err := c.doMultipart(ctx, http.MethodPost, "/api/projects", form.fields(), form.files(), &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

// UpdateProject replaces a project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id string, form ProjectForm) (model.Project, error) {
	var out model.Project
	if err := c.doMultipart(ctx, http.MethodPut, "/api/projects/"+id, form.fields(), form.files(), &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

// DeleteProject removes a project outright (admin, or owner of an
// unvalidated project).
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

// ValidateProject flips a project's validated flag (admin approve).
func (c *Client) ValidateProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/projects/"+id+"/validate", nil, nil)
}

type deletionReq struct {
	Reason string `json:"reason"`
}

// RequestProjectDeletion files a deletion request for a validated project.
func (c *Client) RequestProjectDeletion(ctx context.Context, id, reason string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/projects/"+id+"/request_deletion", deletionReq{Reason: reason}, nil)
}

// DeletionRequests lists pending and reviewed deletion requests (admin).
func (c *Client) DeletionRequests(ctx context.Context) ([]model.DeletionRequest, error) {
	var out []model.DeletionRequest
	if err := c.doJSON(ctx, http.MethodGet, "/api/project-deletion-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type reviewReq struct {
	AdminNotes string `json:"admin_notes"`
}

// ApproveDeletionRequest approves a deletion request; the backend deletes
// the project as part of the approval.
func (c *Client) ApproveDeletionRequest(ctx context.Context, id, adminNotes string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/project-deletion-requests/"+id+"/approve", reviewReq{AdminNotes: adminNotes}, nil)
}

// RejectDeletionRequest rejects a deletion request; the project stays
// validated.
func (c *Client) RejectDeletionRequest(ctx context.Context, id, adminNotes string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/project-deletion-requests/"+id+"/reject", reviewReq{AdminNotes: adminNotes}, nil)
}

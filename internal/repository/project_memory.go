package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// ProjectRepo stores projects and their deletion requests together so that
// reviewing a request and mutating its project happen under one lock.
// In-memory only: the demo backend does not promise durable projects.
type ProjectRepo struct {
	mu       sync.Mutex
	seq      int
	projects map[string]*model.Project
	requests map[string]*model.DeletionRequest
}

func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{
		projects: make(map[string]*model.Project),
		requests: make(map[string]*model.DeletionRequest),
	}
}

func (r *ProjectRepo) nextID() string {
	r.seq++
	return strconv.Itoa(r.seq)
}

// List returns all projects with the per-viewer capability flags filled in.
// Admins may edit and delete anything; owners may edit their own projects
// and must go through a deletion request once the project is validated.
func (r *ProjectRepo) List(ctx context.Context, viewerID string, viewerAdmin bool) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, r.withFlagsLocked(*p, viewerID, viewerAdmin))
	}
	return out, nil
}

func (r *ProjectRepo) withFlagsLocked(p model.Project, viewerID string, viewerAdmin bool) model.Project {
	owner := p.CreatedBy.ID == viewerID
	pending := r.pendingRequestLocked(p.ID) != nil
	p.CanEdit = viewerAdmin || owner
	p.CanDelete = viewerAdmin || (owner && !p.IsValidated)
	p.CanRequestDeletion = owner && p.IsValidated && !pending
	p.HasPendingDeletionRequest = pending
	return p
}

func (r *ProjectRepo) pendingRequestLocked(projectID string) *model.DeletionRequest {
	for _, req := range r.requests {
		if req.ProjectID == projectID && req.Status == model.DeletionPending {
			return req
		}
	}
	return nil
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return model.Project{}, ErrNotFound
	}
	return *p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	copied := p
	r.projects[p.ID] = &copied
	return p, nil
}

// Update overwrites the editable fields.  Only the owner or an admin may
// update; validation status is not touched here.
func (r *ProjectRepo) Update(ctx context.Context, id, editorID string, editorAdmin bool, p model.Project) (model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.projects[id]
	if !ok {
		return model.Project{}, ErrNotFound
	}
	if !editorAdmin && cur.CreatedBy.ID != editorID {
		return model.Project{}, ErrForbidden
	}
	p.ID = cur.ID
	p.CreatedBy = cur.CreatedBy
	p.IsValidated = cur.IsValidated
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	*cur = p
	return *cur, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *ProjectRepo) Validate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.IsValidated = true
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// RequestDeletion files a deletion request for a validated project.  Only
// the owner may file one, and only one may be pending per project.
func (r *ProjectRepo) RequestDeletion(ctx context.Context, projectID, requesterID, requesterName, reason string) (model.DeletionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return model.DeletionRequest{}, ErrNotFound
	}
	if p.CreatedBy.ID != requesterID {
		return model.DeletionRequest{}, ErrForbidden
	}
	if !p.IsValidated {
		return model.DeletionRequest{}, ErrForbidden
	}
	if r.pendingRequestLocked(projectID) != nil {
		return model.DeletionRequest{}, ErrConflict
	}
	req := model.DeletionRequest{
		ID:          r.nextID(),
		ProjectID:   projectID,
		ProjectName: p.Title,
		RequestedBy: model.ProjectRef{ID: requesterID, Name: requesterName},
		Reason:      reason,
		Status:      model.DeletionPending,
		RequestedAt: time.Now().UTC(),
	}
	copied := req
	r.requests[req.ID] = &copied
	return req, nil
}

func (r *ProjectRepo) DeletionRequests(ctx context.Context) ([]model.DeletionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.DeletionRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, *req)
	}
	return out, nil
}

// Review settles a pending deletion request.  Approval deletes the project
// in the same critical section; rejection leaves it validated.
func (r *ProjectRepo) Review(ctx context.Context, requestID, reviewerID, adminNotes string, approve bool) (model.DeletionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return model.DeletionRequest{}, ErrNotFound
	}
	if req.Status != model.DeletionPending {
		return model.DeletionRequest{}, ErrConflict
	}
	if approve {
		req.Status = model.DeletionApproved
		delete(r.projects, req.ProjectID)
	} else {
		req.Status = model.DeletionRejected
	}
	req.AdminNotes = adminNotes
	req.ReviewedBy = reviewerID
	req.ReviewedAt = time.Now().UTC()
	return *req, nil
}

// Package project wraps the project CRUD and the validation/deletion
// workflow.  Projects are server-owned; this service keeps a local list for
// rendering and reconciles it after each confirmed mutation.
package project

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rami151/laboissimlocal-sub000/internal/api"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// Service holds the last fetched project list.
type Service struct {
	client *api.Client

	mu       sync.Mutex
	projects []model.Project
}

// New builds a project service over the API client.
func New(client *api.Client) *Service {
	return &Service{client: client}
}

// Refresh reloads the project list from the backend.
func (s *Service) Refresh(ctx context.Context) error {
	projects, err := s.client.Projects(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// Projects returns a copy of the last fetched list.
func (s *Service) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Create submits a new project and prepends the confirmed record.
func (s *Service) Create(ctx context.Context, form api.ProjectForm) (model.Project, error) {
	created, err := s.client.CreateProject(ctx, form)
	if err != nil {
		return model.Project{}, err
	}
	s.mu.Lock()
	s.projects = append([]model.Project{created}, s.projects...)
	s.mu.Unlock()
	return created, nil
}

// Update replaces a project's fields and swaps the confirmed record into the
// local list.
func (s *Service) Update(ctx context.Context, id string, form api.ProjectForm) (model.Project, error) {
	updated, err := s.client.UpdateProject(ctx, id, form)
	if err != nil {
		return model.Project{}, err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == updated.ID {
			s.projects[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete removes a project and drops it locally once the backend confirms.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.mu.Unlock()
	return nil
}

// Validate approves an unvalidated project (admin).
func (s *Service) Validate(ctx context.Context, id string) error {
	if err := s.client.ValidateProject(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].IsValidated = true
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RequestDeletion files a deletion request for a validated project; the
// pending flag is set locally so the button disables right away.
func (s *Service) RequestDeletion(ctx context.Context, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("project: a deletion reason is required")
	}
	if err := s.client.RequestProjectDeletion(ctx, id, reason); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].HasPendingDeletionRequest = true
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// DeletionRequests lists the deletion queue (admin).
func (s *Service) DeletionRequests(ctx context.Context) ([]model.DeletionRequest, error) {
	return s.client.DeletionRequests(ctx)
}

// Review approves or rejects one deletion request with optional notes.
func (s *Service) Review(ctx context.Context, requestID string, approve bool, adminNotes string) error {
	if approve {
		return s.client.ApproveDeletionRequest(ctx, requestID, adminNotes)
	}
	return s.client.RejectDeletionRequest(ctx, requestID, adminNotes)
}

// BulkFailure records one failed item of a bulk review.
type BulkFailure struct {
	RequestID string
	Err       error
}

// BulkResult aggregates a bulk review: how many went through and which ones
// did not.  There is no atomicity across the batch; items reviewed before a
// failure stay reviewed.
type BulkResult struct {
	Succeeded int
	Failures  []BulkFailure
}

// Err returns nil when every item succeeded, otherwise one error summarizing
// the failures.
func (r BulkResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("project: %d of %d reviews failed", len(r.Failures), r.Succeeded+len(r.Failures))
}

// BulkReview reviews several deletion requests one at a time, each call
// waiting for the previous one.  A failing item is recorded and the loop
// moves on to the next id rather than aborting, so a mid-batch failure never
// blocks the remaining reviews.
func (s *Service) BulkReview(ctx context.Context, requestIDs []string, approve bool, adminNotes string) BulkResult {
	var res BulkResult
	for _, id := range requestIDs {
		if err := s.Review(ctx, id, approve, adminNotes); err != nil {
			res.Failures = append(res.Failures, BulkFailure{RequestID: id, Err: err})
			continue
		}
		res.Succeeded++
	}
	return res
}

package model

import "time"

// Deletion request statuses mirror the backend check constraint.
const (
	DeletionPending  = "pending"
	DeletionApproved = "approved"
	DeletionRejected = "rejected"
)

// ProjectRef is the compact owner/member representation embedded in a
// project payload.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is a server-owned research project.  The client only reads and
// patches it over REST; the validated flag and the deletion-request flags are
// the only state machine: unvalidated -> validated (admin approve) or
// unvalidated -> deleted (admin reject), and validated -> deletion-requested
// -> deleted|validated (owner requests, admin reviews).
type Project struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Objectives     string       `json:"objectives,omitempty"`
	Methodology    string       `json:"methodology,omitempty"`
	Results        string       `json:"results,omitempty"`
	StartDate      string       `json:"start_date,omitempty"`
	EndDate        string       `json:"end_date,omitempty"`
	Team           string       `json:"team,omitempty"`
	Funding        string       `json:"funding,omitempty"`
	FundingCompany string       `json:"funding_company,omitempty"`
	FundingAmount  string       `json:"funding_amount,omitempty"`
	Image          string       `json:"image,omitempty"`
	Documents      []string     `json:"documents,omitempty"`
	CreatedBy      ProjectRef   `json:"created_by"`
	Members        []ProjectRef `json:"members,omitempty"`
	IsValidated    bool         `json:"is_validated"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Per-viewer capability flags computed by the backend.
	CanEdit                   bool `json:"can_edit,omitempty"`
	CanDelete                 bool `json:"can_delete,omitempty"`
	CanRequestDeletion        bool `json:"can_request_deletion,omitempty"`
	HasPendingDeletionRequest bool `json:"has_pending_deletion_request,omitempty"`
}

// DeletionRequest is an owner's petition to remove a validated project,
// reviewed by an admin with optional notes.
type DeletionRequest struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_title,omitempty"`
	RequestedBy ProjectRef `json:"requested_by"`
	Reason      string     `json:"reason"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  time.Time  `json:"reviewed_at,omitzero"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
}

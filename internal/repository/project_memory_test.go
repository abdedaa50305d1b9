package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

func seedProject(t *testing.T, r *ProjectRepo, ownerID string, validated bool) model.Project {
	t.Helper()
	p, err := r.Create(context.Background(), model.Project{
		Title:       "Genome Atlas",
		Description: "mapping",
		CreatedBy:   model.ProjectRef{ID: ownerID, Name: "Owner"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if validated {
		if err := r.Validate(context.Background(), p.ID); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestCapabilityFlags(t *testing.T) {
	r := NewProjectRepo()
	p := seedProject(t, r, "1", false)

	asOwner, _ := r.List(context.Background(), "1", false)
	if !asOwner[0].CanEdit || !asOwner[0].CanDelete {
		t.Fatalf("owner flags on draft: %+v", asOwner[0])
	}
	if asOwner[0].CanRequestDeletion {
		t.Fatal("draft must not offer a deletion request")
	}

	asStranger, _ := r.List(context.Background(), "2", false)
	if asStranger[0].CanEdit || asStranger[0].CanDelete {
		t.Fatalf("stranger flags: %+v", asStranger[0])
	}

	asAdmin, _ := r.List(context.Background(), "9", true)
	if !asAdmin[0].CanEdit || !asAdmin[0].CanDelete {
		t.Fatalf("admin flags: %+v", asAdmin[0])
	}

	// Once validated, the owner loses direct delete and gains the request.
	if err := r.Validate(context.Background(), p.ID); err != nil {
		t.Fatal(err)
	}
	asOwner, _ = r.List(context.Background(), "1", false)
	if asOwner[0].CanDelete {
		t.Fatal("owner can still delete a validated project")
	}
	if !asOwner[0].CanRequestDeletion {
		t.Fatal("owner cannot request deletion of a validated project")
	}
}

func TestRequestDeletionRules(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo()
	draft := seedProject(t, r, "1", false)
	live := seedProject(t, r, "1", true)

	if _, err := r.RequestDeletion(ctx, draft.ID, "1", "Owner", "r"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("draft request: %v, want ErrForbidden", err)
	}
	if _, err := r.RequestDeletion(ctx, live.ID, "2", "Other", "r"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner request: %v, want ErrForbidden", err)
	}
	if _, err := r.RequestDeletion(ctx, live.ID, "1", "Owner", "obsolete"); err != nil {
		t.Fatalf("valid request refused: %v", err)
	}
	if _, err := r.RequestDeletion(ctx, live.ID, "1", "Owner", "again"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second pending request: %v, want ErrConflict", err)
	}
	if _, err := r.RequestDeletion(ctx, "404", "1", "Owner", "r"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown project: %v, want ErrNotFound", err)
	}
}

func TestReviewApproveDeletesProject(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo()
	live := seedProject(t, r, "1", true)
	req, err := r.RequestDeletion(ctx, live.ID, "1", "Owner", "obsolete")
	if err != nil {
		t.Fatal(err)
	}

	reviewed, err := r.Review(ctx, req.ID, "9", "agreed", true)
	if err != nil {
		t.Fatal(err)
	}
	if reviewed.Status != model.DeletionApproved || reviewed.ReviewedBy != "9" || reviewed.AdminNotes != "agreed" {
		t.Fatalf("reviewed = %+v", reviewed)
	}
	if _, err := r.Get(ctx, live.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("approved request left the project behind")
	}
	// A settled request cannot be reviewed twice.
	if _, err := r.Review(ctx, req.ID, "9", "", false); !errors.Is(err, ErrConflict) {
		t.Fatalf("second review: %v, want ErrConflict", err)
	}
}

func TestReviewRejectKeepsProject(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo()
	live := seedProject(t, r, "1", true)
	req, _ := r.RequestDeletion(ctx, live.ID, "1", "Owner", "obsolete")

	reviewed, err := r.Review(ctx, req.ID, "9", "still needed", false)
	if err != nil {
		t.Fatal(err)
	}
	if reviewed.Status != model.DeletionRejected {
		t.Fatalf("status = %q", reviewed.Status)
	}
	if _, err := r.Get(ctx, live.ID); err != nil {
		t.Fatal("rejected request removed the project")
	}
	// After rejection the owner may file a fresh request.
	if _, err := r.RequestDeletion(ctx, live.ID, "1", "Owner", "try again"); err != nil {
		t.Fatalf("new request after rejection: %v", err)
	}
}

func TestUpdateOwnershipRule(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo()
	p := seedProject(t, r, "1", true)

	edit := model.Project{Title: "Renamed", Description: "d"}
	if _, err := r.Update(ctx, p.ID, "2", false, edit); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger edit: %v", err)
	}
	got, err := r.Update(ctx, p.ID, "2", true, edit)
	if err != nil {
		t.Fatalf("admin edit: %v", err)
	}
	if got.Title != "Renamed" {
		t.Fatalf("title = %q", got.Title)
	}
	// Ownership and validation state survive edits.
	if got.CreatedBy.ID != "1" || !got.IsValidated {
		t.Fatalf("edit clobbered protected fields: %+v", got)
	}
}

package request

import (
	"testing"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// recordingCreator counts identity synthesis calls.
type recordingCreator struct {
	created []model.Identity
}

func (r *recordingCreator) AddLocalIdentity(name, email string) model.Identity {
	id := model.Identity{ID: "gen", Name: name, Email: email, Role: model.RoleMember, Status: model.StatusActive, Verified: true}
	r.created = append(r.created, id)
	return id
}

func TestContactQueueNewestFirst(t *testing.T) {
	q := New(&recordingCreator{}, store.NewMemory())
	q.AddContactMessage("A", "a@x.org", "s1", "question", "b1")
	second := q.AddContactMessage("B", "b@x.org", "s2", "support", "b2")

	msgs := q.ContactMessages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if msgs[0].ID != second.ID {
		t.Fatal("newest message not first")
	}
	if msgs[0].Status != model.ContactNew {
		t.Fatalf("new message status = %q", msgs[0].Status)
	}
}

func TestContactStatusAnyTransition(t *testing.T) {
	q := New(&recordingCreator{}, store.NewMemory())
	m := q.AddContactMessage("A", "a@x.org", "s", "c", "b")

	// Forward and backward transitions are both allowed.
	for _, status := range []string{model.ContactReplied, model.ContactNew, model.ContactRead} {
		if !q.SetContactStatus(m.ID, status) {
			t.Fatalf("transition to %q refused", status)
		}
		if got := q.ContactMessages()[0].Status; got != status {
			t.Fatalf("status = %q, want %q", got, status)
		}
	}
	if q.SetContactStatus("missing", model.ContactRead) {
		t.Fatal("unknown id accepted")
	}
}

func TestApprovalSynthesizesExactlyOneIdentity(t *testing.T) {
	creator := &recordingCreator{}
	q := New(creator, store.NewMemory())
	req := q.AddAccountRequest("New Member", "new@research.com", "pw", "joining the lab")

	if !q.SetAccountRequestStatus(req.ID, model.RequestApproved) {
		t.Fatal("approval refused")
	}
	if len(creator.created) != 1 {
		t.Fatalf("synthesized %d identities, want 1", len(creator.created))
	}
	got := creator.created[0]
	if got.Name != "New Member" || got.Email != "new@research.com" {
		t.Fatalf("wrong identity synthesized: %+v", got)
	}
	if got.Role != model.RoleMember || got.Status != model.StatusActive || !got.Verified {
		t.Fatalf("wrong defaults: %+v", got)
	}
	if q.AccountRequests()[0].Status != model.RequestApproved {
		t.Fatal("request status not persisted")
	}
}

func TestRejectionSynthesizesNothing(t *testing.T) {
	creator := &recordingCreator{}
	q := New(creator, store.NewMemory())
	req := q.AddAccountRequest("N", "n@x.org", "pw", "r")

	q.SetAccountRequestStatus(req.ID, model.RequestRejected)
	if len(creator.created) != 0 {
		t.Fatalf("rejection synthesized %d identities", len(creator.created))
	}
}

func TestQueuesSurviveMirrorRestart(t *testing.T) {
	mirror := store.NewMemory()
	q := New(&recordingCreator{}, mirror)
	q.AddContactMessage("A", "a@x.org", "s", "c", "b")
	q.AddAccountRequest("N", "n@x.org", "pw", "r")

	reloaded := New(&recordingCreator{}, mirror)
	if len(reloaded.ContactMessages()) != 1 || len(reloaded.AccountRequests()) != 1 {
		t.Fatal("queues not restored from mirror")
	}
}

func TestNotificationsCounters(t *testing.T) {
	q := New(&recordingCreator{}, store.NewMemory())
	q.AddContactMessage("A", "a@x.org", "s", "c", "b")
	read := q.AddContactMessage("B", "b@x.org", "s", "c", "b")
	q.SetContactStatus(read.ID, model.ContactRead)
	q.AddAccountRequest("N", "n@x.org", "pw", "r")
	done := q.AddAccountRequest("M", "m@x.org", "pw", "r")
	q.SetAccountRequestStatus(done.ID, model.RequestRejected)

	n := q.Notifications()
	if n.NewMessages != 1 {
		t.Errorf("NewMessages = %d, want 1", n.NewMessages)
	}
	if n.PendingRequests != 1 {
		t.Errorf("PendingRequests = %d, want 1", n.PendingRequests)
	}
}

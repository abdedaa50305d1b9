package message

import (
	"testing"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// fakeIdentity satisfies Identity with a fixed current user and roster.
type fakeIdentity struct {
	current model.Identity
	signed  bool
	roster  []model.Identity
}

func (f *fakeIdentity) Current() (model.Identity, bool) { return f.current, f.signed }
func (f *fakeIdentity) Roster() []model.Identity        { return f.roster }

func twoUsers() *fakeIdentity {
	return &fakeIdentity{
		current: model.Identity{ID: "1", Name: "Alice Admin"},
		signed:  true,
		roster: []model.Identity{
			{ID: "1", Name: "Alice Admin"},
			{ID: "2", Name: "Bob Member"},
			{ID: "3", Name: "Carol Lead"},
		},
	}
}

func TestSendCapturesDenormalizedNames(t *testing.T) {
	ids := twoUsers()
	x := New(ids, store.NewMemory())

	m, ok := x.Send("2", "hello", "first message", "")
	if !ok {
		t.Fatal("send failed")
	}
	if m.SenderName != "Alice Admin" || m.ReceiverName != "Bob Member" {
		t.Fatalf("names not captured: %q -> %q", m.SenderName, m.ReceiverName)
	}
	if m.Status != model.MessageUnread {
		t.Fatalf("new message status = %q", m.Status)
	}
	if m.ConversationID != model.ConversationID("2", "1") {
		t.Fatalf("conversation id %q not symmetric", m.ConversationID)
	}

	// Renaming the receiver later must not rewrite history.
	ids.roster[1].Name = "Robert Member"
	if got := x.All()[0].ReceiverName; got != "Bob Member" {
		t.Fatalf("history rewritten to %q", got)
	}
}

func TestSendRejectsUnknownReceiverAndSignedOut(t *testing.T) {
	ids := twoUsers()
	x := New(ids, store.NewMemory())

	if _, ok := x.Send("99", "s", "b", ""); ok {
		t.Fatal("send to unknown receiver succeeded")
	}
	ids.signed = false
	if _, ok := x.Send("2", "s", "b", ""); ok {
		t.Fatal("send while signed out succeeded")
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	x := New(twoUsers(), store.NewMemory())
	m, _ := x.Send("2", "s", "b", "")

	x.MarkRead(m.ID)
	x.MarkRead(m.ID) // second call is a no-op
	x.MarkRead("no-such-id")

	if got := x.All()[0].Status; got != model.MessageRead {
		t.Fatalf("status = %q", got)
	}
}

func TestConversationWithIsAscending(t *testing.T) {
	x := New(twoUsers(), store.NewMemory())
	first, _ := x.Send("2", "s1", "b1", "")
	second, _ := x.Send("2", "s2", "b2", first.ID)
	x.Send("3", "other thread", "b", "")

	thread := x.ConversationWith("2")
	if len(thread) != 2 {
		t.Fatalf("thread length = %d", len(thread))
	}
	if thread[0].ID != first.ID || thread[1].ID != second.ID {
		t.Fatal("thread not in send order")
	}
	if thread[1].ReplyToID != first.ID {
		t.Fatalf("reply link lost: %q", thread[1].ReplyToID)
	}
}

func TestConversationsOnePerCounterpart(t *testing.T) {
	ids := twoUsers()
	x := New(ids, store.NewMemory())
	x.Send("2", "a", "b", "")
	x.Send("2", "c", "d", "")
	last, _ := x.Send("3", "e", "f", "")

	rows := x.Conversations()
	if len(rows) != 2 {
		t.Fatalf("got %d conversations, want 2", len(rows))
	}
	// Most recent thread first.
	if rows[0].LastMessage.ID != last.ID {
		t.Fatalf("most recent conversation not first: %+v", rows[0])
	}
}

func TestUnreadCountsOnlyMessagesToMe(t *testing.T) {
	ids := twoUsers()
	mirror := store.NewMemory()
	x := New(ids, mirror)
	x.Send("2", "out", "b", "") // sent by me, never counts against me

	// Switch perspective to Bob over the same mirror.
	bob := &fakeIdentity{current: model.Identity{ID: "2", Name: "Bob Member"}, signed: true, roster: ids.roster}
	y := New(bob, mirror)
	if got := y.UnreadCount(""); got != 1 {
		t.Fatalf("bob unread = %d, want 1", got)
	}
	if got := y.UnreadCount("1"); got != 1 {
		t.Fatalf("bob unread from alice = %d, want 1", got)
	}
	if got := y.UnreadCount("3"); got != 0 {
		t.Fatalf("bob unread from carol = %d, want 0", got)
	}
	if got := x.UnreadCount(""); got != 0 {
		t.Fatalf("alice unread = %d, want 0", got)
	}
}

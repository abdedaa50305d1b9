// Package request holds the two intake queues the admin console works
// through: contact messages from the public site and account requests from
// would-be members.  Both are status-tagged lists kept in the persisted
// mirror.
package request

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// IdentityCreator is the single cross-entity hook: approving an account
// request synthesizes one new identity.  The session store satisfies it.
type IdentityCreator interface {
	AddLocalIdentity(name, email string) model.Identity
}

// Queues is the intake container.
type Queues struct {
	identities IdentityCreator
	mirror     store.Mirror

	mu       sync.Mutex
	contacts []model.ContactMessage
	requests []model.AccountRequest
}

// New loads both queues from the mirror.
func New(identities IdentityCreator, mirror store.Mirror) *Queues {
	q := &Queues{identities: identities, mirror: mirror}
	store.LoadJSON(mirror, store.KeyMessages, &q.contacts)
	store.LoadJSON(mirror, store.KeyAccountRequests, &q.requests)
	return q
}

// AddContactMessage appends a contact-form submission with status new.
// Newest entries go first, matching how the admin inbox lists them.
func (q *Queues) AddContactMessage(name, email, subject, category, body string) model.ContactMessage {
	msg := model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Category:  category,
		Body:      body,
		Status:    model.ContactNew,
		CreatedAt: time.Now().UTC(),
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.contacts = append([]model.ContactMessage{msg}, q.contacts...)
	store.SaveJSON(q.mirror, store.KeyMessages, q.contacts)
	return msg
}

// SetContactStatus overwrites a contact message's status.  Transitions are
// not validated: any status is reachable from any other, which is how the
// admin inbox has always behaved (e.g. flipping a replied message back to
// new to resurface it).
func (q *Queues) SetContactStatus(id, status string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.contacts {
		if q.contacts[i].ID == id {
			q.contacts[i].Status = status
			store.SaveJSON(q.mirror, store.KeyMessages, q.contacts)
			return true
		}
	}
	return false
}

// ContactMessages returns a copy of the contact queue.
func (q *Queues) ContactMessages() []model.ContactMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.ContactMessage, len(q.contacts))
	copy(out, q.contacts)
	return out
}

// AddAccountRequest appends a membership application with status pending.
func (q *Queues) AddAccountRequest(name, email, password, reason string) model.AccountRequest {
	req := model.AccountRequest{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		Reason:    reason,
		Status:    model.RequestPending,
		CreatedAt: time.Now().UTC(),
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.requests = append([]model.AccountRequest{req}, q.requests...)
	store.SaveJSON(q.mirror, store.KeyAccountRequests, q.requests)
	return req
}

// SetAccountRequestStatus overwrites an account request's status.  A
// transition to approved synthesizes the new member identity in the same
// critical section as the status write, so the two can never be observed
// apart.
func (q *Queues) SetAccountRequestStatus(id, status string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.requests {
		if q.requests[i].ID != id {
			continue
		}
		q.requests[i].Status = status
		store.SaveJSON(q.mirror, store.KeyAccountRequests, q.requests)
		if status == model.RequestApproved {
			q.identities.AddLocalIdentity(q.requests[i].Name, q.requests[i].Email)
		}
		return true
	}
	return false
}

// AccountRequests returns a copy of the request queue.
func (q *Queues) AccountRequests() []model.AccountRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.AccountRequest, len(q.requests))
	copy(out, q.requests)
	return out
}

// Notifications is the badge snapshot the navbar shows: contact messages
// still marked new and requests still pending.
type Notifications struct {
	NewMessages     int
	PendingRequests int
}

// Notifications counts the unhandled entries in both queues.
func (q *Queues) Notifications() Notifications {
	q.mu.Lock()
	defer q.mu.Unlock()
	var n Notifications
	for _, m := range q.contacts {
		if m.Status == model.ContactNew {
			n.NewMessages++
		}
	}
	for _, r := range q.requests {
		if r.Status == model.RequestPending {
			n.PendingRequests++
		}
	}
	return n
}

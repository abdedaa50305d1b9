// Package message maintains the internal (member-to-member) messaging index.
// Messages are a flat, append-only event log kept in the persisted mirror;
// conversations, unread counts and threading are derived from it on demand.
// The log is mirror-local: the backend never stores internal messages.
package message

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// Identity answers the two questions the index has about users: who is
// logged in, and what is a user called right now.  The session store
// satisfies it.
type Identity interface {
	Current() (model.Identity, bool)
	Roster() []model.Identity
}

// Index is the messaging state container.
type Index struct {
	identity Identity
	mirror   store.Mirror

	mu       sync.Mutex
	messages []model.InternalMessage
}

// ConversationSummary is one row of the conversation list: the counterpart,
// the most recent message either way, and how many unread messages that
// counterpart has sent the current user.
type ConversationSummary struct {
	UserID      string
	UserName    string
	LastMessage model.InternalMessage
	UnreadCount int
}

// New loads the message log from the mirror.
func New(identity Identity, mirror store.Mirror) *Index {
	idx := &Index{identity: identity, mirror: mirror}
	store.LoadJSON(mirror, store.KeyInternalMessages, &idx.messages)
	return idx
}

// Send appends a new unread message from the current user to receiverID.
// Sender and receiver display names are captured now, not live-joined later,
// so history keeps showing the name each participant had at send time.
func (x *Index) Send(receiverID, subject, body, replyToID string) (model.InternalMessage, bool) {
	sender, ok := x.identity.Current()
	if !ok {
		return model.InternalMessage{}, false
	}
	var receiverName string
	for _, u := range x.identity.Roster() {
		if u.ID == receiverID {
			receiverName = u.Name
			break
		}
	}
	if receiverName == "" {
		return model.InternalMessage{}, false
	}
	msg := model.InternalMessage{
		ID:             uuid.NewString(),
		SenderID:       sender.ID,
		ReceiverID:     receiverID,
		Subject:        subject,
		Body:           body,
		Status:         model.MessageUnread,
		CreatedAt:      time.Now().UTC(),
		SenderName:     sender.Name,
		ReceiverName:   receiverName,
		ReplyToID:      replyToID,
		ConversationID: model.ConversationID(sender.ID, receiverID),
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.messages = append(x.messages, msg)
	store.SaveJSON(x.mirror, store.KeyInternalMessages, x.messages)
	return msg, true
}

// MarkRead transitions exactly one message to read.  Already-read or unknown
// ids are a no-op.
func (x *Index) MarkRead(messageID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i := range x.messages {
		if x.messages[i].ID == messageID {
			if x.messages[i].Status != model.MessageRead {
				x.messages[i].Status = model.MessageRead
				store.SaveJSON(x.mirror, store.KeyInternalMessages, x.messages)
			}
			return
		}
	}
}

// ConversationWith returns the thread between the current user and userID,
// oldest first.
func (x *Index) ConversationWith(userID string) []model.InternalMessage {
	me, ok := x.identity.Current()
	if !ok {
		return nil
	}
	convID := model.ConversationID(me.ID, userID)
	x.mu.Lock()
	defer x.mu.Unlock()
	var thread []model.InternalMessage
	for _, m := range x.messages {
		if m.ConversationID == convID {
			thread = append(thread, m)
		}
	}
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	return thread
}

// Conversations returns one summary per distinct counterpart, ordered by the
// time of the last message, most recent first.
func (x *Index) Conversations() []ConversationSummary {
	me, ok := x.identity.Current()
	if !ok {
		return nil
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	byUser := make(map[string]ConversationSummary)
	for _, m := range x.messages {
		if m.SenderID != me.ID && m.ReceiverID != me.ID {
			continue
		}
		otherID, otherName := m.ReceiverID, m.ReceiverName
		if m.SenderID != me.ID {
			otherID, otherName = m.SenderID, m.SenderName
		}
		cur, seen := byUser[otherID]
		if !seen || m.CreatedAt.After(cur.LastMessage.CreatedAt) {
			byUser[otherID] = ConversationSummary{
				UserID:      otherID,
				UserName:    otherName,
				LastMessage: m,
				UnreadCount: x.unreadFromLocked(me.ID, otherID),
			}
		}
	}

	rows := make([]ConversationSummary, 0, len(byUser))
	for _, row := range byUser {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LastMessage.CreatedAt.After(rows[j].LastMessage.CreatedAt)
	})
	return rows
}

// UnreadCount returns the number of unread messages addressed to the current
// user, optionally only those from one sender (fromUserID non-empty).
func (x *Index) UnreadCount(fromUserID string) int {
	me, ok := x.identity.Current()
	if !ok {
		return 0
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if fromUserID != "" {
		return x.unreadFromLocked(me.ID, fromUserID)
	}
	n := 0
	for _, m := range x.messages {
		if m.ReceiverID == me.ID && m.Status == model.MessageUnread {
			n++
		}
	}
	return n
}

func (x *Index) unreadFromLocked(meID, fromID string) int {
	n := 0
	for _, m := range x.messages {
		if m.SenderID == fromID && m.ReceiverID == meID && m.Status == model.MessageUnread {
			n++
		}
	}
	return n
}

// All returns a copy of the full log, mostly for the admin overview.
func (x *Index) All() []model.InternalMessage {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]model.InternalMessage, len(x.messages))
	copy(out, x.messages)
	return out
}

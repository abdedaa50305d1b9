package model

import (
	"sort"
	"time"
)

// Internal message status values.  A message is created unread and the only
// mutation it ever sees is the receiver marking it read.
const (
	MessageUnread = "unread"
	MessageRead   = "read"
)

// InternalMessage is one immutable event in the member-to-member messaging
// log.  SenderName and ReceiverName are captured at send time on purpose:
// historical messages keep showing the name the participant had when the
// message was written, even if the roster entry is renamed later.
type InternalMessage struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Subject        string    `json:"subject"`
	Body           string    `json:"message"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	SenderName     string    `json:"senderName"`
	ReceiverName   string    `json:"receiverName"`
	ReplyToID      string    `json:"replyToId,omitempty"`
	ConversationID string    `json:"conversationId"`
}

// ConversationID derives the thread key for a pair of participants.  The two
// ids are sorted before being joined so that ConversationID(a, b) ==
// ConversationID(b, a); messages in both directions land in the same thread.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return "conv_" + ids[0] + "_" + ids[1]
}

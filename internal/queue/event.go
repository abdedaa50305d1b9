// Package queue defines the notification events the demo backend publishes
// to the message broker, and the background consumer that turns them into a
// log file admins can tail.
package queue

// Event kinds carried on the portal.notifications queue.
const (
	EventRoleUpdated      = "user.role_updated"
	EventStatusUpdated    = "user.status_updated"
	EventProjectValidated = "project.validated"
	EventDeletionReviewed = "project.deletion_reviewed"
)

// PortalEvent is published whenever an admin action lands.  It carries
// enough context for downstream consumers to log or notify without querying
// the backend again.
type PortalEvent struct {
	Kind       string `json:"kind"`
	ActorID    string `json:"actor_id"`
	SubjectID  string `json:"subject_id"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Package audit records who changed what in the recruitment pipeline. Events
// are append-only; stores never update or delete them.
package audit

import (
	"context"
	"time"
)

// Action names an audited operation.
type Action string

const (
	ActionAdminLogin          Action = "admin_login"
	ActionAdminLogout         Action = "admin_logout"
	ActionApplicantRegistered Action = "applicant_registered"
	ActionStatusUpdated       Action = "status_updated"
	ActionBulkStatusUpdated   Action = "bulk_status_updated"
	ActionTaskAssigned        Action = "task_assigned"
	ActionShortlistNotified   Action = "shortlist_notified"
)

// Event is emitted from service logic after a change is committed. Subjects
// are the applicant ids affected, ActorID the admin who acted (empty for
// public registration).
type Event struct {
	ID        string    `bson:"_id" json:"id"`
	Action    Action    `bson:"action" json:"action"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	ActorID   string    `bson:"actorId,omitempty" json:"actorId,omitempty"`
	Domain    string    `bson:"domain,omitempty" json:"domain,omitempty"`
	Subjects  []string  `bson:"subjects,omitempty" json:"subjects,omitempty"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	RequestID string    `bson:"requestId,omitempty" json:"requestId,omitempty"`
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actorID string) ([]Event, error)
}

package domain

import "time"

// Activity actions recorded after successful mutations.
const (
	ActionRecordCreated      = "record.created"
	ActionRecordUpdated      = "record.updated"
	ActionRecordDeleted      = "record.deleted"
	ActionUserRegistered     = "user.registered"
	ActionUserUpdated        = "user.updated"
	ActionUserDeleted        = "user.deleted"
	ActionRoleGranted        = "role.granted"
	ActionRoleCreated        = "role.created"
	ActionProjectCreated     = "project.created"
	ActionProjectUpdated     = "project.updated"
	ActionProjectDeleted     = "project.deleted"
	ActionProjectUserAdded   = "project.user_added"
	ActionProjectUserRemoved = "project.user_removed"
)

// ActivityEntry is one line of the audit trail.
type ActivityEntry struct {
	ID         string    `json:"id"`
	ActorID    int       `json:"actor_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID int       `json:"resource_id"`
	At         time.Time `json:"at"`
}

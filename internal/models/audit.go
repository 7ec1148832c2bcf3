package models

import "time"

// Activity actions recorded for console operations.
const (
	ActivityLogin  = "LOGIN"
	ActivityLogout = "LOGOUT"
	ActivityCreate = "CREATE"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)

// ActivityLog is one audited console operation.
type ActivityLog struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *int64    `db:"resource_id" json:"resource_id,omitempty"`
	Details    []byte    `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ActivityFilter narrows activity listings.
type ActivityFilter struct {
	Resource string
	Limit    int
}

package models

import "time"

// ActivityLog is an append-only audit record. Timestamp is assigned by
// storage on insert.
type ActivityLog struct {
	ID         int64
	UserID     *int64
	Action     string
	Resource   string
	ResourceID *string
	Details    string
	Timestamp  time.Time
}

type NewActivityLog struct {
	UserID     *int64
	Action     string
	Resource   string
	ResourceID *string
	Details    string
}

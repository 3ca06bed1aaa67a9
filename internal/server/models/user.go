// Package models defines server-side entities persisted in the database,
// their insert inputs and their partial-update patches.
//
// Patch types use pointer fields: a nil field is left untouched by an update,
// a non-nil field overwrites the stored value.
package models

import "time"

// User is an authenticated dashboard actor.
type User struct {
	ID        int64
	Username  string
	Password  string
	Role      string
	LastLogin *time.Time
}

// NewUser is the insert input for a User.
type NewUser struct {
	Username string
	Password string
	Role     string
}

// UserPatch is a partial update of a User.
type UserPatch struct {
	Username *string
	Password *string
	Role     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Role == nil
}

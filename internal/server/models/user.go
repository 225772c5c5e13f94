// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Accounts are immutable after creation;
// username is unique and case-sensitive.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

package models

import "time"

// Visibility controls whether non-owners may read an artifact.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Valid reports whether v is one of the two defined values.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Artifact is a named text payload owned by a user. Artifacts are never
// edited, only created and deleted.
type Artifact struct {
	ID         string
	UserID     string
	Name       string
	Content    string
	Visibility Visibility
	CreatedAt  time.Time
}

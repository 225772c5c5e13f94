// Package policy decides whether a requester may act on an artifact.
// It is a pure function of the requester identity and the artifact's owner
// and visibility; it holds no state and performs no I/O.
package policy

import "github.com/avlasov/fileshare/internal/server/models"

// Operation is an action on an existing artifact.
type Operation int

const (
	OpRead Operation = iota
	OpDelete
)

// Anonymous is the requester id of an unauthenticated caller.
const Anonymous = ""

// Allowed reports whether requesterID may perform op on an artifact with the
// given owner and visibility.
//
// Reading is open to anyone for public artifacts and to the owner otherwise.
// Deleting always requires ownership, even for public artifacts.
func Allowed(requesterID, ownerID string, visibility models.Visibility, op Operation) bool {
	switch op {
	case OpRead:
		if visibility == models.VisibilityPublic {
			return true
		}
		return requesterID != Anonymous && requesterID == ownerID
	case OpDelete:
		return requesterID != Anonymous && requesterID == ownerID
	default:
		return false
	}
}

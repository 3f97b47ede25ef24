package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is a user's standing on a destination.
// Owner is held by exactly one user, the destination's owner_id.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// ParseRole returns the stored role named by s.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// ResolveRole computes the caller's effective role on a destination.
// Ownership overrides whatever membership row is stored. ok is false when the
// user is neither owner nor member, which callers report as ErrNotFound.
func ResolveRole(ownerID, userID uuid.UUID, stored *Role) (role Role, ok bool) {
	if ownerID == userID {
		return RoleOwner, true
	}
	if stored == nil {
		return "", false
	}
	return *stored, true
}

// Member is one row of a destination's member list.
type Member struct {
	UserID   uuid.UUID
	Name     string
	Email    string
	Role     Role
	JoinedAt time.Time
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DestinationStatus is the planning state of a trip.
type DestinationStatus string

const (
	StatusPlanned   DestinationStatus = "PLANNED"
	StatusOngoing   DestinationStatus = "ONGOING"
	StatusCompleted DestinationStatus = "COMPLETED"
)

// ParseDestinationStatus returns the status named by s.
// An empty string yields StatusPlanned.
func ParseDestinationStatus(s string) (DestinationStatus, error) {
	switch DestinationStatus(s) {
	case "":
		return StatusPlanned, nil
	case StatusPlanned, StatusOngoing, StatusCompleted:
		return DestinationStatus(s), nil
	}
	return "", fmt.Errorf("%w: status must be PLANNED, ONGOING or COMPLETED", ErrValidation)
}

// Destination is a trip. It is the top-level aggregate: memberships,
// categories and items all belong to exactly one destination.
type Destination struct {
	ID         uuid.UUID
	Title      string
	Location   string
	OwnerID    uuid.UUID
	TripTypeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Status     DestinationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Read-side projections. Zero values when not loaded.
	TripTypeName string
	TripTypeSlug string
}

// DestinationAccess is the result of a successful authorization check:
// the destination plus the caller's effective role on it.
type DestinationAccess struct {
	Destination Destination
	Role        Role
}

// CanManageMembers reports whether the caller may add members.
func (a DestinationAccess) CanManageMembers() bool {
	return a.Role == RoleOwner
}

// DestinationSummary is one row of the caller's destination list.
type DestinationSummary struct {
	Destination
	MyRole Role
}

// DestinationDetail is a destination as returned to one of its members,
// with the full member list.
type DestinationDetail struct {
	Destination
	MyRole  Role
	Members []Member
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemStatus is a user's completion status for an item.
type ItemStatus string

const (
	ItemPending ItemStatus = "PENDING"
	ItemDone    ItemStatus = "DONE"
)

// ParseItemStatus validates s as an ItemStatus.
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemPending, ItemDone:
		return ItemStatus(s), nil
	}
	return "", fmt.Errorf("%w: status must be PENDING or DONE", ErrValidation)
}

// Item is something to pack. It belongs to one category and, through it,
// to one destination. Qty is nil when no quantity was given.
type Item struct {
	ID            uuid.UUID
	DestinationID uuid.UUID
	CategoryID    uuid.UUID
	Title         string
	Qty           *float64
	Unit          string
	Notes         string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// CategoryMode is loaded alongside the item wherever the state machine
	// needs it. Zero value when not loaded.
	CategoryMode CategoryMode
}

// ItemState is the per-(item, user) pair of flags. Claimed and Status are
// independent: marking DONE never claims, and unclaiming never resets Status.
type ItemState struct {
	Claimed bool
	Status  ItemStatus
}

// DefaultItemState is the state of a user with no stored row for an item.
var DefaultItemState = ItemState{Claimed: false, Status: ItemPending}

// ItemView is an item as seen by one user: their own state plus whoever
// currently holds the claim, if anyone.
type ItemView struct {
	Item
	CategoryName string
	Mine         ItemState
	ClaimedBy    *uuid.UUID
}

// ItemAccess is the result of authorizing a user against an item.
type ItemAccess struct {
	Item        Item
	Destination Destination
	Role        Role
}

// CanClaim reports whether items under mode m can be claimed at all.
func (m CategoryMode) CanClaim() bool {
	return m == ModeClaimable
}

// StatusNeedsClaim reports whether a status write under mode m requires the
// writer to hold the claim.
func (m CategoryMode) StatusNeedsClaim() bool {
	return m == ModeClaimable
}

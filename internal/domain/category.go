package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryMode controls how item state inside a category is interpreted.
// It is fixed when the category is created.
type CategoryMode string

const (
	// ModePerUser: every member tracks their own status; claiming is not allowed.
	ModePerUser CategoryMode = "PER_USER"
	// ModeClaimable: at most one member claims an item, and only the claimant
	// may change its status.
	ModeClaimable CategoryMode = "CLAIMABLE"
)

// ParseCategoryMode validates s as a CategoryMode.
func ParseCategoryMode(s string) (CategoryMode, error) {
	switch CategoryMode(s) {
	case ModePerUser, ModeClaimable:
		return CategoryMode(s), nil
	}
	return "", fmt.Errorf("%w: mode must be PER_USER or CLAIMABLE", ErrValidation)
}

// Category groups items inside a destination. Name is unique per destination.
type Category struct {
	ID            uuid.UUID
	DestinationID uuid.UUID
	Name          string
	Mode          CategoryMode
	SortOrder     int
	CreatedAt     time.Time
}

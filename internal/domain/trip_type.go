package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripType is a label for the kind of trip (leisure, work, camping...).
// Identity is determined by Slug, which is always lowercase and hyphenated.
type TripType struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

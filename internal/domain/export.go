package domain

// ExportRow is a single row in a destination's packing-list export.
// It is a flat, denormalized view: one row per item, with the category fields
// repeated for every item in that category.
type ExportRow struct {
	CategoryName string
	CategoryMode CategoryMode
	ItemTitle    string
	Qty          string // empty when the item has no quantity
	Unit         string
	Notes        string

	// ClaimedBy is the claimant's display name, empty when unclaimed.
	ClaimedBy string
	// MyStatus and MyClaimed are the requesting user's own state.
	MyStatus  ItemStatus
	MyClaimed bool
}

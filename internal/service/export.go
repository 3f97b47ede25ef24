package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// ExportService assembles a flat packing-list export of one destination.
type ExportService struct {
	access       Authorizer
	destinations repo.DestinationRepo
	items        repo.ItemRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(access Authorizer, destinations repo.DestinationRepo, items repo.ItemRepo) *ExportService {
	return &ExportService{access: access, destinations: destinations, items: items}
}

// Export returns one ExportRow per item of the destination, in listing order,
// seen from userID. A destination with no items yields an empty slice.
func (s *ExportService) Export(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ExportRow, error) {
	if _, err := s.access.AuthorizeDestination(ctx, userID, destinationID); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	items, err := s.items.ListForUser(ctx, destinationID, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	members, err := s.destinations.ListMembers(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.Name
	}

	rows := make([]domain.ExportRow, 0, len(items))
	for _, it := range items {
		row := domain.ExportRow{
			CategoryName: it.CategoryName,
			CategoryMode: it.CategoryMode,
			ItemTitle:    it.Title,
			Unit:         it.Unit,
			Notes:        it.Notes,
			MyStatus:     it.Mine.Status,
			MyClaimed:    it.Mine.Claimed,
		}
		if it.Qty != nil {
			row.Qty = strconv.FormatFloat(*it.Qty, 'f', -1, 64)
		}
		if it.ClaimedBy != nil {
			row.ClaimedBy = names[*it.ClaimedBy]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

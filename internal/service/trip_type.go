package service

import (
	"context"
	"fmt"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// TripTypeService lists the trip type catalog.
type TripTypeService struct {
	repo repo.TripTypeRepo
}

// NewTripTypeService constructs a TripTypeService backed by the provided TripTypeRepo.
func NewTripTypeService(r repo.TripTypeRepo) *TripTypeService {
	return &TripTypeService{repo: r}
}

// List returns all trip types ordered by name.
func (s *TripTypeService) List(ctx context.Context) ([]domain.TripType, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripTypeService.List: %w", err)
	}
	return list, nil
}

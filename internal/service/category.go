package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// NewCategory is the caller-supplied part of a category.
type NewCategory struct {
	Name      string
	Mode      string
	SortOrder int
}

// CategoryService manages the categories of a destination.
type CategoryService struct {
	access     Authorizer
	categories repo.CategoryRepo
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(access Authorizer, categories repo.CategoryRepo) *CategoryService {
	return &CategoryService{access: access, categories: categories}
}

// Create adds a category to a destination the caller can access.
// Returns domain.ErrConflict if the name is already used in that destination.
func (s *CategoryService) Create(ctx context.Context, userID, destinationID uuid.UUID, in NewCategory) (domain.Category, error) {
	name, err := requireTrimmed("name", in.Name, minNameLength)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	mode, err := domain.ParseCategoryMode(in.Mode)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}

	if _, err := s.access.AuthorizeDestination(ctx, userID, destinationID); err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}

	c, err := s.categories.Create(ctx, domain.Category{
		DestinationID: destinationID,
		Name:          name,
		Mode:          mode,
		SortOrder:     in.SortOrder,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w: category name already exists in this destination", domain.ErrConflict)
		}
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	return c, nil
}

// List returns a destination's categories ordered by sort order, then name.
func (s *CategoryService) List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Category, error) {
	if _, err := s.access.AuthorizeDestination(ctx, userID, destinationID); err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	list, err := s.categories.List(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	return list, nil
}
